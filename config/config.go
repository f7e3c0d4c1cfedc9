package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
	Apify     ApifyConfig     `yaml:"apify"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Analytics AnalyticsConfig `yaml:"analytics"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// ApifyConfig configures the scraping collaborator. The API token itself is
// taken from the APIFY_API_TOKEN environment variable, never from yaml.
type ApifyConfig struct {
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds bounds a single actor run, end to end.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// ResultsPerSearch is the per-keyword record limit passed to the actors.
	ResultsPerSearch int `yaml:"results_per_search"`
}

// GeminiConfig configures the language-model collaborator. The API key is
// taken from the GEMINI_API_KEY environment variable.
type GeminiConfig struct {
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// AnalyticsConfig carries the empirically tuned scoring constants. The
// defaults reproduce the original behavior exactly; they are surfaced as
// configuration so the thresholds can be recalibrated without code changes.
type AnalyticsConfig struct {
	// Trend score = VelocityWeight*velocity + EngagementWeight*engagementRate
	// + FrequencyWeight*frequency, then multiplied by
	// PlatformMultiplier * distinct platform count.
	VelocityWeight     float64 `yaml:"velocity_weight"`
	EngagementWeight   float64 `yaml:"engagement_weight"`
	FrequencyWeight    float64 `yaml:"frequency_weight"`
	PlatformMultiplier float64 `yaml:"platform_multiplier"`

	// Hashtags scoring at or below NoiseFloor are discarded.
	NoiseFloor float64 `yaml:"noise_floor"`

	MaxTopics       int `yaml:"max_topics"`
	MaxSamplePosts  int `yaml:"max_sample_posts"`
	MinViewEstimate int `yaml:"min_view_estimate"`

	// Estimated views per platform = primary engagement signal * multiplier,
	// floored at MinViewEstimate.
	ViewMultipliers map[string]float64 `yaml:"view_multipliers"`

	// Clustering corpus bounds.
	MinPostTextLength int `yaml:"min_post_text_length"`
	MaxClusterPosts   int `yaml:"max_cluster_posts"`

	// MaxActionPosts caps how many posts one actions request turns into
	// engagement tasks (each task may trigger a comment generation).
	MaxActionPosts int `yaml:"max_action_posts"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	applyDefaults(&c)
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// applyDefaults fills in any constant left at zero so that a partial
// config.yaml still reproduces the reference scoring behavior.
func applyDefaults(c *AppConfig) {
	a := &c.Analytics
	if a.VelocityWeight == 0 {
		a.VelocityWeight = 0.4
	}
	if a.EngagementWeight == 0 {
		a.EngagementWeight = 0.3
	}
	if a.FrequencyWeight == 0 {
		a.FrequencyWeight = 0.3
	}
	if a.PlatformMultiplier == 0 {
		a.PlatformMultiplier = 1.5
	}
	if a.NoiseFloor == 0 {
		a.NoiseFloor = 5
	}
	if a.MaxTopics == 0 {
		a.MaxTopics = 20
	}
	if a.MaxSamplePosts == 0 {
		a.MaxSamplePosts = 5
	}
	if a.MinViewEstimate == 0 {
		a.MinViewEstimate = 100
	}
	if len(a.ViewMultipliers) == 0 {
		a.ViewMultipliers = map[string]float64{
			"instagram": 10,
			"linkedin":  8,
			"twitter":   20,
		}
	}
	if a.MinPostTextLength == 0 {
		a.MinPostTextLength = 20
	}
	if a.MaxClusterPosts == 0 {
		a.MaxClusterPosts = 100
	}
	if a.MaxActionPosts == 0 {
		a.MaxActionPosts = 12
	}
	if c.Apify.BaseURL == "" {
		c.Apify.BaseURL = "https://api.apify.com/v2"
	}
	if c.Apify.TimeoutSeconds == 0 {
		c.Apify.TimeoutSeconds = 120
	}
	if c.Apify.ResultsPerSearch == 0 {
		c.Apify.ResultsPerSearch = 30
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Gemini.TimeoutSeconds == 0 {
		c.Gemini.TimeoutSeconds = 90
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
