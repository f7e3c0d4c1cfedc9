package clusterer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"google.golang.org/genai"

	"github.com/esiebomaj/Warmer-Pro/config"
	"github.com/esiebomaj/Warmer-Pro/logger"
	"github.com/esiebomaj/Warmer-Pro/models"
)

const SYSTEM_INSTRUCTION = `
You are a social media conversation analyst. You are given a numbered list of
social media posts. Group them into semantic conversation clusters that
describe what people are actually discussing.

Rules:
1. Return between 5 and 10 clusters. If there are too few distinct themes,
   return fewer clusters rather than inventing themes.
2. Every cluster needs a short topic label, a one-sentence description, a
   sentiment classification ("positive", "negative", "mixed" or "neutral"),
   and 2-4 subtopics.
3. post_numbers must list the numbers of ALL posts that belong to the
   cluster, using the "Post N" numbers exactly as given.
4. sample_quotes must contain 2-3 literal quotes copied verbatim from the
   posts, each tagged with the post numbers it was drawn from.
5. Never quote, reference or describe content that is not in the given
   posts. Never invent post numbers.
`

// clusterSchema is the strict output contract for the model. Post references
// are plain ordinals; URL resolution happens on our side of the boundary.
var clusterSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"clusters": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic":       {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
					"sentiment": {
						Type: genai.TypeString,
						Enum: []string{"positive", "negative", "mixed", "neutral"},
					},
					"subtopics": {
						Type:  genai.TypeArray,
						Items: &genai.Schema{Type: genai.TypeString},
					},
					"post_numbers": {
						Type:  genai.TypeArray,
						Items: &genai.Schema{Type: genai.TypeInteger},
					},
					"sample_quotes": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"text": {Type: genai.TypeString},
								"post_numbers": {
									Type:  genai.TypeArray,
									Items: &genai.Schema{Type: genai.TypeInteger},
								},
							},
							Required: []string{"text", "post_numbers"},
						},
					},
				},
				Required: []string{"topic", "description", "sentiment", "subtopics", "post_numbers", "sample_quotes"},
			},
		},
	},
	Required: []string{"clusters"},
}

type clusterResponse struct {
	Clusters []models.RawCluster `json:"clusters"`
}

// Clusterer is the semantic-clustering collaborator, backed by Gemini with
// schema-constrained JSON output.
type Clusterer struct {
	model   string
	timeout time.Duration
}

func New(cfg config.GeminiConfig) *Clusterer {
	return &Clusterer{
		model:   cfg.Model,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// Cluster submits the ordinal-tagged corpus and returns the raw clusters.
// Ordinals in the result are unvalidated; the caller owns resolution.
func (c *Clusterer) Cluster(ctx context.Context, corpus string) ([]models.RawCluster, error) {
	startTime := time.Now()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}

	result, err := client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(corpus),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SYSTEM_INSTRUCTION}}},
			ResponseMIMEType:  "application/json",
			ResponseSchema:    clusterSchema,
		},
	)
	if err != nil {
		return nil, err
	}

	var parsed clusterResponse
	if err := json.Unmarshal([]byte(result.Text()), &parsed); err != nil {
		return nil, fmt.Errorf("malformed clustering output: %w", err)
	}

	fields := logger.Fields{
		"model":      c.model,
		"clusters":   len(parsed.Clusters),
		"latency_ms": time.Since(startTime).Milliseconds(),
	}
	if result.UsageMetadata != nil {
		fields["input_tokens"] = result.UsageMetadata.PromptTokenCount
		fields["output_tokens"] = result.UsageMetadata.CandidatesTokenCount
	}
	logger.InfoWithFields("clustering completed", fields)

	return parsed.Clusters, nil
}
