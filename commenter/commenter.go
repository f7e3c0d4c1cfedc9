package commenter

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/esiebomaj/Warmer-Pro/config"
	"github.com/esiebomaj/Warmer-Pro/models"
)

const SYSTEM_INSTRUCTION = `
You are an expert at creating engaging, authentic social media comments that
drive meaningful interactions and profile visits.
`

// Commenter generates engagement comments for a post via Gemini.
type Commenter struct {
	model   string
	timeout time.Duration
}

func New(cfg config.GeminiConfig) *Commenter {
	return &Commenter{
		model:   cfg.Model,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// GenerateComment writes a short comment for the given post. keywords,
// priorText and customInstructions are optional prompt context.
func (c *Commenter) GenerateComment(ctx context.Context, post models.Post, keywords, priorText, customInstructions string) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(buildPrompt(post, keywords, priorText, customInstructions)),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SYSTEM_INSTRUCTION}}},
		},
	)
	if err != nil {
		return "", err
	}

	comment := strings.TrimSpace(result.Text())
	comment = strings.Trim(comment, `"'`)
	return comment, nil
}

func buildPrompt(post models.Post, keywords, priorText, customInstructions string) string {
	var b strings.Builder

	b.WriteString("Generate a comment for a social media post that will maximize engagement and encourage people to check out our profile. The comment is from a 3rd party point of view since we are replying as a company.\n\n")
	b.WriteString("Post Context:\n")
	fmt.Fprintf(&b, "- Platform: %s\n", post.Platform)
	fmt.Fprintf(&b, "- Text: %s\n", truncate(post.Text, 200))
	if len(post.Hashtags) > 0 {
		fmt.Fprintf(&b, "- Hashtags: %s\n", strings.Join(capStrings(post.Hashtags, 5), ", "))
	}
	if post.Owner != "" {
		fmt.Fprintf(&b, "- Owner: @%s\n", post.Owner)
	}
	fmt.Fprintf(&b, "- Likes: %d\n", post.Likes)
	fmt.Fprintf(&b, "- Comments: %d\n", post.Comments)
	if keywords != "" {
		fmt.Fprintf(&b, "- Search keywords: %s\n", keywords)
	}
	if priorText != "" {
		fmt.Fprintf(&b, "\nOur previous comment on a similar post (do not repeat it): %s\n", truncate(priorText, 200))
	}

	b.WriteString(`
Guidelines for the comment:
1. Be authentic and relevant to the post content
2. Add value (drop a related tip or hint on the topic)
3. Show genuine interest in the content
4. Use colloquial language in the domain
5. Say something specific in your comment
6. Use emojis appropriately but don't overdo it
7. Keep it concise (1-2 sentences max)
8. Don't use hashtags in the comment
9. Avoid being salesy or promotional
10. Tone should not be too glowy and stiff
`)
	if customInstructions != "" {
		fmt.Fprintf(&b, "\nAdditional instructions: %s\n", customInstructions)
	}
	b.WriteString("\nGenerate a comment that feels natural and would encourage the poster and others to engage with our profile:")

	return b.String()
}

func truncate(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max]) + "..."
}

func capStrings(xs []string, max int) []string {
	if len(xs) <= max {
		return xs
	}
	return xs[:max]
}
