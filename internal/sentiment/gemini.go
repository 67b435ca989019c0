package sentiment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient scores with Gemini using schema-constrained JSON output.
type GeminiClient struct {
	models  geminiModels
	model   string
	timeout time.Duration
}

var newGenAIClient = genai.NewClient

func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := newGenAIClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newGeminiClient(client.Models, model, timeout), nil
}

func newGeminiClient(models geminiModels, model string, timeout time.Duration) *GeminiClient {
	if strings.TrimSpace(model) == "" {
		model = defaultGeminiModel
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiClient{models: models, model: model, timeout: timeout}
}

func (c *GeminiClient) Name() string {
	return "gemini:" + c.model
}

func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	llmCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.models.GenerateContent(
		llmCtx,
		c.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		scoreConfig(),
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty response from gemini")
	}
	return text, nil
}

func scoreConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.2)),
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"sentimentScore": {Type: genai.TypeNumber, Description: "From -1.0 (very bearish) to 1.0 (very bullish)"},
					"sentimentLabel": {Type: genai.TypeString, Enum: []string{"Bullish", "Bearish", "Neutral"}},
				},
				Required: []string{"sentimentScore", "sentimentLabel"},
			},
		},
	}
}
