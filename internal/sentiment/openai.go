package sentiment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultOpenAIModel = "gpt-4o-mini"
	openAISystemPrompt = "You score financial news sentiment. Return ONLY a JSON array, one object per article in the given order, each with sentimentScore (number -1..1) and sentimentLabel (Bullish|Bearish|Neutral). No markdown."
)

type openAIChatClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

type OpenAIClient struct {
	client  openAIChatClient
	model   string
	timeout time.Duration
}

// NewOpenAIClient returns nil when apiKey is blank.
func NewOpenAIClient(apiKey, model string, timeout time.Duration) *OpenAIClient {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	if strings.TrimSpace(model) == "" {
		model = defaultOpenAIModel
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client:  &openAIClient{client: client},
		model:   model,
		timeout: timeout,
	}
}

func (c *OpenAIClient) Name() string {
	return "openai:" + c.model
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	llmCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion, err := c.client.CreateChatCompletion(llmCtx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(openAISystemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty scorer completion")
	}
	return completion.Choices[0].Message.Content, nil
}

type openAIClient struct {
	client openai.Client
}

func (c *openAIClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
