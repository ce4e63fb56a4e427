package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/trywilco/secure-info-concierge/config"
	"github.com/trywilco/secure-info-concierge/logger"
)

// Completer is the single capability the pipeline needs from the generation
// collaborator: prompt in, completion out.
type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int, temperature float32) (string, error)
}

// Client wraps the OpenAI chat-completions API. It speaks to an Azure
// deployment when the credentials server provides one, otherwise to the
// public API with a plain key.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient builds the generation client from config. Azure credentials from
// the credentials server take precedence over a direct API key.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.CredentialsURL != "" {
		creds, err := FetchCredentials(context.Background(), cfg.CredentialsURL)
		if err != nil {
			return nil, fmt.Errorf("error fetching generation credentials: %v", err)
		}
		azure := openai.DefaultAzureConfig(creds.APIKey, creds.BaseURL)
		azure.APIVersion = creds.APIVersion
		logger.Get().Info("Generation client initialized",
			zap.String("mode", "azure"),
			zap.String("deployment", creds.Deployment))
		return &Client{
			api:   openai.NewClientWithConfig(azure),
			model: creds.Deployment,
		}, nil
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("no generation credentials: set ENGINE_WILCO_AI_URL or OPENAI_API_KEY")
	}
	logger.Get().Info("Generation client initialized",
		zap.String("mode", "openai"),
		zap.String("model", cfg.OpenAIModel))
	return &Client{
		api:   openai.NewClient(cfg.OpenAIAPIKey),
		model: cfg.OpenAIModel,
	}, nil
}

// Complete implements Completer with a single chat round trip.
func (c *Client) Complete(ctx context.Context, system, user string, maxTokens int, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("error calling chat completion: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
