package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/skyfleet/adscan/internal/util"
)

// OpenAIExtractor implements Extractor on the OpenAI chat completions
// API in JSON mode.
type OpenAIExtractor struct {
	client *openai.Client
	config Config
}

// NewOpenAIExtractor creates an OpenAI-backed extractor.
func NewOpenAIExtractor(config Config) (*OpenAIExtractor, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
		},
	}

	return &OpenAIExtractor{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name implements Extractor.
func (e *OpenAIExtractor) Name() string { return "openai" }

// Extract implements Extractor.
func (e *OpenAIExtractor) Extract(ctx context.Context, documentText string) ([]byte, error) {
	model := e.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	maxTokens := e.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}

	timeout := time.Duration(e.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 2 * time.Minute
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildUserPrompt(documentText),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: e.config.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := e.client.CreateChatCompletion(ctxWithTimeout, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return []byte(strings.TrimSpace(resp.Choices[0].Message.Content)), nil
}
