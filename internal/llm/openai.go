package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/agenthands/tagtally/internal/media"
)

type OpenAIClient struct {
	client *openai.Client
	model  string
	name   string
}

func NewOpenAIClient(apiKey string, model string, baseURL string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)
	return &OpenAIClient{
		client: client,
		model:  model,
		name:   "openai",
	}
}

func (c *OpenAIClient) Name() string {
	return c.name
}

func (c *OpenAIClient) Extract(ctx context.Context, img *media.Image, instruction string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: instruction,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    img.DataURI(),
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
	}
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", c.classify(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", newServiceError(c.name, KindEmptyResponse, 0, fmt.Errorf("no response choices"))
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) classify(err error) *ServiceError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return newServiceError(c.name, KindFromStatus(apiErr.HTTPStatusCode), apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return newServiceError(c.name, KindFromStatus(reqErr.HTTPStatusCode), reqErr.HTTPStatusCode, err)
	}
	return wrapUnclassified(c.name, err)
}
