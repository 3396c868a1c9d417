package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/agenthands/tagtally/internal/media"
)

// Plan token lists for dense drawings run long; a small budget cuts the JSON
// array off mid-way.
const claudeMaxTokens = 8192

type ClaudeClient struct {
	client *anthropic.Client
	model  string
}

func NewClaudeClient(apiKey string, model string, baseURL string) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}

	client := anthropic.NewClient(apiKey, opts...)

	return &ClaudeClient{
		client: client,
		model:  model,
	}
}

func (c *ClaudeClient) Name() string {
	return "claude"
}

func (c *ClaudeClient) Extract(ctx context.Context, img *media.Image, instruction string) (string, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewImageMessageContent(
						anthropic.NewMessageContentSource(anthropic.MessagesContentSourceTypeBase64, img.MIMEType, img.Base64),
					),
					anthropic.NewTextMessageContent(instruction),
				},
			},
		},
		MaxTokens: claudeMaxTokens,
	})
	if err != nil {
		return "", c.classify(err)
	}

	var sb strings.Builder
	for _, part := range resp.Content {
		if part.Text != nil {
			sb.WriteString(*part.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", newServiceError(c.Name(), KindEmptyResponse, 0, fmt.Errorf("no response content"))
	}
	return sb.String(), nil
}

func (c *ClaudeClient) classify(err error) *ServiceError {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		return newServiceError(c.Name(), claudeKind(string(apiErr.Type)), 0, err)
	}
	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) {
		return newServiceError(c.Name(), KindFromStatus(reqErr.StatusCode), reqErr.StatusCode, err)
	}
	return wrapUnclassified(c.Name(), err)
}

func claudeKind(errType string) ErrorKind {
	switch errType {
	case "authentication_error", "permission_error":
		return KindAuth
	case "rate_limit_error":
		return KindRateLimit
	case "invalid_request_error", "not_found_error", "request_too_large":
		return KindInvalidRequest
	case "api_error", "overloaded_error":
		return KindUnavailable
	}
	return KindUnknown
}
