package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"

	"github.com/agenthands/tagtally/internal/media"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey string, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Name() string {
	return "gemini"
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) Extract(ctx context.Context, img *media.Image, instruction string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.ImageData(img.Format(), img.Data), genai.Text(instruction))
	if err != nil {
		return "", c.classify(err)
	}

	var sb strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", newServiceError(c.Name(), KindEmptyResponse, 0, fmt.Errorf("no response candidates or content"))
	}
	return sb.String(), nil
}

func (c *GeminiClient) classify(err error) *ServiceError {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return newServiceError(c.Name(), KindInvalidRequest, 0, err)
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return newServiceError(c.Name(), KindFromStatus(gErr.Code), gErr.Code, err)
	}
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if code := apiErr.HTTPCode(); code > 0 {
			return newServiceError(c.Name(), KindFromStatus(code), code, err)
		}
		return newServiceError(c.Name(), kindFromCode(apiErr.GRPCStatus().Code()), 0, err)
	}
	return wrapUnclassified(c.Name(), err)
}

func kindFromCode(code codes.Code) ErrorKind {
	switch code {
	case codes.Unauthenticated, codes.PermissionDenied:
		return KindAuth
	case codes.ResourceExhausted:
		return KindRateLimit
	case codes.InvalidArgument, codes.NotFound, codes.FailedPrecondition, codes.OutOfRange:
		return KindInvalidRequest
	case codes.DeadlineExceeded:
		return KindTimeout
	case codes.Canceled:
		return KindCanceled
	case codes.Unavailable, codes.Internal, codes.Unknown, codes.Aborted:
		return KindUnavailable
	}
	return KindUnknown
}
