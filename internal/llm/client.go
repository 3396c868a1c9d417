package llm

import (
	"context"

	"github.com/agenthands/tagtally/internal/media"
)

// VisionClient sends one image and one instruction to a multimodal model and
// returns the model's text output verbatim.
type VisionClient interface {
	Extract(ctx context.Context, img *media.Image, instruction string) (string, error)
}

// Named is implemented by clients that can report their provider.
type Named interface {
	Name() string
}

func providerName(c VisionClient) string {
	if n, ok := c.(Named); ok {
		return n.Name()
	}
	return "vision"
}
