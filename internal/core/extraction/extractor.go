package extraction

import (
	"context"

	"go.uber.org/zap"

	"github.com/agenthands/tagtally/internal/config"
	"github.com/agenthands/tagtally/internal/core/common"
	"github.com/agenthands/tagtally/internal/core/model"
	"github.com/agenthands/tagtally/internal/llm"
	"github.com/agenthands/tagtally/internal/media"
)

// Extractor asks the vision model for tokens and parses its answer.
type Extractor struct {
	Vision  llm.VisionClient
	Prompts config.Prompts
	Logger  *zap.Logger
}

func NewExtractor(vision llm.VisionClient, prompts config.Prompts, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		Vision:  vision,
		Prompts: prompts,
		Logger:  logger,
	}
}

// ExtractLegendTags returns the tag column of a legend table, in the order
// the model reports it. Duplicates are kept.
func (e *Extractor) ExtractLegendTags(ctx context.Context, legend *media.Image) (*model.ExtractionResult, error) {
	return e.extract(ctx, "legend", legend, e.Prompts.Legend)
}

// ExtractPlanTokens returns every text token in a plan drawing, one entry
// per occurrence.
func (e *Extractor) ExtractPlanTokens(ctx context.Context, plan *media.Image) (*model.ExtractionResult, error) {
	return e.extract(ctx, "plan", plan, e.Prompts.Plan)
}

// extract returns a *llm.ServiceError when the call fails and a
// *common.ParseError when the answer is not a JSON array of strings. Callers
// tell the two apart with errors.As.
func (e *Extractor) extract(ctx context.Context, which string, img *media.Image, prompt string) (*model.ExtractionResult, error) {
	raw, err := e.Vision.Extract(ctx, img, prompt)
	if err != nil {
		return nil, err
	}

	tokens, err := common.ParseTokens(raw)
	if err != nil {
		e.Logger.Warn("Extraction response is not a JSON string array",
			zap.String("image", which),
			zap.Int("raw_length", len(raw)),
			zap.Error(err),
		)
		return nil, err
	}

	e.Logger.Debug("Extracted tokens",
		zap.String("image", which),
		zap.Int("tokens", len(tokens)),
	)
	return &model.ExtractionResult{Tokens: tokens, Raw: raw}, nil
}
