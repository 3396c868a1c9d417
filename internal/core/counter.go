package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/tagtally/internal/config"
	"github.com/agenthands/tagtally/internal/core/extraction"
	"github.com/agenthands/tagtally/internal/core/model"
	"github.com/agenthands/tagtally/internal/core/reconcile"
	"github.com/agenthands/tagtally/internal/llm"
	"github.com/agenthands/tagtally/internal/media"
)

type Stage string

const (
	StageLegendUpload     Stage = "legend_upload"
	StagePlanUpload       Stage = "plan_upload"
	StageLegendExtraction Stage = "legend_extraction"
	StagePlanExtraction   Stage = "plan_extraction"
	StageLegendParse      Stage = "legend_parse"
	StagePlanParse        Stage = "plan_parse"
)

// StageError labels a pipeline failure with the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// TagCounter runs the legend/plan pipeline. It holds no per-run state and is
// safe to share between requests.
type TagCounter struct {
	Extractor *extraction.Extractor
	Logger    *zap.Logger
}

func NewTagCounter(vision llm.VisionClient, prompts config.Prompts, logger *zap.Logger) *TagCounter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TagCounter{
		Extractor: extraction.NewExtractor(vision, prompts, logger),
		Logger:    logger,
	}
}

// Count encodes both uploads and runs the pipeline on them.
func (tc *TagCounter) Count(ctx context.Context, legend, plan []byte) (*model.Report, error) {
	legendImg, err := media.EncodeField("legend", legend)
	if err != nil {
		return nil, &StageError{Stage: StageLegendUpload, Err: err}
	}
	planImg, err := media.EncodeField("plan", plan)
	if err != nil {
		return nil, &StageError{Stage: StagePlanUpload, Err: err}
	}
	return tc.Run(ctx, legendImg, planImg)
}

// Run extracts legend tags and plan tokens concurrently, then reconciles
// them. Nothing is counted unless both extractions succeed. When both fail
// the legend failure is reported.
func (tc *TagCounter) Run(ctx context.Context, legend, plan *media.Image) (*model.Report, error) {
	var (
		legendRes, planRes *model.ExtractionResult
		legendErr, planErr error
	)

	// Each branch records its own error so the reported failure does not
	// depend on which call loses the race.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		legendRes, legendErr = tc.Extractor.ExtractLegendTags(gctx, legend)
		return legendErr
	})
	g.Go(func() error {
		planRes, planErr = tc.Extractor.ExtractPlanTokens(gctx, plan)
		return planErr
	})
	_ = g.Wait()

	// A failing branch cancels its sibling; that cancellation is not the
	// cause and must not be reported over the real failure.
	siblingCanceled := ctx.Err() == nil && errors.Is(legendErr, context.Canceled)
	if legendErr != nil && !(siblingCanceled && planErr != nil) {
		return nil, tc.fail(StageLegendExtraction, StageLegendParse, legendErr)
	}
	if planErr != nil {
		return nil, tc.fail(StagePlanExtraction, StagePlanParse, planErr)
	}

	tc.Logger.Info("Extraction complete",
		zap.Int("legend_tags", len(legendRes.Tokens)),
		zap.Int("plan_tokens", len(planRes.Tokens)),
	)

	return &model.Report{
		LegendTags: legendRes.Tokens,
		PlanTokens: planRes.Tokens,
		Counts:     reconcile.Count(legendRes.Tokens, planRes.Tokens),
	}, nil
}

func (tc *TagCounter) fail(extractStage, parseStage Stage, err error) error {
	stage := extractStage
	if IsParseError(err) {
		stage = parseStage
	}
	tc.Logger.Warn("Pipeline stage failed", zap.String("stage", string(stage)), zap.Error(err))
	return &StageError{Stage: stage, Err: err}
}
