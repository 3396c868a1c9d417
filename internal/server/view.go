package server

import (
	"html/template"

	"github.com/agenthands/tagtally/internal/core/model"
)

type resultView struct {
	LegendTags     []string
	PlanSample     []string
	PlanTokenCount int
	Counts         []model.TagCount
	FileName       string
	DownloadURL    template.URL
	ExportFailed   bool
	Error          *ErrorResponse
}
