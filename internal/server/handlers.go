package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/tagtally/internal/core"
	"github.com/agenthands/tagtally/internal/core/model"
	"github.com/agenthands/tagtally/internal/media"
	"github.com/agenthands/tagtally/internal/middleware"
	"github.com/agenthands/tagtally/internal/report"
)

const planSampleSize = 20

type ExportRequest struct {
	Counts []model.TagCount `json:"counts" binding:"required,dive"`
}

// Health reports liveness.
// GET /health
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Index renders the upload form.
// GET /
func (s *Server) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"MaxUploadMB": s.MaxUploadBytes >> 20,
	})
}

// UploadPage runs the pipeline on the submitted form and renders the result.
// POST /
func (s *Server) UploadPage(c *gin.Context) {
	rep, err := s.runPipeline(c)
	if err != nil {
		status, body := s.handleError(c, err)
		c.HTML(status, "result.html", resultView{Error: &body})
		return
	}

	view := resultView{
		LegendTags:     rep.LegendTags,
		PlanSample:     rep.PlanSample(planSampleSize),
		PlanTokenCount: len(rep.PlanTokens),
		Counts:         rep.Counts,
		FileName:       report.FileName,
	}

	var buf bytes.Buffer
	if err := s.exportXLSX(&buf, rep.Counts); err != nil {
		s.Logger.Error("Spreadsheet export failed",
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.Error(err),
		)
		view.ExportFailed = true
	} else {
		// html/template rewrites data: URLs unless they are typed as template.URL.
		view.DownloadURL = template.URL("data:" + report.ContentType + ";base64," +
			base64.StdEncoding.EncodeToString(buf.Bytes()))
	}

	c.HTML(http.StatusOK, "result.html", view)
}

// CountTags runs the pipeline and returns the counts as JSON.
// POST /api/v1/counts
func (s *Server) CountTags(c *gin.Context) {
	rep, err := s.runPipeline(c)
	if err != nil {
		status, body := s.handleError(c, err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, report.Summarize(rep))
}

// ExportCounts runs the pipeline and returns the spreadsheet.
// POST /api/v1/counts/export
func (s *Server) ExportCounts(c *gin.Context) {
	rep, err := s.runPipeline(c)
	if err != nil {
		status, body := s.handleError(c, err)
		c.JSON(status, body)
		return
	}
	s.writeSpreadsheet(c, rep.Counts)
}

// ExportReport turns counts the caller already has into a spreadsheet.
// POST /api/v1/reports/xlsx
func (s *Server) ExportReport(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	s.writeSpreadsheet(c, req.Counts)
}

func (s *Server) writeSpreadsheet(c *gin.Context, counts []model.TagCount) {
	var buf bytes.Buffer
	if err := s.exportXLSX(&buf, counts); err != nil {
		status, body := s.handleError(c, err)
		c.JSON(status, body)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", report.FileName))
	c.Data(http.StatusOK, report.ContentType, buf.Bytes())
}

func (s *Server) runPipeline(c *gin.Context) (*model.Report, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*s.MaxUploadBytes+1<<20)

	legend, err := s.readUpload(c, "legend")
	if err != nil {
		return nil, &core.StageError{Stage: core.StageLegendUpload, Err: err}
	}
	plan, err := s.readUpload(c, "plan")
	if err != nil {
		return nil, &core.StageError{Stage: core.StagePlanUpload, Err: err}
	}

	return s.Counter.Run(c.Request.Context(), legend, plan)
}

func (s *Server) readUpload(c *gin.Context, field string) (*media.Image, error) {
	fh, err := c.FormFile(field)
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		return nil, &media.InvalidInputError{Field: field, Reason: fmt.Sprintf("failed to read upload: %v", err)}
	}
	return media.FromMultipart(field, fh, s.MaxUploadBytes)
}
