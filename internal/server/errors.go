package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/tagtally/internal/core"
	"github.com/agenthands/tagtally/internal/core/common"
	"github.com/agenthands/tagtally/internal/llm"
	"github.com/agenthands/tagtally/internal/media"
	"github.com/agenthands/tagtally/internal/middleware"
	"github.com/agenthands/tagtally/internal/report"
)

// ErrorResponse is the JSON body of every failed API call. Raw carries the
// model's text verbatim when it could not be parsed.
type ErrorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
	Kind  string `json:"kind,omitempty"`
	Raw   string `json:"raw,omitempty"`
}

// describeError maps a pipeline error to an HTTP status and response body.
func describeError(err error) (int, ErrorResponse) {
	body := ErrorResponse{Error: err.Error()}

	var stageErr *core.StageError
	if errors.As(err, &stageErr) {
		body.Stage = string(stageErr.Stage)
	}

	var (
		invalid   *media.InvalidInputError
		parseErr  *common.ParseError
		svcErr    *llm.ServiceError
		exportErr *report.ExportError
	)
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest, body
	case errors.As(err, &parseErr):
		body.Raw = parseErr.Raw
		return http.StatusBadGateway, body
	case errors.As(err, &svcErr):
		body.Kind = string(svcErr.Kind)
		switch svcErr.Kind {
		case llm.KindRateLimit:
			return http.StatusTooManyRequests, body
		case llm.KindTimeout:
			return http.StatusGatewayTimeout, body
		default:
			return http.StatusBadGateway, body
		}
	case errors.As(err, &exportErr):
		return http.StatusInternalServerError, body
	default:
		return http.StatusInternalServerError, body
	}
}

// handleError records err on the request and logs it, then returns what to
// send back.
func (s *Server) handleError(c *gin.Context, err error) (int, ErrorResponse) {
	_ = c.Error(err)
	status, body := describeError(err)

	fields := []zap.Field{
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		zap.Int("status", status),
		zap.String("stage", body.Stage),
		zap.String("kind", body.Kind),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError && body.Stage == "" {
		s.Logger.Error("Request failed", fields...)
	} else {
		s.Logger.Warn("Request failed", fields...)
	}
	return status, body
}
