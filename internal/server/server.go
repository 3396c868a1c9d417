package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/tagtally/internal/core"
	"github.com/agenthands/tagtally/internal/core/model"
	"github.com/agenthands/tagtally/internal/middleware"
	"github.com/agenthands/tagtally/internal/report"
)

//go:embed templates/*.html
var templatesFS embed.FS

const shutdownTimeout = 10 * time.Second

type Server struct {
	Counter        *core.TagCounter
	Logger         *zap.Logger
	MaxUploadBytes int64

	exportXLSX func(io.Writer, []model.TagCount) error
}

func NewServer(counter *core.TagCounter, maxUploadBytes int64, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		Counter:        counter,
		Logger:         logger,
		MaxUploadBytes: maxUploadBytes,
		exportXLSX:     report.WriteXLSX,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(s.Logger))

	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))
	// Keep both uploads in memory.
	r.MaxMultipartMemory = 2*s.MaxUploadBytes + 1<<20

	r.GET("/health", s.Health)
	r.GET("/", s.Index)
	r.POST("/", s.UploadPage)

	api := r.Group("/api/v1")
	api.POST("/counts", s.CountTags)
	api.POST("/counts/export", s.ExportCounts)
	api.POST("/reports/xlsx", s.ExportReport)

	return r
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("Starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.Logger.Info("Server exited properly")
	return nil
}
