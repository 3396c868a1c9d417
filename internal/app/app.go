// Package app wires configuration, logging and the vision client into a
// ready TagCounter for the binaries.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/agenthands/tagtally/internal/config"
	"github.com/agenthands/tagtally/internal/core"
	"github.com/agenthands/tagtally/internal/llm"
	"github.com/agenthands/tagtally/internal/logging"
)

const DefaultConfigPath = "config/config.toml"

// ConfigPath returns the explicit path, then CONFIG_PATH, then the default.
func ConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultConfigPath
}

// LoadConfig reads the config file, applies the environment and validates
// the result. Only DefaultConfigPath may be absent; a path the user named
// must exist. A missing key is reported as *config.ConfigurationError.
func LoadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path == "" || path == DefaultConfigPath {
		cfg, err = config.LoadOrDefault(path)
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// App is a configured pipeline plus the resources it owns.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Counter *core.TagCounter

	vision llm.VisionClient
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	vision, err := llm.NewClient(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	logger.Info("Vision client ready",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
	)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Counter: core.NewTagCounter(vision, cfg.Prompts, logger),
		vision:  vision,
	}, nil
}

func (a *App) Close() error {
	_ = a.Logger.Sync()
	if c, ok := a.vision.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
