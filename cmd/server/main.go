package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agenthands/tagtally/internal/app"
	"github.com/agenthands/tagtally/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := app.LoadConfig(app.ConfigPath(""))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	srv := server.NewServer(a.Counter, cfg.Upload.MaxBytes, a.Logger)
	if err := srv.Run(ctx, ":"+cfg.Server.Port); err != nil {
		a.Logger.Fatal("Server failed", zap.Error(err))
	}
}
