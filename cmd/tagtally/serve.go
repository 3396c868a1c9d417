package main

import (
	"github.com/spf13/cobra"

	"github.com/agenthands/tagtally/internal/app"
	"github.com/agenthands/tagtally/internal/server"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the HTTP server with the upload form and the JSON API.

Routes:
  GET  /                       - upload form
  POST /                       - count and render the result page
  POST /api/v1/counts          - count, JSON response
  POST /api/v1/counts/export   - count, spreadsheet response
  POST /api/v1/reports/xlsx    - JSON counts to spreadsheet
  GET  /health                 - health check

Examples:
  tagtally serve                 # port from config (default 8080)
  tagtally serve --port 3000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != "" {
			cfg.Server.Port = servePort
		}

		a, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		srv := server.NewServer(a.Counter, cfg.Upload.MaxBytes, a.Logger)
		return srv.Run(ctx, ":"+cfg.Server.Port)
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides config)")

	rootCmd.AddCommand(serveCmd)
}
