package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Diaa1123/amz-qoder/internal/api"
	"github.com/Diaa1123/amz-qoder/internal/api/handlers"
	"github.com/Diaa1123/amz-qoder/internal/bot"
	"github.com/Diaa1123/amz-qoder/internal/scheduler"
	"github.com/Diaa1123/amz-qoder/internal/scheduler/jobs"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Starts the HTTP API server with the websocket event stream, the
bot webhook, and, when enabled, the cron scheduler.

Endpoints:
  GET  /health                  - Health check
  GET  /ws/runs                 - Run event stream (websocket)
  POST /bot/webhook             - Chat bot webhook
  POST /api/pipeline/daily      - Trigger daily run
  POST /api/pipeline/weekly     - Trigger weekly run
  POST /api/pipeline/create     - Trigger single-keyword run
  GET  /api/niches              - Weekly niche rows
  GET  /api/ideas               - Persisted ideas
  GET  /api/jobs                - Scheduler jobs and stats

Example:
  go run ./cmd/qoder serve
  go run ./cmd/qoder serve --port 8080`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "override the listen port")
}

func runServe(cmd *cobra.Command, args []string) error {
	// The hub is created before config load so the orchestrator can
	// hold it; it only logs at debug level.
	hub := api.NewHub(logger.NewNop())

	a, err := newApp(hub, false)
	if err != nil {
		return err
	}
	defer a.Close()

	return serveWith(a, hub)
}

func serveWith(a *app, hub *api.Hub) error {
	if servePort != "" {
		a.cfg.Port = servePort
	}

	// Scheduler
	sched := scheduler.New(a.log)
	if err := sched.AddJob(jobs.NewDailyTrendJob(a.orch, a.cfg, a.log)); err != nil {
		return fmt.Errorf("register daily job: %w", err)
	}
	if err := sched.AddJob(jobs.NewWeeklyGenerationJob(a.orch, a.cfg, a.log)); err != nil {
		return fmt.Errorf("register weekly job: %w", err)
	}
	if a.cfg.Scheduler.Enabled {
		sched.Start()
		defer sched.Stop()
		a.log.Info("Scheduler started")
	}

	// Bot
	commandBot := bot.New(a.orch, a.log)

	// Handlers
	pipelineHandler := handlers.NewPipelineHandler(a.orch, a.log)

	// Typed nils must not reach the interface fields
	var nicheReader handlers.NicheReader
	var ideaReader handlers.IdeaReader
	if a.nicheRepo != nil {
		nicheReader = a.nicheRepo
	}
	if a.ideaRepo != nil {
		ideaReader = a.ideaRepo
	}
	catalogHandler := handlers.NewCatalogHandler(nicheReader, ideaReader, a.log)
	jobsHandler := handlers.NewJobsHandler(sched, a.log)

	router := api.NewRouter(pipelineHandler, catalogHandler, jobsHandler, hub, commandBot.WebhookHandler(), a.log)
	server := api.New(a.cfg, a.log, router)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- err
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.log.Info("Server stopped")
	return nil
}
