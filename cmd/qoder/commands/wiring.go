package commands

import (
	"fmt"

	"github.com/Diaa1123/amz-qoder/internal/agents"
	"github.com/Diaa1123/amz-qoder/internal/analyzer"
	"github.com/Diaa1123/amz-qoder/internal/llm"
	"github.com/Diaa1123/amz-qoder/internal/orchestrator"
	"github.com/Diaa1123/amz-qoder/internal/output"
	"github.com/Diaa1123/amz-qoder/internal/store"
	"github.com/Diaa1123/amz-qoder/internal/trends"
	"github.com/Diaa1123/amz-qoder/pkg/config"
	"github.com/Diaa1123/amz-qoder/pkg/database"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
	"github.com/Diaa1123/amz-qoder/pkg/redis"
)

// app holds the wired pipeline and its owned connections
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	redis *redis.Client
	db    *database.DB // nil when DATABASE_URL is unset
	orch  *orchestrator.Orchestrator

	nicheRepo *store.NicheRepository // nil without a database
	ideaRepo  *store.IdeaRepository
}

// newApp wires the full pipeline. The database is optional: without
// DATABASE_URL the pipeline still runs and writes local files, it just
// skips persistence. requireDB makes a missing database a hard error.
func newApp(notifier orchestrator.Notifier, requireDB bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	a := &app{
		cfg:   cfg,
		log:   log,
		redis: redisClient,
	}

	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.db = db
		a.nicheRepo = store.NewNicheRepository(db.Pool)
		a.ideaRepo = store.NewIdeaRepository(db.Pool)
	} else if requireDB {
		a.Close()
		return nil, fmt.Errorf("DATABASE_URL is required for this command")
	} else {
		log.Warn("DATABASE_URL not set, persistence disabled")
	}

	// Trend discovery with scraper and seed-list fallbacks
	trendCache := redis.NewCache(redisClient, "trends")
	trendSource := trends.NewAPIClient(cfg, log, trendCache)
	scraper := trends.NewPageScraper(cfg, log)
	scout := trends.NewScout(trendSource, scraper, log)

	// LLM-backed agents
	limiter := redis.NewRateLimiter(redisClient, "ratelimit")
	llmClient := llm.New(cfg, log, limiter)
	if !llmClient.Enabled() {
		log.Warn("LLM_API_KEY not set, generation commands will fail and compliance falls back to term scanning")
	}

	deps := orchestrator.Deps{
		Scout:      scout,
		Analyzer:   analyzer.New(llmClient, log),
		Strategist: agents.NewStrategist(llmClient, log),
		Designer:   agents.NewDesigner(llmClient, log),
		Inspector:  agents.NewInspector(llmClient, log),
		Writer:     output.New(cfg.Pipeline.OutputDir, log),
		Notifier:   notifier,
	}
	if a.nicheRepo != nil {
		deps.Niches = a.nicheRepo
	}
	if a.ideaRepo != nil {
		deps.Ideas = a.ideaRepo
	}

	a.orch = orchestrator.New(cfg, log, deps)

	return a, nil
}

// Close releases the app's connections
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		a.redis.Close()
	}
}
