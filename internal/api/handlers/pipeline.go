package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/Diaa1123/amz-qoder/internal/orchestrator"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

// PipelineRunner triggers pipeline runs
type PipelineRunner interface {
	RunDaily(ctx context.Context) (*orchestrator.DailyResult, error)
	RunWeekly(ctx context.Context) (*orchestrator.WeeklyResult, error)
	RunCreate(ctx context.Context, keyword string) (*orchestrator.ConceptResult, error)
}

// PipelineHandler handles pipeline trigger endpoints. Runs execute in
// the background because a full run can take minutes; progress events
// are streamed over the websocket.
type PipelineHandler struct {
	runner PipelineRunner
	logger *logger.Logger

	mu   sync.Mutex
	busy bool
}

// NewPipelineHandler creates a new pipeline handler
func NewPipelineHandler(runner PipelineRunner, log *logger.Logger) *PipelineHandler {
	return &PipelineHandler{
		runner: runner,
		logger: log,
	}
}

// RunDaily triggers the daily trend discovery run
// POST /api/pipeline/daily
func (h *PipelineHandler) RunDaily(w http.ResponseWriter, r *http.Request) {
	h.startRun(w, "daily", func(ctx context.Context) error {
		_, err := h.runner.RunDaily(ctx)
		return err
	})
}

// RunWeekly triggers the weekly generation run
// POST /api/pipeline/weekly
func (h *PipelineHandler) RunWeekly(w http.ResponseWriter, r *http.Request) {
	h.startRun(w, "weekly", func(ctx context.Context) error {
		_, err := h.runner.RunWeekly(ctx)
		return err
	})
}

// createRequest is the body for an on-demand concept run
type createRequest struct {
	Keyword string `json:"keyword"`
}

// RunCreate triggers a single-keyword concept run
// POST /api/pipeline/create
func (h *PipelineHandler) RunCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		respondError(w, http.StatusBadRequest, "keyword is required")
		return
	}

	h.startRun(w, "create", func(ctx context.Context) error {
		_, err := h.runner.RunCreate(ctx, keyword)
		return err
	})
}

// startRun launches one background run at a time. Overlapping runs
// would double-spend the trend and LLM rate budgets.
func (h *PipelineHandler) startRun(w http.ResponseWriter, name string, run func(ctx context.Context) error) {
	h.mu.Lock()
	if h.busy {
		h.mu.Unlock()
		respondError(w, http.StatusConflict, "A pipeline run is already in progress")
		return
	}
	h.busy = true
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			h.busy = false
			h.mu.Unlock()
		}()

		if err := run(context.Background()); err != nil {
			h.logger.WithError(err).Errorf("Pipeline run failed: %s", name)
		}
	}()

	respondJSON(w, http.StatusAccepted, map[string]string{
		"status": "accepted",
		"run":    name,
	})
}
