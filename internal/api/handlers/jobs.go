package handlers

import (
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"github.com/Diaa1123/amz-qoder/internal/scheduler"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

// JobManager exposes the scheduler's registry and run history
type JobManager interface {
	GetAllJobs() []string
	GetJobStats() map[string]scheduler.JobStats
	GetJobHistory(jobName string) (*scheduler.JobHistory, error)
	RunJob(jobName string) error
}

// JobsHandler serves scheduler state
type JobsHandler struct {
	manager JobManager
	logger  *logger.Logger
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(manager JobManager, log *logger.Logger) *JobsHandler {
	return &JobsHandler{
		manager: manager,
		logger:  log,
	}
}

// GetJobs returns registered jobs and their run statistics
// GET /api/jobs
func (h *JobsHandler) GetJobs(w http.ResponseWriter, r *http.Request) {
	names := h.manager.GetAllJobs()
	sort.Strings(names)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  names,
		"stats": h.manager.GetJobStats(),
	})
}

// GetJobHistory returns the recent run history for one job
// GET /api/jobs/{name}/history
func (h *JobsHandler) GetJobHistory(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	history, err := h.manager.GetJobHistory(name)
	if err != nil {
		respondError(w, http.StatusNotFound, "Job not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"job":     name,
		"results": history.GetLatestResults(20),
	})
}

// RunJob triggers one job immediately, outside its schedule
// POST /api/jobs/{name}/run
func (h *JobsHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.manager.RunJob(name); err != nil {
		respondError(w, http.StatusNotFound, "Job not found")
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{
		"status": "accepted",
		"job":    name,
	})
}
