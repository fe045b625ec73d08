package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

type stubJob struct {
	name     string
	schedule string
	err      error
	runs     int
}

func (j *stubJob) Name() string     { return j.name }
func (j *stubJob) Schedule() string { return j.schedule }
func (j *stubJob) Run(_ context.Context) error {
	j.runs++
	return j.err
}

func TestAddJob(t *testing.T) {
	s := New(logger.NewNop())

	job := &stubJob{name: "daily_trends", schedule: "0 0 9 * * *"}
	require.NoError(t, s.AddJob(job))
	assert.Equal(t, []string{"daily_trends"}, s.GetAllJobs())

	err := s.AddJob(&stubJob{name: "daily_trends", schedule: "0 0 9 * * *"})
	assert.Error(t, err, "duplicate names rejected")
}

func TestAddJob_InvalidSchedule(t *testing.T) {
	s := New(logger.NewNop())
	err := s.AddJob(&stubJob{name: "broken", schedule: "not a cron expr"})
	assert.Error(t, err)
}

func TestRunJob_Unknown(t *testing.T) {
	s := New(logger.NewNop())
	assert.Error(t, s.RunJob("missing"))
}

func TestRunJobRecordsHistory(t *testing.T) {
	s := New(logger.NewNop())
	job := &stubJob{name: "daily_trends", schedule: "0 0 9 * * *"}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	history, err := s.GetJobHistory("daily_trends")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.True(t, history.Results[0].Success)
	assert.Equal(t, 1, job.runs)

	stats := s.GetJobStats()
	require.Contains(t, stats, "daily_trends")
	assert.Equal(t, 1, stats["daily_trends"].TotalRuns)
	assert.Equal(t, 1, stats["daily_trends"].SuccessCount)
	assert.InDelta(t, 1.0, stats["daily_trends"].SuccessRate, 1e-9)
	require.NotNil(t, stats["daily_trends"].LastSuccess)
}

func TestGetJobHistory_ReturnsSnapshot(t *testing.T) {
	s := New(logger.NewNop())
	job := &stubJob{name: "daily_trends", schedule: "0 0 9 * * *"}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	snapshot, err := s.GetJobHistory("daily_trends")
	require.NoError(t, err)
	require.Len(t, snapshot.Results, 1)

	// Later runs must not show up in an already-taken snapshot
	s.runJob(job)
	assert.Len(t, snapshot.Results, 1)

	// Mutating the snapshot must not corrupt the scheduler's history
	snapshot.Results[0].Success = false
	fresh, err := s.GetJobHistory("daily_trends")
	require.NoError(t, err)
	require.Len(t, fresh.Results, 2)
	assert.True(t, fresh.Results[0].Success)
}

func TestJobHistory(t *testing.T) {
	h := &JobHistory{}

	for i := 0; i < 105; i++ {
		h.AddResult(JobResult{
			JobName:   "j",
			StartTime: time.Now(),
			Success:   i%2 == 0,
		})
	}

	assert.Len(t, h.Results, 100, "history capped at 100")
	assert.Len(t, h.GetLatestResults(10), 10)
	assert.Len(t, h.GetLatestResults(500), 100)
	assert.NotEmpty(t, h.GetFailedResults())

	rate := h.GetSuccessRate()
	assert.Greater(t, rate, 0.0)
	assert.Less(t, rate, 1.0)
}

func TestJobHistory_Empty(t *testing.T) {
	h := &JobHistory{}
	assert.Empty(t, h.GetLatestResults(5))
	assert.InDelta(t, 0.0, h.GetSuccessRate(), 1e-9)
}
