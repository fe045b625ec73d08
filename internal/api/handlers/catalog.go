package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Diaa1123/amz-qoder/internal/contracts"
	"github.com/Diaa1123/amz-qoder/internal/store"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

// NicheReader reads weekly niche tracking rows
type NicheReader interface {
	GetWeeklyNiches(ctx context.Context, weekStart time.Time) ([]store.NicheRecord, error)
}

// IdeaReader reads persisted idea rows
type IdeaReader interface {
	GetByStatus(ctx context.Context, status contracts.ComplianceStatus, limit int) ([]store.IdeaRecord, error)
}

// CatalogHandler serves the persisted pipeline output
type CatalogHandler struct {
	niches NicheReader
	ideas  IdeaReader
	logger *logger.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(niches NicheReader, ideas IdeaReader, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		niches: niches,
		ideas:  ideas,
		logger: log,
	}
}

// nicheItem is the API view of a weekly niche row
type nicheItem struct {
	ID               int64   `json:"id"`
	NicheName        string  `json:"nicheName"`
	WeekStart        string  `json:"weekStart"`
	WeeklyGrowthPct  float64 `json:"weeklyGrowthPct"`
	RisingStatus     string  `json:"risingStatus"`
	OpportunityScore float64 `json:"opportunityScore"`
	Notes            string  `json:"notes"`
}

// GetNiches returns the niche tracking rows for a week
// GET /api/niches?week=2026-08-24
func (h *CatalogHandler) GetNiches(w http.ResponseWriter, r *http.Request) {
	if h.niches == nil {
		respondError(w, http.StatusServiceUnavailable, "Database not configured")
		return
	}

	week := currentWeekStart(time.Now())
	if raw := r.URL.Query().Get("week"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid week, expected YYYY-MM-DD")
			return
		}
		week = parsed
	}

	records, err := h.niches.GetWeeklyNiches(r.Context(), week)
	if err != nil {
		h.logger.WithError(err).Error("Failed to query weekly niches")
		respondError(w, http.StatusInternalServerError, "Failed to get niches")
		return
	}

	items := make([]nicheItem, 0, len(records))
	for _, rec := range records {
		items = append(items, nicheItem{
			ID:               rec.ID,
			NicheName:        rec.NicheName,
			WeekStart:        rec.WeekStart.Format("2006-01-02"),
			WeeklyGrowthPct:  rec.WeeklyGrowthPct,
			RisingStatus:     rec.RisingStatus,
			OpportunityScore: rec.OpportunityScore,
			Notes:            rec.Notes,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"weekStart": week.Format("2006-01-02"),
		"count":     len(items),
		"niches":    items,
	})
}

// ideaItem is the API view of a persisted idea row
type ideaItem struct {
	ID               int64   `json:"id"`
	RunID            string  `json:"runId"`
	RunDate          string  `json:"runDate"`
	TrendName        string  `json:"trendName"`
	NicheName        string  `json:"nicheName"`
	Audience         string  `json:"audience"`
	OpportunityScore float64 `json:"opportunityScore"`
	Title            string  `json:"title"`
	BulletPoints     string  `json:"bulletPoints"`
	Description      string  `json:"description"`
	Keywords         string  `json:"keywords"`
	DesignPrompt     string  `json:"designPrompt"`
	DesignStyle      string  `json:"designStyle"`
	ComplianceStatus string  `json:"complianceStatus"`
	ComplianceNotes  string  `json:"complianceNotes"`
	RiskTerms        string  `json:"riskTerms"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"createdAt"`
}

// GetIdeas returns persisted ideas filtered by compliance status
// GET /api/ideas?status=approved&limit=50
func (h *CatalogHandler) GetIdeas(w http.ResponseWriter, r *http.Request) {
	if h.ideas == nil {
		respondError(w, http.StatusServiceUnavailable, "Database not configured")
		return
	}

	status := contracts.StatusApproved
	if raw := r.URL.Query().Get("status"); raw != "" {
		switch contracts.ComplianceStatus(raw) {
		case contracts.StatusApproved, contracts.StatusRejected, contracts.StatusNeedsReview:
			status = contracts.ComplianceStatus(raw)
		default:
			respondError(w, http.StatusBadRequest, "Invalid status")
			return
		}
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	records, err := h.ideas.GetByStatus(r.Context(), status, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to query ideas")
		respondError(w, http.StatusInternalServerError, "Failed to get ideas")
		return
	}

	items := make([]ideaItem, 0, len(records))
	for _, rec := range records {
		items = append(items, ideaItem{
			ID:               rec.ID,
			RunID:            rec.RunID,
			RunDate:          rec.RunDate.Format("2006-01-02"),
			TrendName:        rec.TrendName,
			NicheName:        rec.NicheName,
			Audience:         rec.Audience,
			OpportunityScore: rec.OpportunityScore,
			Title:            rec.Title,
			BulletPoints:     rec.BulletPoints,
			Description:      rec.Description,
			Keywords:         rec.Keywords,
			DesignPrompt:     rec.DesignPrompt,
			DesignStyle:      rec.DesignStyle,
			ComplianceStatus: rec.ComplianceStatus,
			ComplianceNotes:  rec.ComplianceNotes,
			RiskTerms:        rec.RiskTerms,
			Status:           rec.Status,
			CreatedAt:        rec.CreatedAt.Format(time.RFC3339),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": string(status),
		"count":  len(items),
		"ideas":  items,
	})
}

// currentWeekStart returns the Monday midnight of t's week
func currentWeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := t.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
}
