// Package store persists pipeline results to PostgreSQL.
// All SQL for ideas and weekly niches lives here.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Diaa1123/amz-qoder/internal/contracts"
)

// IdeaRepository handles idea persistence
type IdeaRepository struct {
	pool *pgxpool.Pool
}

// NewIdeaRepository creates a new idea repository
func NewIdeaRepository(pool *pgxpool.Pool) *IdeaRepository {
	return &IdeaRepository{pool: pool}
}

// SaveIdea writes one pipeline result row and returns its ID.
// Rows start in the "draft" workflow status.
func (r *IdeaRepository) SaveIdea(
	ctx context.Context,
	runID string,
	runDate time.Time,
	trendName string,
	idea contracts.IdeaPackage,
	prompt contracts.DesignPrompt,
	report contracts.ComplianceReport,
) (int64, error) {
	query := `
		INSERT INTO ideas (
			run_id, run_date, trend_name, niche_name, audience,
			opportunity_score, title, bullet_points, description, keywords,
			design_prompt, design_style, compliance_status, compliance_notes,
			risk_terms, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17
		)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		runID, runDate, trendName, idea.NicheName, idea.Audience,
		idea.OpportunityScore, idea.Title,
		strings.Join(idea.BulletPoints, "\n"),
		idea.Description,
		strings.Join(idea.Keywords, ", "),
		prompt.PromptText, idea.DesignStyle,
		string(report.Status), report.Notes,
		strings.Join(report.RiskTermsDetected, ", "),
		"draft", time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to save idea %q: %w", idea.NicheName, err)
	}
	return id, nil
}

// GetByRun retrieves all idea rows for a pipeline run
func (r *IdeaRepository) GetByRun(ctx context.Context, runID string) ([]IdeaRecord, error) {
	query := `
		SELECT id, run_id, run_date, trend_name, niche_name, audience,
		       opportunity_score, title, bullet_points, description, keywords,
		       design_prompt, design_style, compliance_status, compliance_notes,
		       risk_terms, status, created_at
		FROM ideas
		WHERE run_id = $1
		ORDER BY opportunity_score DESC, id
	`

	rows, err := r.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ideas for run %s: %w", runID, err)
	}
	defer rows.Close()

	return scanIdeaRows(rows)
}

// GetByStatus retrieves idea rows with a given compliance status,
// newest first.
func (r *IdeaRepository) GetByStatus(ctx context.Context, status contracts.ComplianceStatus, limit int) ([]IdeaRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, run_id, run_date, trend_name, niche_name, audience,
		       opportunity_score, title, bullet_points, description, keywords,
		       design_prompt, design_style, compliance_status, compliance_notes,
		       risk_terms, status, created_at
		FROM ideas
		WHERE compliance_status = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ideas by status %s: %w", status, err)
	}
	defer rows.Close()

	return scanIdeaRows(rows)
}

// UpdateStatus moves an idea through the workflow (draft, uploaded, live)
func (r *IdeaRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE ideas SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update idea %d status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("idea %d not found", id)
	}
	return nil
}

func scanIdeaRows(rows pgx.Rows) ([]IdeaRecord, error) {
	var records []IdeaRecord
	for rows.Next() {
		var rec IdeaRecord
		if err := rows.Scan(
			&rec.ID, &rec.RunID, &rec.RunDate, &rec.TrendName, &rec.NicheName,
			&rec.Audience, &rec.OpportunityScore, &rec.Title, &rec.BulletPoints,
			&rec.Description, &rec.Keywords, &rec.DesignPrompt, &rec.DesignStyle,
			&rec.ComplianceStatus, &rec.ComplianceNotes, &rec.RiskTerms,
			&rec.Status, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan idea row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("idea rows iteration failed: %w", err)
	}
	return records, nil
}
