package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Diaa1123/amz-qoder/internal/contracts"
)

// NicheRepository handles weekly niche tracking persistence
type NicheRepository struct {
	pool *pgxpool.Pool
}

// NewNicheRepository creates a new niche repository
func NewNicheRepository(pool *pgxpool.Pool) *NicheRepository {
	return &NicheRepository{pool: pool}
}

// SaveWeeklyNiche upserts a niche row for the given week, deriving the
// rising status and growth estimate from the opportunity score.
func (r *NicheRepository) SaveWeeklyNiche(ctx context.Context, entry contracts.NicheEntry, weekStart time.Time) (int64, error) {
	opportunity := entry.Score.Opportunity()
	rising, growth := deriveTrendStatus(opportunity)

	query := `
		INSERT INTO weekly_niches (
			niche_name, week_start, weekly_growth_pct, rising_status,
			opportunity_score, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (niche_name, week_start) DO UPDATE SET
			weekly_growth_pct = EXCLUDED.weekly_growth_pct,
			rising_status = EXCLUDED.rising_status,
			opportunity_score = EXCLUDED.opportunity_score,
			notes = EXCLUDED.notes
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		entry.NicheName, weekStart, growth, rising,
		opportunity, entry.AnalysisSummary, time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to save weekly niche %q: %w", entry.NicheName, err)
	}
	return id, nil
}

// GetWeeklyNiches retrieves all niche rows for the given week,
// best opportunity first.
func (r *NicheRepository) GetWeeklyNiches(ctx context.Context, weekStart time.Time) ([]NicheRecord, error) {
	query := `
		SELECT id, niche_name, week_start, weekly_growth_pct, rising_status,
		       opportunity_score, notes, created_at
		FROM weekly_niches
		WHERE week_start = $1
		ORDER BY opportunity_score DESC, id
	`

	rows, err := r.pool.Query(ctx, query, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly niches: %w", err)
	}
	defer rows.Close()

	var records []NicheRecord
	for rows.Next() {
		var rec NicheRecord
		if err := rows.Scan(
			&rec.ID, &rec.NicheName, &rec.WeekStart, &rec.WeeklyGrowthPct,
			&rec.RisingStatus, &rec.OpportunityScore, &rec.Notes, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan niche row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("niche rows iteration failed: %w", err)
	}
	return records, nil
}
