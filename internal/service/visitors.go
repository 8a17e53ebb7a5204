package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VisitorService records unique daily visitors and summarizes them
type VisitorService struct {
	db  *sql.DB
	now func() time.Time
}

// NewVisitorService creates a new VisitorService
func NewVisitorService(db *sql.DB) *VisitorService {
	return &VisitorService{db: db, now: time.Now}
}

// VisitorSummary counts unique visitors per period
type VisitorSummary struct {
	Today     int `json:"today"`
	Yesterday int `json:"yesterday"`
	ThisMonth int `json:"thisMonth"`
	Total     int `json:"total"`
}

// Record notes that a visitor was seen today; repeat visits on the same day are ignored
func (v *VisitorService) Record(ctx context.Context, visitorID uuid.UUID) error {
	query := `
		INSERT INTO visits (visitor_id, visited_on)
		VALUES ($1, $2)
		ON CONFLICT (visitor_id, visited_on) DO NOTHING
	`

	today := v.now().UTC().Format("2006-01-02")
	if _, err := v.db.ExecContext(ctx, query, visitorID.String(), today); err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}

	return nil
}

// Summary returns visitor counts relative to the current day
func (v *VisitorService) Summary(ctx context.Context) (*VisitorSummary, error) {
	now := v.now().UTC()
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")

	query := `
		SELECT
			COUNT(*) FILTER (WHERE visited_on = $1),
			COUNT(*) FILTER (WHERE visited_on = $2),
			COUNT(DISTINCT visitor_id) FILTER (WHERE visited_on >= $3),
			COUNT(DISTINCT visitor_id)
		FROM visits
	`

	summary := &VisitorSummary{}
	err := v.db.QueryRowContext(ctx, query, today, yesterday, monthStart).Scan(
		&summary.Today,
		&summary.Yesterday,
		&summary.ThisMonth,
		&summary.Total,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize visits: %w", err)
	}

	return summary, nil
}
