package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jjenkins/boardsite/internal/model"
)

// SidebarStore handles database operations for sidebar sections.
// Each row stores its variant tag in type and the variant body as JSONB.
type SidebarStore struct {
	db *sql.DB
}

// NewSidebarStore creates a new SidebarStore
func NewSidebarStore(db *sql.DB) *SidebarStore {
	return &SidebarStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSection(row rowScanner) (model.SidebarSection, error) {
	var (
		s       model.SidebarSection
		kind    string
		payload []byte
	)
	if err := row.Scan(&s.ID, &s.Title, &kind, &payload, &s.OrderIndex); err != nil {
		return s, err
	}
	p, err := model.DecodeSectionPayload(model.SectionKind(kind), payload)
	if err != nil {
		return s, fmt.Errorf("section %d: %w", s.ID, err)
	}
	s.Payload = p
	return s, nil
}

// List retrieves all sections in display order
func (s *SidebarStore) List(ctx context.Context) ([]model.SidebarSection, error) {
	query := `
		SELECT id, title, type, payload, order_index
		FROM sidebar_sections
		ORDER BY order_index ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get sidebar sections: %w", err)
	}
	defer rows.Close()

	sections := []model.SidebarSection{}
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sidebar section: %w", err)
		}
		sections = append(sections, sec)
	}

	return sections, rows.Err()
}

// Replace swaps the whole sidebar in one transaction. Rows are written with
// order_index equal to their position and returned as persisted.
func (s *SidebarStore) Replace(ctx context.Context, sections []model.SidebarSection) ([]model.SidebarSection, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sidebar_sections`); err != nil {
		return nil, fmt.Errorf("failed to clear sidebar sections: %w", err)
	}

	insertQuery := `
		INSERT INTO sidebar_sections (title, type, payload, order_index)
		VALUES ($1, $2, $3::jsonb, $4)
		RETURNING id, title, type, payload, order_index
	`

	saved := make([]model.SidebarSection, 0, len(sections))
	for i, sec := range sections {
		payload, err := json.Marshal(sec.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode sidebar section %q: %w", sec.Title, err)
		}
		out, err := scanSection(tx.QueryRowContext(ctx, insertQuery, sec.Title, string(sec.Kind()), string(payload), i))
		if err != nil {
			return nil, fmt.Errorf("failed to insert sidebar section %q: %w", sec.Title, classify(err))
		}
		saved = append(saved, out)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sidebar sections: %w", err)
	}

	return saved, nil
}
