package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jjenkins/boardsite/internal/content"
	"github.com/jjenkins/boardsite/internal/model"
)

// SeedStats tracks seeding statistics, counted per category
type SeedStats struct {
	Total   int
	Seeded  int
	Skipped int
	Failed  int
	Rows    int
}

// Seeder writes the built-in default content into an empty backend.
// Categories that already hold data are left alone.
type Seeder struct {
	backend   content.Backend
	defaults  content.State
	logger    *log.Logger
	errLogger *log.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(b content.Backend, defaults content.State) *Seeder {
	return &Seeder{
		backend:   b,
		defaults:  defaults,
		logger:    log.New(os.Stdout, "", log.LstdFlags),
		errLogger: log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
}

type seedStep struct {
	category content.Category
	run      func(ctx context.Context) (rows int, err error)
}

// errPopulated marks a category that already has data
var errPopulated = errors.New("already populated")

func seedCollection[T any](repo content.Collection[T], rows []T) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		existing, err := repo.List(ctx)
		if err != nil {
			return 0, err
		}
		if len(existing) > 0 {
			return 0, errPopulated
		}
		for i, row := range rows {
			if _, err := repo.Create(ctx, row); err != nil {
				return i, fmt.Errorf("row %d: %w", i, err)
			}
		}
		return len(rows), nil
	}
}

func seedReplaceable[T any](repo content.ReplaceableCollection[T], rows []T) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		existing, err := repo.List(ctx)
		if err != nil {
			return 0, err
		}
		if len(existing) > 0 {
			return 0, errPopulated
		}
		saved, err := repo.Replace(ctx, rows)
		if err != nil {
			return 0, err
		}
		return len(saved), nil
	}
}

func seedSetting(repo content.SettingsRepository, key string, value any) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		existing, err := repo.Get(ctx, key)
		if err != nil {
			return 0, err
		}
		if len(existing) > 0 && string(existing) != "null" {
			return 0, errPopulated
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return 0, err
		}
		if _, err := repo.Upsert(ctx, key, raw); err != nil {
			return 0, err
		}
		return 1, nil
	}
}

func (s *Seeder) steps() []seedStep {
	b, d := s.backend, s.defaults
	return []seedStep{
		{content.CategoryNotices, seedCollection(b.Notices, d.Notices)},
		{content.CategoryNews, seedCollection(b.News, d.News)},
		{content.CategoryPages, seedCollection(b.Pages, d.Pages)},
		{content.CategoryCarousel, seedCollection(b.Carousel, d.Carousel)},
		{content.CategoryWidgets, seedReplaceable(b.Widgets, d.Widgets)},
		{content.CategorySidebar, seedReplaceable(b.Sidebar, d.Sidebar)},
		{content.CategoryTopBar, seedSetting(b.Settings, model.TopBarKey, d.TopBar)},
		{content.CategoryFooter, seedSetting(b.Settings, model.FooterKey, d.Footer)},
	}
}

// Seed writes defaults into every empty category. A failing category is
// logged and counted; the remaining categories are still seeded.
func (s *Seeder) Seed(ctx context.Context) (*SeedStats, error) {
	steps := s.steps()
	stats := &SeedStats{Total: len(steps)}

	for idx, step := range steps {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		progress := fmt.Sprintf("[%d/%d]", idx+1, stats.Total)

		rows, err := step.run(ctx)
		stats.Rows += rows
		switch {
		case errors.Is(err, errPopulated):
			s.logger.Printf("%s Skipping %s (already populated)", progress, step.category)
			stats.Skipped++
		case err != nil:
			s.errLogger.Printf("%s Failed to seed %s: %v", progress, step.category, err)
			stats.Failed++
		default:
			s.logger.Printf("%s Seeded %s (%d rows)", progress, step.category, rows)
			stats.Seeded++
		}
	}

	return stats, nil
}

// PrintSummary prints the seeding statistics
func (s *Seeder) PrintSummary(stats *SeedStats) {
	s.logger.Println("")
	s.logger.Println("=== Seed Summary ===")
	s.logger.Printf("Categories:      %d", stats.Total)
	s.logger.Printf("Seeded:          %d", stats.Seeded)
	s.logger.Printf("Skipped:         %d (already populated)", stats.Skipped)
	s.logger.Printf("Failed:          %d", stats.Failed)
	s.logger.Printf("Rows written:    %d", stats.Rows)
}
