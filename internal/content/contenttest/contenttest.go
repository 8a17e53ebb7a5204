// Package contenttest provides an in-memory content backend for tests.
package contenttest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jjenkins/boardsite/internal/content"
	"github.com/jjenkins/boardsite/internal/model"
	"github.com/jjenkins/boardsite/internal/store"
)

// Table is an in-memory table. Setting Err makes every call fail with it.
type Table[T any] struct {
	mu     sync.Mutex
	Rows   []T
	Err    error
	nextID int64
	id     func(T) int64
	setID  func(*T, int64)
}

func newTable[T any](id func(T) int64, setID func(*T, int64)) *Table[T] {
	return &Table[T]{nextID: 100, id: id, setID: setID}
}

func (t *Table[T]) List(context.Context) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	return append([]T{}, t.Rows...), nil
}

func (t *Table[T]) Create(_ context.Context, item T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		var zero T
		return zero, t.Err
	}
	t.nextID++
	t.setID(&item, t.nextID)
	t.Rows = append(t.Rows, item)
	return item, nil
}

func (t *Table[T]) Update(_ context.Context, item T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var zero T
	if t.Err != nil {
		return zero, t.Err
	}
	for i := range t.Rows {
		if t.id(t.Rows[i]) == t.id(item) {
			t.Rows[i] = item
			return item, nil
		}
	}
	return zero, store.ErrNotFound
}

func (t *Table[T]) Delete(_ context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return t.Err
	}
	for i := range t.Rows {
		if t.id(t.Rows[i]) == id {
			t.Rows = append(t.Rows[:i:i], t.Rows[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (t *Table[T]) Replace(_ context.Context, items []T) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	rows := make([]T, len(items))
	for i, item := range items {
		t.nextID++
		t.setID(&item, t.nextID)
		rows[i] = item
	}
	t.Rows = rows
	return append([]T{}, rows...), nil
}

// Settings is an in-memory settings table
type Settings struct {
	mu     sync.Mutex
	Values map[string]json.RawMessage
	Err    error
}

func (s *Settings) Get(_ context.Context, key string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Values[key], nil
}

func (s *Settings) Upsert(_ context.Context, key string, value json.RawMessage) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Values == nil {
		s.Values = map[string]json.RawMessage{}
	}
	s.Values[key] = value
	return value, nil
}

// Backend holds one in-memory table per category
type Backend struct {
	Notices  *Table[model.Notice]
	News     *Table[model.NewsItem]
	Pages    *Table[model.Page]
	Carousel *Table[model.CarouselItem]
	Sidebar  *Table[model.SidebarSection]
	Widgets  *Table[model.HomeWidget]
	Settings *Settings
}

// NewBackend returns an empty backend
func NewBackend() *Backend {
	return &Backend{
		Notices: newTable(
			func(n model.Notice) int64 { return n.ID },
			func(n *model.Notice, id int64) { n.ID = id },
		),
		News: newTable(
			func(n model.NewsItem) int64 { return n.ID },
			func(n *model.NewsItem, id int64) { n.ID = id },
		),
		Pages: newTable(
			func(p model.Page) int64 { return p.ID },
			func(p *model.Page, id int64) { p.ID = id },
		),
		Carousel: newTable(
			func(c model.CarouselItem) int64 { return c.ID },
			func(c *model.CarouselItem, id int64) { c.ID = id },
		),
		Sidebar: newTable(
			func(s model.SidebarSection) int64 { return s.ID },
			func(s *model.SidebarSection, id int64) { s.ID = id },
		),
		Widgets: newTable(
			func(w model.HomeWidget) int64 { return w.ID },
			func(w *model.HomeWidget, id int64) { w.ID = id },
		),
		Settings: &Settings{},
	}
}

// Content exposes the tables as a content backend
func (b *Backend) Content() content.Backend {
	return content.Backend{
		Notices:  b.Notices,
		News:     b.News,
		Pages:    b.Pages,
		Carousel: b.Carousel,
		Sidebar:  b.Sidebar,
		Widgets:  b.Widgets,
		Settings: b.Settings,
	}
}
