package content

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/jjenkins/boardsite/internal/model"
)

var errNoRow = errors.New("no such row")

// fakeTable is an in-memory Collection and ReplaceableCollection
type fakeTable[T any] struct {
	mu     sync.Mutex
	rows   []T
	nextID int64
	getID  func(T) int64
	setID  func(*T, int64)

	listErr   error
	writeErr  error
	listPanic bool
	// started is closed when List is entered; release gates its return
	started chan struct{}
	release chan struct{}
}

func newFakeTable[T any](getID func(T) int64, setID func(*T, int64), rows ...T) *fakeTable[T] {
	return &fakeTable[T]{rows: rows, nextID: 1000, getID: getID, setID: setID}
}

func (f *fakeTable[T]) List(ctx context.Context) ([]T, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.listPanic {
		panic("boom")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]T(nil), f.rows...), nil
}

func (f *fakeTable[T]) Create(_ context.Context, item T) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		var zero T
		return zero, f.writeErr
	}
	f.nextID++
	f.setID(&item, f.nextID)
	f.rows = append(f.rows, item)
	return item, nil
}

func (f *fakeTable[T]) Update(_ context.Context, item T) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		var zero T
		return zero, f.writeErr
	}
	for i := range f.rows {
		if f.getID(f.rows[i]) == f.getID(item) {
			f.rows[i] = item
			return item, nil
		}
	}
	var zero T
	return zero, errNoRow
}

func (f *fakeTable[T]) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	for i := range f.rows {
		if f.getID(f.rows[i]) == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return errNoRow
}

func (f *fakeTable[T]) Replace(_ context.Context, items []T) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	out := make([]T, len(items))
	for i, item := range items {
		f.nextID++
		f.setID(&item, f.nextID)
		out[i] = item
	}
	f.rows = out
	return append([]T(nil), out...), nil
}

type fakeSettings struct {
	mu       sync.Mutex
	values   map[string]json.RawMessage
	getErr   error
	writeErr error
}

func (f *fakeSettings) Get(_ context.Context, key string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.values[key], nil
}

func (f *fakeSettings) Upsert(_ context.Context, key string, value json.RawMessage) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	if f.values == nil {
		f.values = map[string]json.RawMessage{}
	}
	f.values[key] = value
	return value, nil
}

type fakeBackend struct {
	notices  *fakeTable[model.Notice]
	news     *fakeTable[model.NewsItem]
	pages    *fakeTable[model.Page]
	carousel *fakeTable[model.CarouselItem]
	sidebar  *fakeTable[model.SidebarSection]
	widgets  *fakeTable[model.HomeWidget]
	settings *fakeSettings
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		notices: newFakeTable(
			func(n model.Notice) int64 { return n.ID },
			func(n *model.Notice, id int64) { n.ID = id },
		),
		news: newFakeTable(
			func(n model.NewsItem) int64 { return n.ID },
			func(n *model.NewsItem, id int64) { n.ID = id },
		),
		pages: newFakeTable(
			func(p model.Page) int64 { return p.ID },
			func(p *model.Page, id int64) { p.ID = id },
		),
		carousel: newFakeTable(
			func(c model.CarouselItem) int64 { return c.ID },
			func(c *model.CarouselItem, id int64) { c.ID = id },
		),
		sidebar: newFakeTable(
			func(s model.SidebarSection) int64 { return s.ID },
			func(s *model.SidebarSection, id int64) { s.ID = id },
		),
		widgets: newFakeTable(
			func(w model.HomeWidget) int64 { return w.ID },
			func(w *model.HomeWidget, id int64) { w.ID = id },
		),
		settings: &fakeSettings{},
	}
}

func (f *fakeBackend) backend() Backend {
	return Backend{
		Notices:  f.notices,
		News:     f.news,
		Pages:    f.pages,
		Carousel: f.carousel,
		Sidebar:  f.sidebar,
		Widgets:  f.widgets,
		Settings: f.settings,
	}
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
