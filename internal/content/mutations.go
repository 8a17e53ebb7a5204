package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jjenkins/boardsite/internal/model"
)

// Op names a mutation
type Op string

const (
	OpCreate  Op = "create"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
	OpReplace Op = "replace"
	OpUpsert  Op = "upsert"
)

// ErrUnknownSetting is returned for settings keys the site does not use
var ErrUnknownSetting = errors.New("unknown settings key")

// MutationError is returned when a mutation is rejected. The content state
// is unchanged whenever a MutationError is returned.
type MutationError struct {
	Category Category
	Op       Op
	Err      error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Category, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// Mutator writes to the backend and applies confirmed changes to the container
type Mutator struct {
	backend   Backend
	container *Container
	recorder  Recorder
}

// NewMutator creates a Mutator; rec may be nil
func NewMutator(b Backend, container *Container, rec Recorder) *Mutator {
	if rec == nil {
		rec = noopRecorder{}
	}
	return &Mutator{backend: b, container: container, recorder: rec}
}

type validatable interface {
	Validate() error
}

func (m *Mutator) fail(c Category, op Op, err error) error {
	m.recorder.ObserveMutation(string(c), string(op), err)
	return &MutationError{Category: c, Op: op, Err: err}
}

func (m *Mutator) done(c Category, op Op) {
	m.recorder.ObserveMutation(string(c), string(op), nil)
}

func create[T validatable](ctx context.Context, m *Mutator, s slot[T], repo Collection[T], item T) (T, error) {
	var zero T
	if err := item.Validate(); err != nil {
		return zero, m.fail(s.category, OpCreate, err)
	}
	saved, err := repo.Create(ctx, item)
	if err != nil {
		return zero, m.fail(s.category, OpCreate, err)
	}
	m.container.Dispatch(created[T]{slot: s, item: saved})
	m.done(s.category, OpCreate)
	return saved, nil
}

func update[T validatable](ctx context.Context, m *Mutator, s slot[T], repo Collection[T], item T) (T, error) {
	var zero T
	if s.id(item) <= 0 {
		return zero, m.fail(s.category, OpUpdate, fmt.Errorf("%w: id is required", model.ErrInvalid))
	}
	if err := item.Validate(); err != nil {
		return zero, m.fail(s.category, OpUpdate, err)
	}
	saved, err := repo.Update(ctx, item)
	if err != nil {
		return zero, m.fail(s.category, OpUpdate, err)
	}
	m.container.Dispatch(updated[T]{slot: s, item: saved})
	m.done(s.category, OpUpdate)
	return saved, nil
}

func remove[T any](ctx context.Context, m *Mutator, s slot[T], repo Collection[T], id int64) error {
	if id <= 0 {
		return m.fail(s.category, OpDelete, fmt.Errorf("%w: id is required", model.ErrInvalid))
	}
	if err := repo.Delete(ctx, id); err != nil {
		return m.fail(s.category, OpDelete, err)
	}
	m.container.Dispatch(deleted[T]{slot: s, id: id})
	m.done(s.category, OpDelete)
	return nil
}

func replace[T validatable](ctx context.Context, m *Mutator, s slot[T], repo ReplaceableCollection[T], items []T) ([]T, error) {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return nil, m.fail(s.category, OpReplace, fmt.Errorf("item %d: %w", i, err))
		}
	}
	saved, err := repo.Replace(ctx, items)
	if err != nil {
		return nil, m.fail(s.category, OpReplace, err)
	}
	m.container.Dispatch(replaced[T]{slot: s, items: saved})
	m.done(s.category, OpReplace)
	return saved, nil
}

func (m *Mutator) CreateNotice(ctx context.Context, n model.Notice) (model.Notice, error) {
	return create(ctx, m, noticesSlot, m.backend.Notices, n)
}

func (m *Mutator) UpdateNotice(ctx context.Context, n model.Notice) (model.Notice, error) {
	return update(ctx, m, noticesSlot, m.backend.Notices, n)
}

func (m *Mutator) DeleteNotice(ctx context.Context, id int64) error {
	return remove(ctx, m, noticesSlot, m.backend.Notices, id)
}

func (m *Mutator) CreateNews(ctx context.Context, n model.NewsItem) (model.NewsItem, error) {
	return create(ctx, m, newsSlot, m.backend.News, n)
}

func (m *Mutator) UpdateNews(ctx context.Context, n model.NewsItem) (model.NewsItem, error) {
	return update(ctx, m, newsSlot, m.backend.News, n)
}

func (m *Mutator) DeleteNews(ctx context.Context, id int64) error {
	return remove(ctx, m, newsSlot, m.backend.News, id)
}

func (m *Mutator) CreatePage(ctx context.Context, p model.Page) (model.Page, error) {
	if p.Slug == "" {
		p.Slug = model.Slugify(p.Title)
	}
	return create(ctx, m, pagesSlot, m.backend.Pages, p)
}

func (m *Mutator) UpdatePage(ctx context.Context, p model.Page) (model.Page, error) {
	return update(ctx, m, pagesSlot, m.backend.Pages, p)
}

func (m *Mutator) DeletePage(ctx context.Context, id int64) error {
	return remove(ctx, m, pagesSlot, m.backend.Pages, id)
}

func (m *Mutator) CreateCarouselItem(ctx context.Context, c model.CarouselItem) (model.CarouselItem, error) {
	return create(ctx, m, carouselSlot, m.backend.Carousel, c)
}

func (m *Mutator) UpdateCarouselItem(ctx context.Context, c model.CarouselItem) (model.CarouselItem, error) {
	return update(ctx, m, carouselSlot, m.backend.Carousel, c)
}

func (m *Mutator) DeleteCarouselItem(ctx context.Context, id int64) error {
	return remove(ctx, m, carouselSlot, m.backend.Carousel, id)
}

// ReplaceSidebar stores sections as the whole sidebar, ordered by their
// position in the slice. The state receives the rows the store echoes back.
func (m *Mutator) ReplaceSidebar(ctx context.Context, sections []model.SidebarSection) ([]model.SidebarSection, error) {
	ordered := make([]model.SidebarSection, len(sections))
	for i, s := range sections {
		s.OrderIndex = i
		ordered[i] = s
	}
	return replace(ctx, m, sidebarSlot, m.backend.Sidebar, ordered)
}

// ReplaceWidgets stores widgets as the whole home widget list
func (m *Mutator) ReplaceWidgets(ctx context.Context, widgets []model.HomeWidget) ([]model.HomeWidget, error) {
	return replace(ctx, m, widgetsSlot, m.backend.Widgets, widgets)
}

func (m *Mutator) UpdateTopBar(ctx context.Context, cfg model.TopBarConfig) (model.TopBarConfig, error) {
	return upsertSetting(ctx, m, CategoryTopBar, cfg, func(v model.TopBarConfig) Action { return topBarSet{v} })
}

func (m *Mutator) UpdateFooter(ctx context.Context, cfg model.FooterConfig) (model.FooterConfig, error) {
	return upsertSetting(ctx, m, CategoryFooter, cfg, func(v model.FooterConfig) Action { return footerSet{v} })
}

// UpdateSetting upserts a settings blob by key and returns the stored value
func (m *Mutator) UpdateSetting(ctx context.Context, key string, raw json.RawMessage) (any, error) {
	switch Category(key) {
	case CategoryTopBar:
		var cfg model.TopBarConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, m.fail(CategoryTopBar, OpUpsert, fmt.Errorf("%w: %v", model.ErrInvalid, err))
		}
		return m.UpdateTopBar(ctx, cfg)
	case CategoryFooter:
		var cfg model.FooterConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, m.fail(CategoryFooter, OpUpsert, fmt.Errorf("%w: %v", model.ErrInvalid, err))
		}
		return m.UpdateFooter(ctx, cfg)
	default:
		return nil, &MutationError{Category: Category(key), Op: OpUpsert, Err: ErrUnknownSetting}
	}
}

func upsertSetting[T any](ctx context.Context, m *Mutator, c Category, value T, set func(T) Action) (T, error) {
	var zero T
	raw, err := json.Marshal(value)
	if err != nil {
		return zero, m.fail(c, OpUpsert, err)
	}
	echoed, err := m.backend.Settings.Upsert(ctx, string(c), raw)
	if err != nil {
		return zero, m.fail(c, OpUpsert, err)
	}

	stored := value
	if len(echoed) > 0 {
		var decoded T
		if err := json.Unmarshal(echoed, &decoded); err != nil {
			return zero, m.fail(c, OpUpsert, fmt.Errorf("failed to decode stored %s: %w", c, err))
		}
		stored = decoded
	}
	m.container.Dispatch(set(stored))
	m.done(c, OpUpsert)
	return stored, nil
}
