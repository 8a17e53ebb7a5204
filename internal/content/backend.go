package content

import (
	"context"
	"encoding/json"

	"github.com/jjenkins/boardsite/internal/model"
)

// Collection is a remote table that supports per-row mutation
type Collection[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// ReplaceableCollection is a remote table that is written as a whole.
// Replace returns the rows as persisted, with fresh identifiers.
type ReplaceableCollection[T any] interface {
	List(ctx context.Context) ([]T, error)
	Replace(ctx context.Context, items []T) ([]T, error)
}

// SettingsRepository stores singleton configuration blobs by key.
// Get returns nil, nil when the key has no row.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Upsert(ctx context.Context, key string, value json.RawMessage) (json.RawMessage, error)
}

// Backend is the remote content store, one repository per category
type Backend struct {
	Notices  Collection[model.Notice]
	News     Collection[model.NewsItem]
	Pages    Collection[model.Page]
	Carousel Collection[model.CarouselItem]
	Sidebar  ReplaceableCollection[model.SidebarSection]
	Widgets  ReplaceableCollection[model.HomeWidget]
	Settings SettingsRepository
}
