package store

import (
	"database/sql"

	"github.com/jjenkins/boardsite/internal/content"
	"github.com/jjenkins/boardsite/internal/model"
)

var (
	_ content.Collection[model.Notice]                    = (*NoticeStore)(nil)
	_ content.Collection[model.NewsItem]                  = (*NewsStore)(nil)
	_ content.Collection[model.Page]                      = (*PageStore)(nil)
	_ content.Collection[model.CarouselItem]              = (*CarouselStore)(nil)
	_ content.ReplaceableCollection[model.SidebarSection] = (*SidebarStore)(nil)
	_ content.ReplaceableCollection[model.HomeWidget]     = (*WidgetStore)(nil)
	_ content.SettingsRepository                          = (*SettingsStore)(nil)
)

// NewBackend wires a store per table into a content backend
func NewBackend(db *sql.DB) content.Backend {
	return content.Backend{
		Notices:  NewNoticeStore(db),
		News:     NewNewsStore(db),
		Pages:    NewPageStore(db),
		Carousel: NewCarouselStore(db),
		Sidebar:  NewSidebarStore(db),
		Widgets:  NewWidgetStore(db),
		Settings: NewSettingsStore(db),
	}
}
