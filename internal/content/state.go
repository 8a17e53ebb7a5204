package content

import (
	"sync"
	"time"

	"github.com/jjenkins/boardsite/internal/model"
)

// State is an immutable snapshot of all site content.
// Slices held by a State are never modified after the State is built;
// transitions allocate new slices instead.
type State struct {
	Notices   []model.Notice         `json:"notices"`
	News      []model.NewsItem       `json:"news"`
	Pages     []model.Page           `json:"pages"`
	Carousel  []model.CarouselItem   `json:"carouselItems"`
	Sidebar   []model.SidebarSection `json:"sidebarSections"`
	Widgets   []model.HomeWidget     `json:"homeWidgets"`
	TopBar    model.TopBarConfig     `json:"topBarConfig"`
	Footer    model.FooterConfig     `json:"footerConfig"`
	Menu      []model.MenuItem       `json:"menuItems"`
	InfoCards []model.InfoCard       `json:"infoCards"`

	IsLoading     bool      `json:"isLoading"`
	Error         string    `json:"error,omitempty"`
	LastRefreshed time.Time `json:"lastRefreshed,omitempty"`

	// refreshes counts in-flight refreshes; IsLoading mirrors refreshes > 0
	refreshes int
}

// PageBySlug finds a page in the snapshot
func (s State) PageBySlug(slug string) (model.Page, bool) {
	for _, p := range s.Pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return model.Page{}, false
}

// Container holds the shared content state. Every write goes through
// Dispatch so each transition is applied atomically.
type Container struct {
	mu    sync.RWMutex
	state State
}

// NewContainer creates a container starting from the given state
func NewContainer(initial State) *Container {
	return &Container{state: initial}
}

// Dispatch applies an action and returns the resulting state
func (c *Container) Dispatch(a Action) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = a.Apply(c.state)
	return c.state
}

// Snapshot returns the current state
func (c *Container) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}
