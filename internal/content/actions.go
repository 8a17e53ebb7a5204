package content

import (
	"time"

	"github.com/jjenkins/boardsite/internal/model"
)

// Action is a pure state transition
type Action interface {
	Apply(State) State
}

// slot addresses one collection field of State
type slot[T any] struct {
	category    Category
	get         func(State) []T
	set         func(*State, []T)
	id          func(T) int64
	newestFirst bool
}

var (
	noticesSlot = slot[model.Notice]{
		category:    CategoryNotices,
		get:         func(s State) []model.Notice { return s.Notices },
		set:         func(s *State, v []model.Notice) { s.Notices = v },
		id:          func(n model.Notice) int64 { return n.ID },
		newestFirst: true,
	}
	newsSlot = slot[model.NewsItem]{
		category:    CategoryNews,
		get:         func(s State) []model.NewsItem { return s.News },
		set:         func(s *State, v []model.NewsItem) { s.News = v },
		id:          func(n model.NewsItem) int64 { return n.ID },
		newestFirst: true,
	}
	pagesSlot = slot[model.Page]{
		category:    CategoryPages,
		get:         func(s State) []model.Page { return s.Pages },
		set:         func(s *State, v []model.Page) { s.Pages = v },
		id:          func(p model.Page) int64 { return p.ID },
		newestFirst: true,
	}
	carouselSlot = slot[model.CarouselItem]{
		category: CategoryCarousel,
		get:      func(s State) []model.CarouselItem { return s.Carousel },
		set:      func(s *State, v []model.CarouselItem) { s.Carousel = v },
		id:       func(c model.CarouselItem) int64 { return c.ID },
	}
	sidebarSlot = slot[model.SidebarSection]{
		category: CategorySidebar,
		get:      func(s State) []model.SidebarSection { return s.Sidebar },
		set:      func(s *State, v []model.SidebarSection) { s.Sidebar = v },
		id:       func(x model.SidebarSection) int64 { return x.ID },
	}
	widgetsSlot = slot[model.HomeWidget]{
		category: CategoryWidgets,
		get:      func(s State) []model.HomeWidget { return s.Widgets },
		set:      func(s *State, v []model.HomeWidget) { s.Widgets = v },
		id:       func(w model.HomeWidget) int64 { return w.ID },
	}
)

// loaded applies a fetched collection; an empty fetch keeps the previous value
type loaded[T any] struct {
	slot  slot[T]
	items []T
}

func (a loaded[T]) Apply(s State) State {
	if len(a.items) == 0 {
		return s
	}
	a.slot.set(&s, clone(a.items))
	return s
}

// replaced sets a collection to exactly the given rows, even when empty
type replaced[T any] struct {
	slot  slot[T]
	items []T
}

func (a replaced[T]) Apply(s State) State {
	a.slot.set(&s, clone(a.items))
	return s
}

// created inserts a confirmed row at the head (or tail for id-ordered slots)
type created[T any] struct {
	slot slot[T]
	item T
}

func (a created[T]) Apply(s State) State {
	cur := a.slot.get(s)
	next := make([]T, 0, len(cur)+1)
	if a.slot.newestFirst {
		next = append(next, a.item)
		next = append(next, cur...)
	} else {
		next = append(next, cur...)
		next = append(next, a.item)
	}
	a.slot.set(&s, next)
	return s
}

// updated replaces the row with a matching id
type updated[T any] struct {
	slot slot[T]
	item T
}

func (a updated[T]) Apply(s State) State {
	cur := a.slot.get(s)
	id := a.slot.id(a.item)
	next := clone(cur)
	for i := range next {
		if a.slot.id(next[i]) == id {
			next[i] = a.item
		}
	}
	a.slot.set(&s, next)
	return s
}

// deleted filters out the row with a matching id
type deleted[T any] struct {
	slot slot[T]
	id   int64
}

func (a deleted[T]) Apply(s State) State {
	cur := a.slot.get(s)
	next := make([]T, 0, len(cur))
	for _, item := range cur {
		if a.slot.id(item) != a.id {
			next = append(next, item)
		}
	}
	a.slot.set(&s, next)
	return s
}

type topBarSet struct{ cfg model.TopBarConfig }

func (a topBarSet) Apply(s State) State {
	s.TopBar = a.cfg
	return s
}

type footerSet struct{ cfg model.FooterConfig }

func (a footerSet) Apply(s State) State {
	s.Footer = a.cfg
	s.Footer.GovernmentLinks = clone(a.cfg.GovernmentLinks)
	return s
}

type refreshStarted struct{}

func (refreshStarted) Apply(s State) State {
	s.refreshes++
	s.IsLoading = true
	s.Error = ""
	return s
}

type refreshFinished struct {
	err string
	at  time.Time
}

func (a refreshFinished) Apply(s State) State {
	if s.refreshes > 0 {
		s.refreshes--
	}
	s.IsLoading = s.refreshes > 0
	// Error describes the most recently finished refresh
	s.Error = a.err
	s.LastRefreshed = a.at
	return s
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
