package content

import (
	"testing"
	"time"

	"github.com/jjenkins/boardsite/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestActionsDoNotMutateInputState(t *testing.T) {
	orig := []model.Notice{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}
	s := State{Notices: orig}

	next := updated[model.Notice]{slot: noticesSlot, item: model.Notice{ID: 1, Title: "changed"}}.Apply(s)
	assert.Equal(t, "a", orig[0].Title)
	assert.Equal(t, "changed", next.Notices[0].Title)

	next = deleted[model.Notice]{slot: noticesSlot, id: 1}.Apply(s)
	assert.Len(t, orig, 2)
	assert.Len(t, next.Notices, 1)
}

func TestLoadedKeepsValueOnEmpty(t *testing.T) {
	s := State{Pages: []model.Page{{ID: 1}}}
	assert.Equal(t, s, loaded[model.Page]{slot: pagesSlot}.Apply(s))
	assert.Equal(t, s, loaded[model.Page]{slot: pagesSlot, items: []model.Page{}}.Apply(s))
}

func TestLastAppliedLoadWins(t *testing.T) {
	c := NewContainer(State{})
	first := loaded[model.NewsItem]{slot: newsSlot, items: []model.NewsItem{{ID: 1}}}
	second := loaded[model.NewsItem]{slot: newsSlot, items: []model.NewsItem{{ID: 2}}}

	c.Dispatch(first)
	c.Dispatch(second)
	assert.Equal(t, int64(2), c.Snapshot().News[0].ID)
}

func TestOverlappingRefreshesKeepLoadingUntilLastFinishes(t *testing.T) {
	c := NewContainer(State{})
	c.Dispatch(refreshStarted{})
	c.Dispatch(refreshStarted{})

	c.Dispatch(refreshFinished{at: time.Now()})
	assert.True(t, c.Snapshot().IsLoading)

	c.Dispatch(refreshFinished{err: "failed to load pages", at: time.Now()})
	s := c.Snapshot()
	assert.False(t, s.IsLoading)
	assert.Equal(t, "failed to load pages", s.Error)
}

func TestCleanRefreshFinishingLastClearsError(t *testing.T) {
	c := NewContainer(State{})
	c.Dispatch(refreshStarted{})
	c.Dispatch(refreshStarted{})

	c.Dispatch(refreshFinished{err: "failed to load notices", at: time.Now()})
	assert.Equal(t, "failed to load notices", c.Snapshot().Error)

	c.Dispatch(refreshFinished{at: time.Now()})
	s := c.Snapshot()
	assert.False(t, s.IsLoading)
	assert.Empty(t, s.Error)
}
