package content

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jjenkins/boardsite/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) (*fakeBackend, *Container, *Mutator) {
	t.Helper()
	fb := newFakeBackend()
	fb.notices.rows = []model.Notice{
		{ID: 2, Title: "Second", Date: model.MustDate("2024-02-01")},
		{ID: 1, Title: "First", Date: model.MustDate("2024-01-01")},
	}
	c := NewContainer(Defaults())
	NewAggregator(fb.backend(), c, quietLoggers()).Refresh(context.Background())
	return fb, c, NewMutator(fb.backend(), c, nil)
}

func TestCreateNoticePrepends(t *testing.T) {
	_, c, m := seeded(t)
	before := c.Snapshot().Notices

	saved, err := m.CreateNotice(context.Background(), model.Notice{Title: "Third", Date: model.MustDate("2024-03-01")})
	require.NoError(t, err)

	after := c.Snapshot().Notices
	assert.NotZero(t, saved.ID)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, saved, after[0])
	assert.Equal(t, before, after[1:])
}

func TestCreateCarouselAppends(t *testing.T) {
	_, c, m := seeded(t)

	saved, err := m.CreateCarouselItem(context.Background(), model.CarouselItem{Image: "/new.jpg"})
	require.NoError(t, err)

	items := c.Snapshot().Carousel
	assert.Equal(t, saved, items[len(items)-1])
}

func TestMutationFailureLeavesStateUntouched(t *testing.T) {
	fb, c, m := seeded(t)
	fb.notices.writeErr = errors.New("permission denied")
	fb.sidebar.writeErr = errors.New("permission denied")
	fb.settings.writeErr = errors.New("permission denied")
	before := c.Snapshot()
	ctx := context.Background()

	_, err := m.CreateNotice(ctx, model.Notice{Title: "x", Date: model.MustDate("2024-01-01")})
	assertMutationError(t, err, CategoryNotices, OpCreate)

	_, err = m.UpdateNotice(ctx, model.Notice{ID: 1, Title: "x", Date: model.MustDate("2024-01-01")})
	assertMutationError(t, err, CategoryNotices, OpUpdate)

	err = m.DeleteNotice(ctx, 1)
	assertMutationError(t, err, CategoryNotices, OpDelete)

	_, err = m.ReplaceSidebar(ctx, []model.SidebarSection{{Title: "a", Payload: model.MessagePayload{Message: "m"}}})
	assertMutationError(t, err, CategorySidebar, OpReplace)

	_, err = m.UpdateTopBar(ctx, model.TopBarConfig{Phone: "1"})
	assertMutationError(t, err, CategoryTopBar, OpUpsert)

	assert.Equal(t, before, c.Snapshot())
}

func TestValidationFailureNeverReachesBackend(t *testing.T) {
	fb, c, m := seeded(t)
	before := c.Snapshot()

	_, err := m.CreateNotice(context.Background(), model.Notice{})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalid)
	assert.Len(t, fb.notices.rows, 2)
	assert.Equal(t, before, c.Snapshot())
}

func TestUpdateNoticeReplacesByID(t *testing.T) {
	_, c, m := seeded(t)

	edited := model.Notice{ID: 1, Title: "First (revised)", Date: model.MustDate("2024-01-01")}
	_, err := m.UpdateNotice(context.Background(), edited)
	require.NoError(t, err)

	notices := c.Snapshot().Notices
	require.Len(t, notices, 2)
	assert.Equal(t, "Second", notices[0].Title)
	assert.Equal(t, edited, notices[1])
}

func TestUpdateMissingRowIsAFailure(t *testing.T) {
	_, c, m := seeded(t)
	before := c.Snapshot()

	_, err := m.UpdateNotice(context.Background(), model.Notice{ID: 404, Title: "Ghost", Date: model.MustDate("2024-01-01")})
	require.Error(t, err)
	assert.ErrorIs(t, err, errNoRow)
	assert.Equal(t, before, c.Snapshot())
}

func TestUpdateWithoutIDIsInvalid(t *testing.T) {
	_, _, m := seeded(t)
	_, err := m.UpdateNotice(context.Background(), model.Notice{Title: "No id", Date: model.MustDate("2024-01-01")})
	assert.ErrorIs(t, err, model.ErrInvalid)
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	_, c, m := seeded(t)
	before := c.Snapshot().Notices

	require.NoError(t, m.DeleteNotice(context.Background(), 2))

	after := c.Snapshot().Notices
	assert.Len(t, after, len(before)-1)
	for _, n := range after {
		assert.NotEqual(t, int64(2), n.ID)
	}
}

func TestReplaceSidebarUsesEchoedRows(t *testing.T) {
	_, c, m := seeded(t)
	input := []model.SidebarSection{
		{ID: 77, Title: "A", OrderIndex: 9, Payload: model.MessagePayload{Message: "hello"}},
		{ID: 77, Title: "B", Payload: model.AudioPayload{AudioURL: "/b.mp3"}},
		{Title: "C", Payload: model.HotlinesPayload{Entries: []model.Hotline{{Label: "x", Number: "1"}}}},
	}

	saved, err := m.ReplaceSidebar(context.Background(), input)
	require.NoError(t, err)

	got := c.Snapshot().Sidebar
	assert.Equal(t, saved, got)
	require.Len(t, got, 3)
	for i, s := range got {
		assert.Equal(t, i, s.OrderIndex)
		assert.Greater(t, s.ID, int64(1000), "ids come from the store")
	}
	assert.Equal(t, 9, input[0].OrderIndex, "caller's slice is not modified")
}

func TestReplaceWidgetsWithEmptyListClears(t *testing.T) {
	_, c, m := seeded(t)
	require.NotEmpty(t, c.Snapshot().Widgets)

	_, err := m.ReplaceWidgets(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, c.Snapshot().Widgets)
	assert.Empty(t, c.Snapshot().Widgets)
}

func TestSettingsUpsertReplacesOnlyItsSlot(t *testing.T) {
	fb, c, m := seeded(t)
	before := c.Snapshot()
	v := model.TopBarConfig{Phone: "+1 555", Email: "desk@board.test", ShowDateTime: true}

	raw, _ := json.Marshal(v)
	stored, err := m.UpdateSetting(context.Background(), model.TopBarKey, raw)
	require.NoError(t, err)
	assert.Equal(t, v, stored)

	after := c.Snapshot()
	assert.Equal(t, v, after.TopBar)
	after.TopBar = before.TopBar
	assert.Equal(t, before, after)
	assert.JSONEq(t, string(raw), string(fb.settings.values[model.TopBarKey]))
}

func TestUpdateFooter(t *testing.T) {
	_, c, m := seeded(t)
	v := model.FooterConfig{Address: "Multan", GovernmentLinks: []model.Link{{Label: "Gov", URL: "https://gov"}}}

	_, err := m.UpdateFooter(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, v, c.Snapshot().Footer)
}

func TestUnknownSettingKey(t *testing.T) {
	_, _, m := seeded(t)
	_, err := m.UpdateSetting(context.Background(), "themeColor", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrUnknownSetting)
}

func TestCreatePageDerivesSlug(t *testing.T) {
	_, c, m := seeded(t)
	saved, err := m.CreatePage(context.Background(), model.Page{Title: "Fee Schedule 2024"})
	require.NoError(t, err)
	assert.Equal(t, "fee-schedule-2024", saved.Slug)

	p, ok := c.Snapshot().PageBySlug("fee-schedule-2024")
	assert.True(t, ok)
	assert.Equal(t, saved, p)
}

func assertMutationError(t *testing.T, err error, c Category, op Op) {
	t.Helper()
	var me *MutationError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, c, me.Category)
	assert.Equal(t, op, me.Op)
}
