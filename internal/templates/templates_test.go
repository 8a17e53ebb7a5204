package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/jjenkins/boardsite/internal/content"
	"github.com/jjenkins/boardsite/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestHomeRendersEveryBlock(t *testing.T) {
	s := content.Defaults()
	html := render(t, Home(s))

	assert.Contains(t, html, "<title>Home</title>")
	assert.Contains(t, html, s.Notices[0].Title)
	assert.Contains(t, html, s.Carousel[0].Caption)
	assert.Contains(t, html, `data-kind="hotlines"`)
	assert.Contains(t, html, `<audio controls`)
	assert.Contains(t, html, templ.EscapeString(s.Footer.Copyright))
	assert.Contains(t, html, s.Menu[0].Label)
}

func TestTextIsEscaped(t *testing.T) {
	s := content.Defaults()
	s.Notices = []model.Notice{{ID: 1, Title: `<script>alert(1)</script>`, Date: model.MustDate("2024-01-01")}}

	html := render(t, Notices(s))
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestUnsafeLinksAreSanitized(t *testing.T) {
	s := content.Defaults()
	s.Notices = []model.Notice{{ID: 1, Title: "x", Date: model.MustDate("2024-01-01"), Link: "javascript:alert(1)"}}

	html := render(t, Notices(s))
	assert.NotContains(t, html, "javascript:alert")
}

func TestPageEmbedsRenderedHTML(t *testing.T) {
	s := content.Defaults()
	html := render(t, Page(s, PageBody{
		Page:           model.Page{Title: "Fee Schedule", Slug: "fee-schedule"},
		HTML:           "<table><tr><td>SSC</td></tr></table>",
		ReadingMinutes: 2,
	}))

	assert.Contains(t, html, "<table><tr><td>SSC</td></tr></table>")
	assert.Contains(t, html, "2 min read")
}

func TestStaleContentNotice(t *testing.T) {
	s := content.Defaults()
	s.Error = "failed to load notices"

	assert.Contains(t, render(t, News(s)), `class="alert"`)
}

func TestEmptyNoticeBoard(t *testing.T) {
	s := content.Defaults()
	s.Notices = []model.Notice{}

	assert.Contains(t, render(t, Notices(s)), "No notices have been published.")
}

func TestFooterCopyrightIsEscaped(t *testing.T) {
	s := content.Defaults()
	s.Footer.Copyright = "Board of Intermediate & Secondary Education"

	html := render(t, Notices(s))
	assert.Contains(t, html, "&copy; Board of Intermediate &amp; Secondary Education")
}

func TestSidebarWithoutPayloadFails(t *testing.T) {
	s := content.Defaults()
	s.Sidebar = []model.SidebarSection{{Title: "Broken"}}

	err := Home(s).Render(context.Background(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unhandled sidebar payload")
}
