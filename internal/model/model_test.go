package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var n Notice
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Results","date":"2024-05-01"}`), &n))
	assert.Equal(t, "2024-05-01", n.Date.String())

	b, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"date":"2024-05-01"`)
}

func TestDateAcceptsTimestamps(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalJSON([]byte(`"2024-05-01T13:45:00Z"`)))
	assert.Equal(t, "2024-05-01", d.String())
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2023, 1, 2, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2023-01-02", d.String())

	require.NoError(t, d.Scan("2023-03-04T00:00:00Z"))
	assert.Equal(t, "2023-03-04", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}

func TestNoticeValidate(t *testing.T) {
	assert.ErrorIs(t, Notice{Date: MustDate("2024-01-01")}.Validate(), ErrInvalid)
	assert.ErrorIs(t, Notice{Title: "x"}.Validate(), ErrInvalid)
	assert.NoError(t, Notice{Title: "x", Date: MustDate("2024-01-01")}.Validate())
}

func TestPageSlug(t *testing.T) {
	assert.Equal(t, "about-the-board", Slugify("  About the Board! "))
	assert.Equal(t, "exam-2024", Slugify("Exam -- 2024"))

	assert.NoError(t, Page{Title: "About", Slug: "about-us"}.Validate())
	assert.ErrorIs(t, Page{Title: "About", Slug: "About Us"}.Validate(), ErrInvalid)
}

func TestPageSlugKeepsOtherScripts(t *testing.T) {
	assert.Equal(t, "نتائج", Slugify("نتائج"))
	assert.Equal(t, "نتائج-میٹرک-2024", Slugify("نتائج میٹرک 2024"))
	assert.Equal(t, "café-rules", Slugify("Café Rules"))

	assert.NoError(t, Page{Title: "نتائج میٹرک", Slug: Slugify("نتائج میٹرک")}.Validate())
}

func TestPageWithoutSlugAsksForOne(t *testing.T) {
	err := Page{Title: "???", Slug: Slugify("???")}.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "enter one")
}

func TestNewsFromLegacy(t *testing.T) {
	day := MustDate("2024-02-02")
	items := NewsFromLegacy([]string{"Admit cards issued", "  ", "Results on Friday"}, day)

	require.Len(t, items, 2)
	assert.Equal(t, "Admit cards issued", items[0].Content)
	assert.Equal(t, day, items[1].Date)
	assert.Zero(t, items[0].ID)
}

func TestWidgetValidate(t *testing.T) {
	assert.NoError(t, HomeWidget{Kind: WidgetMap, URL: "https://maps"}.Validate())
	assert.ErrorIs(t, HomeWidget{Kind: "gif", URL: "x"}.Validate(), ErrInvalid)
}
