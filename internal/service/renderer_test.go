package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	r := NewRenderer()

	res, err := r.Render("# Fee Schedule\n\nFees are due **before** the deadline.\n\n| Class | Fee |\n|---|---|\n| SSC | 1500 |\n")
	require.NoError(t, err)

	assert.Contains(t, res.HTML, `<h1 id="fee-schedule">Fee Schedule</h1>`)
	assert.Contains(t, res.HTML, "<strong>before</strong>")
	assert.Contains(t, res.HTML, "<table>")
	assert.Equal(t, 1, res.ReadingMinutes)
	assert.Len(t, res.Checksum, 32)
}

func TestRenderCountsOnlyReadableText(t *testing.T) {
	r := NewRenderer()

	res, err := r.Render(`<div class="notice">ignored markup</div>

one two three`)
	require.NoError(t, err)

	assert.Equal(t, 3, res.WordCount)
	assert.Contains(t, res.HTML, `<div class="notice">`)
}

func TestRenderEmpty(t *testing.T) {
	res, err := NewRenderer().Render("")
	require.NoError(t, err)
	assert.Zero(t, res.WordCount)
	assert.Zero(t, res.ReadingMinutes)
}

func TestChecksumTracksContent(t *testing.T) {
	r := NewRenderer()
	a, _ := r.Render("same")
	b, _ := r.Render("same")
	c, _ := r.Render("different")

	assert.Equal(t, a.Checksum, b.Checksum)
	assert.NotEqual(t, a.Checksum, c.Checksum)
}
