package content

import (
	"testing"

	"github.com/jjenkins/boardsite/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreComplete(t *testing.T) {
	s := Defaults()

	assert.NotEmpty(t, s.Notices)
	assert.NotEmpty(t, s.News, "legacy news lines are converted to records")
	assert.NotEmpty(t, s.Pages)
	assert.NotEmpty(t, s.Carousel)
	assert.NotEmpty(t, s.Widgets)
	assert.NotEmpty(t, s.Menu)
	assert.NotEmpty(t, s.InfoCards)
	assert.NotEmpty(t, s.TopBar.Phone)
	assert.NotEmpty(t, s.Footer.GovernmentLinks)

	require.Len(t, s.Sidebar, 4)
	for i, sec := range s.Sidebar {
		assert.Equal(t, i, sec.OrderIndex)
		assert.NoError(t, sec.Validate())
	}
	assert.Equal(t, model.SectionMessage, s.Sidebar[0].Kind())
	assert.Equal(t, model.SectionHotlines, s.Sidebar[3].Kind())
}

func TestLoadDefaultsNeverLeavesNilCollections(t *testing.T) {
	s, err := LoadDefaults([]byte("top_bar:\n  phone: \"1\"\n"))
	require.NoError(t, err)

	assert.NotNil(t, s.Notices)
	assert.NotNil(t, s.News)
	assert.NotNil(t, s.Pages)
	assert.NotNil(t, s.Carousel)
	assert.NotNil(t, s.Sidebar)
	assert.NotNil(t, s.Widgets)
	assert.NotNil(t, s.Footer.GovernmentLinks)
}

func TestLoadDefaultsRejectsMissingPayload(t *testing.T) {
	doc := "sidebar:\n  - title: \"Links\"\n    type: \"list\"\n"
	_, err := LoadDefaults([]byte(doc))
	assert.Error(t, err)

	doc = "sidebar:\n  - title: \"Video\"\n    type: \"video\"\n"
	_, err = LoadDefaults([]byte(doc))
	assert.Error(t, err)
}
