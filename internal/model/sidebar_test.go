package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidebarSectionDecodesPayloadByType(t *testing.T) {
	body := `{"id":7,"title":"Helplines","type":"hotlines","order_index":2,
		"payload":{"entries":[{"label":"Exam cell","number":"0800-123"}]}}`

	var s SidebarSection
	require.NoError(t, json.Unmarshal([]byte(body), &s))

	assert.Equal(t, int64(7), s.ID)
	assert.Equal(t, 2, s.OrderIndex)
	assert.Equal(t, SectionHotlines, s.Kind())
	hot, ok := s.Payload.(HotlinesPayload)
	require.True(t, ok, "payload should be HotlinesPayload, got %T", s.Payload)
	assert.Equal(t, "0800-123", hot.Entries[0].Number)
}

func TestSidebarSectionMarshalCarriesTypeTag(t *testing.T) {
	s := SidebarSection{ID: 1, Title: "Anthem", Payload: AudioPayload{Title: "Anthem", AudioURL: "/a.mp3"}}

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "audio", raw["type"])
	assert.Equal(t, "/a.mp3", raw["payload"].(map[string]any)["audio_url"])
}

func TestDecodeSectionPayloadRejectsUnknownType(t *testing.T) {
	_, err := DecodeSectionPayload("carousel", []byte(`{}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestDecodeSectionPayloadRejectsMismatchedShape(t *testing.T) {
	_, err := DecodeSectionPayload(SectionList, []byte(`{"items":"not a list"}`))
	assert.Error(t, err)
}

func TestSidebarSectionValidate(t *testing.T) {
	ok := SidebarSection{Title: "Chairman", Payload: MessagePayload{Message: "Welcome"}}
	assert.NoError(t, ok.Validate())

	noPayload := SidebarSection{Title: "Empty"}
	assert.ErrorIs(t, noPayload.Validate(), ErrInvalid)

	emptyMessage := SidebarSection{Title: "Chairman", Payload: MessagePayload{}}
	assert.ErrorIs(t, emptyMessage.Validate(), ErrInvalid)
}
