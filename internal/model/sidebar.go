package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SectionKind is the variant tag of a sidebar section
type SectionKind string

const (
	SectionMessage   SectionKind = "message"
	SectionImageCard SectionKind = "image_card"
	SectionAudio     SectionKind = "audio"
	SectionList      SectionKind = "list"
	SectionHotlines  SectionKind = "hotlines"
)

// SectionKinds lists every known variant in display-agnostic order
var SectionKinds = []SectionKind{SectionMessage, SectionImageCard, SectionAudio, SectionList, SectionHotlines}

// SectionPayload is the variant-specific body of a sidebar section.
// Only the payload types in this package implement it.
type SectionPayload interface {
	Kind() SectionKind
	validate() error
}

// MessagePayload is a message from an official, e.g. the chairman's desk
type MessagePayload struct {
	Author   string `json:"author" yaml:"author"`
	Role     string `json:"role" yaml:"role"`
	Message  string `json:"message" yaml:"message"`
	ImageURL string `json:"image_url,omitempty" yaml:"image_url"`
}

// ImageCardPayload is a linked image
type ImageCardPayload struct {
	ImageURL string `json:"image_url" yaml:"image_url"`
	Caption  string `json:"caption,omitempty" yaml:"caption"`
	Link     string `json:"link,omitempty" yaml:"link"`
}

// AudioPayload is an embedded audio clip, e.g. the board anthem
type AudioPayload struct {
	Title    string `json:"title" yaml:"title"`
	AudioURL string `json:"audio_url" yaml:"audio_url"`
}

// ListPayload is a list of links
type ListPayload struct {
	Items []Link `json:"items" yaml:"items"`
}

// HotlinesPayload is a list of phone numbers
type HotlinesPayload struct {
	Entries []Hotline `json:"entries" yaml:"entries"`
}

// Hotline is a labelled phone number
type Hotline struct {
	Label  string `json:"label" yaml:"label"`
	Number string `json:"number" yaml:"number"`
}

func (MessagePayload) Kind() SectionKind   { return SectionMessage }
func (ImageCardPayload) Kind() SectionKind { return SectionImageCard }
func (AudioPayload) Kind() SectionKind     { return SectionAudio }
func (ListPayload) Kind() SectionKind      { return SectionList }
func (HotlinesPayload) Kind() SectionKind  { return SectionHotlines }

func (p MessagePayload) validate() error {
	if strings.TrimSpace(p.Message) == "" {
		return invalid("message section needs a message")
	}
	return nil
}

func (p ImageCardPayload) validate() error {
	if strings.TrimSpace(p.ImageURL) == "" {
		return invalid("image card section needs an image_url")
	}
	return nil
}

func (p AudioPayload) validate() error {
	if strings.TrimSpace(p.AudioURL) == "" {
		return invalid("audio section needs an audio_url")
	}
	return nil
}

func (p ListPayload) validate() error {
	for _, item := range p.Items {
		if item.Label == "" {
			return invalid("list section items need a label")
		}
	}
	return nil
}

func (p HotlinesPayload) validate() error {
	for _, e := range p.Entries {
		if e.Number == "" {
			return invalid("hotline entries need a number")
		}
	}
	return nil
}

// SidebarSection is one configurable block of the site sidebar
type SidebarSection struct {
	ID         int64
	Title      string
	OrderIndex int
	Payload    SectionPayload
}

// Kind returns the variant tag, derived from the payload
func (s SidebarSection) Kind() SectionKind {
	if s.Payload == nil {
		return ""
	}
	return s.Payload.Kind()
}

func (s SidebarSection) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return invalid("sidebar section title is required")
	}
	if s.Payload == nil {
		return invalid("sidebar section payload is required")
	}
	return s.Payload.validate()
}

type sectionJSON struct {
	ID         int64           `json:"id"`
	Title      string          `json:"title"`
	Type       SectionKind     `json:"type"`
	OrderIndex int             `json:"order_index"`
	Payload    json.RawMessage `json:"payload"`
}

func (s SidebarSection) MarshalJSON() ([]byte, error) {
	payload, err := json.Marshal(s.Payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(sectionJSON{
		ID:         s.ID,
		Title:      s.Title,
		Type:       s.Kind(),
		OrderIndex: s.OrderIndex,
		Payload:    payload,
	})
}

func (s *SidebarSection) UnmarshalJSON(b []byte) error {
	var raw sectionJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	payload, err := DecodeSectionPayload(raw.Type, raw.Payload)
	if err != nil {
		return err
	}
	*s = SidebarSection{
		ID:         raw.ID,
		Title:      raw.Title,
		OrderIndex: raw.OrderIndex,
		Payload:    payload,
	}
	return nil
}

// DecodeSectionPayload decodes the JSON body stored for a section of the given kind
func DecodeSectionPayload(kind SectionKind, raw []byte) (SectionPayload, error) {
	if len(raw) == 0 || string(raw) == "null" {
		raw = []byte("{}")
	}
	var (
		payload SectionPayload
		err     error
	)
	switch kind {
	case SectionMessage:
		var p MessagePayload
		err = json.Unmarshal(raw, &p)
		payload = p
	case SectionImageCard:
		var p ImageCardPayload
		err = json.Unmarshal(raw, &p)
		payload = p
	case SectionAudio:
		var p AudioPayload
		err = json.Unmarshal(raw, &p)
		payload = p
	case SectionList:
		var p ListPayload
		err = json.Unmarshal(raw, &p)
		payload = p
	case SectionHotlines:
		var p HotlinesPayload
		err = json.Unmarshal(raw, &p)
		payload = p
	default:
		return nil, invalid(fmt.Sprintf("unknown sidebar section type %q", kind))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", kind, err)
	}
	return payload, nil
}
