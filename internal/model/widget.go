package model

import "strings"

// WidgetKind is the variant tag of a home page widget
type WidgetKind string

const (
	WidgetYouTube WidgetKind = "youtube"
	WidgetMap     WidgetKind = "map"
	WidgetIframe  WidgetKind = "iframe"
)

// HomeWidget is an embedded block on the home page
type HomeWidget struct {
	ID    int64      `json:"id" yaml:"id"`
	Title string     `json:"title" yaml:"title"`
	Kind  WidgetKind `json:"type" yaml:"type"`
	URL   string     `json:"url" yaml:"url"`
}

func (w HomeWidget) Validate() error {
	if strings.TrimSpace(w.URL) == "" {
		return invalid("widget url is required")
	}
	switch w.Kind {
	case WidgetYouTube, WidgetMap, WidgetIframe:
		return nil
	default:
		return invalid("unknown widget type " + string(w.Kind))
	}
}
