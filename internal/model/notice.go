package model

import (
	"errors"
	"strings"
)

// ErrInvalid marks entity validation failures
var ErrInvalid = errors.New("invalid content")

// Notice is an entry on the notice board
type Notice struct {
	ID       int64  `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Date     Date   `json:"date" yaml:"date"`
	Category string `json:"category" yaml:"category"`
	Link     string `json:"link" yaml:"link"`
}

func (n Notice) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return invalid("notice title is required")
	}
	if n.Date.IsZero() {
		return invalid("notice date is required")
	}
	return nil
}

// NewsItem is a short news ticker entry
type NewsItem struct {
	ID      int64  `json:"id" yaml:"id"`
	Content string `json:"content" yaml:"content"`
	Date    Date   `json:"date" yaml:"date"`
}

func (n NewsItem) Validate() error {
	if strings.TrimSpace(n.Content) == "" {
		return invalid("news content is required")
	}
	return nil
}

// NewsFromLegacy converts the old plain-string news list into records.
// Entries keep their list order; ids are left for the store to assign.
func NewsFromLegacy(lines []string, date Date) []NewsItem {
	items := make([]NewsItem, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, NewsItem{Content: line, Date: date})
	}
	return items
}

// CarouselItem is one slide of the home page carousel
type CarouselItem struct {
	ID      int64  `json:"id" yaml:"id"`
	Image   string `json:"image" yaml:"image"`
	Caption string `json:"caption" yaml:"caption"`
}

func (c CarouselItem) Validate() error {
	if strings.TrimSpace(c.Image) == "" {
		return invalid("carousel image is required")
	}
	return nil
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrInvalid }

func invalid(msg string) error {
	return &validationError{msg: msg}
}
