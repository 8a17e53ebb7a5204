package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/jjenkins/boardsite/internal/model"
)

const homeNoticeLimit = 6

// PageBody is a page with its rendered HTML
type PageBody struct {
	Page           model.Page
	HTML           string
	ReadingMinutes int
}

func latestNotices(notices []model.Notice) []model.Notice {
	if len(notices) > homeNoticeLimit {
		return notices[:homeNoticeLimit]
	}
	return notices
}

// unsupportedSection fails the render; every payload kind needs a case in sectionBody
func unsupportedSection(payload model.SectionPayload) templ.Component {
	return templ.ComponentFunc(func(context.Context, io.Writer) error {
		return fmt.Errorf("unhandled sidebar payload %T", payload)
	})
}
