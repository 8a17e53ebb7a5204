package content

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/jjenkins/boardsite/internal/model"
	"gopkg.in/yaml.v2"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type defaultsFile struct {
	TopBar     model.TopBarConfig   `yaml:"top_bar"`
	Footer     model.FooterConfig   `yaml:"footer"`
	Notices    []model.Notice       `yaml:"notices"`
	News       []model.NewsItem     `yaml:"news"`
	LegacyNews []string             `yaml:"legacy_news"`
	Pages      []model.Page         `yaml:"pages"`
	Carousel   []model.CarouselItem `yaml:"carousel"`
	Widgets    []model.HomeWidget   `yaml:"home_widgets"`
	Sidebar    []sectionYAML        `yaml:"sidebar"`
	Menu       []model.MenuItem     `yaml:"menu"`
	InfoCards  []model.InfoCard     `yaml:"info_cards"`
}

// sectionYAML spells the sidebar union with one optional key per variant
type sectionYAML struct {
	Title     string                  `yaml:"title"`
	Type      model.SectionKind       `yaml:"type"`
	Message   *model.MessagePayload   `yaml:"message"`
	ImageCard *model.ImageCardPayload `yaml:"image_card"`
	Audio     *model.AudioPayload     `yaml:"audio"`
	List      *model.ListPayload      `yaml:"list"`
	Hotlines  *model.HotlinesPayload  `yaml:"hotlines"`
}

func (y sectionYAML) section(index int) (model.SidebarSection, error) {
	s := model.SidebarSection{ID: int64(index + 1), Title: y.Title, OrderIndex: index}
	switch y.Type {
	case model.SectionMessage:
		if y.Message != nil {
			s.Payload = *y.Message
		}
	case model.SectionImageCard:
		if y.ImageCard != nil {
			s.Payload = *y.ImageCard
		}
	case model.SectionAudio:
		if y.Audio != nil {
			s.Payload = *y.Audio
		}
	case model.SectionList:
		if y.List != nil {
			s.Payload = *y.List
		}
	case model.SectionHotlines:
		if y.Hotlines != nil {
			s.Payload = *y.Hotlines
		}
	default:
		return s, fmt.Errorf("sidebar section %q: unknown type %q", y.Title, y.Type)
	}
	if s.Payload == nil {
		return s, fmt.Errorf("sidebar section %q: missing %s payload", y.Title, y.Type)
	}
	return s, nil
}

// LoadDefaults parses a defaults document into a full state.
// Every collection in the result is non-nil.
func LoadDefaults(b []byte) (State, error) {
	var f defaultsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return State{}, fmt.Errorf("failed to parse defaults: %w", err)
	}

	news := f.News
	if len(news) == 0 && len(f.LegacyNews) > 0 {
		news = model.NewsFromLegacy(f.LegacyNews, model.NewDate(time.Now()))
		for i := range news {
			news[i].ID = int64(i + 1)
		}
	}

	sidebar := make([]model.SidebarSection, 0, len(f.Sidebar))
	for i, y := range f.Sidebar {
		s, err := y.section(i)
		if err != nil {
			return State{}, fmt.Errorf("failed to parse defaults: %w", err)
		}
		sidebar = append(sidebar, s)
	}

	footer := f.Footer
	footer.GovernmentLinks = nonNil(footer.GovernmentLinks)

	return State{
		Notices:   nonNil(f.Notices),
		News:      nonNil(news),
		Pages:     nonNil(f.Pages),
		Carousel:  nonNil(f.Carousel),
		Sidebar:   sidebar,
		Widgets:   nonNil(f.Widgets),
		TopBar:    f.TopBar,
		Footer:    footer,
		Menu:      nonNil(f.Menu),
		InfoCards: nonNil(f.InfoCards),
	}, nil
}

// Defaults returns the built-in default state
func Defaults() State {
	s, err := LoadDefaults(defaultsYAML)
	if err != nil {
		panic(err)
	}
	return s
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
