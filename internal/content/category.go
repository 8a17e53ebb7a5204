package content

import "github.com/jjenkins/boardsite/internal/model"

// Category names one remotely sourced slot of the content state
type Category string

const (
	CategoryNotices  Category = "notices"
	CategoryNews     Category = "news_items"
	CategoryPages    Category = "pages"
	CategoryCarousel Category = "carousel_items"
	CategoryWidgets  Category = "home_widgets"
	CategorySidebar  Category = "sidebar_sections"
	CategoryTopBar   Category = model.TopBarKey
	CategoryFooter   Category = model.FooterKey
)

// Categories lists every category fetched by a refresh
var Categories = []Category{
	CategoryNotices,
	CategoryNews,
	CategoryPages,
	CategoryCarousel,
	CategoryWidgets,
	CategorySidebar,
	CategoryTopBar,
	CategoryFooter,
}
