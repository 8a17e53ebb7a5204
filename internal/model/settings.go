package model

// Settings keys
const (
	TopBarKey = "topBarConfig"
	FooterKey = "footerConfig"
)

// TopBarConfig drives the contact strip above the header
type TopBarConfig struct {
	Phone        string `json:"phone" yaml:"phone"`
	Email        string `json:"email" yaml:"email"`
	ShowDateTime bool   `json:"showDateTime" yaml:"show_datetime"`
}

// FooterConfig drives the site footer
type FooterConfig struct {
	Address         string `json:"address" yaml:"address"`
	Phone           string `json:"phone" yaml:"phone"`
	Email           string `json:"email" yaml:"email"`
	GovernmentLinks []Link `json:"governmentLinks" yaml:"government_links"`
	Copyright       string `json:"copyright" yaml:"copyright"`
}

// Link is a labelled URL
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// MenuItem is an entry of the main navigation
type MenuItem struct {
	ID       string     `json:"id" yaml:"id"`
	Label    string     `json:"label" yaml:"label"`
	Link     string     `json:"link" yaml:"link"`
	Children []MenuItem `json:"children,omitempty" yaml:"children"`
}

// InfoCard is a quick-links card on the home page
type InfoCard struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Icon  string `json:"icon" yaml:"icon"`
	Links []Link `json:"links" yaml:"links"`
}
