package viewmodel

import "github.com/gofiber/fiber/v2"

// Layout is the data every page receives for the shared layout
type Layout struct {
	Page          string
	SiteTitle     string
	FromProtected bool
	IsError       bool
	Msg           fiber.Map
	Username      string
	IsAdmin       bool
	CSRF          string
	// ShowContribution toggles the member menu entry
	ShowContribution bool
}

// Page wraps the layout and the page specific data for templates
type Page struct {
	Layout
	Data fiber.Map
}

// Title composes the document title
func (l Layout) Title() string {
	if l.Page == "" {
		return l.SiteTitle
	}
	return l.SiteTitle + " | " + l.Page
}
