package view

import (
	"fmt"

	"szabo-data/inkwell/internal/api"
)

// Pager drives the pagination partial. Pages are zero-based to match the
// API envelope; Display converts for humans.
type Pager struct {
	Page       int
	TotalPages int
	First      bool
	Last       bool
	BasePath   string
	ExtraQuery string
}

func NewPager(page *api.PostPage, basePath, extraQuery string) Pager {
	return Pager{
		Page:       page.Page,
		TotalPages: page.TotalPages,
		First:      page.First,
		Last:       page.Last,
		BasePath:   basePath,
		ExtraQuery: extraQuery,
	}
}

func (p Pager) Display() int { return p.Page + 1 }

func (p Pager) HasPrev() bool { return !p.First && p.Page > 0 }

func (p Pager) HasNext() bool { return !p.Last && p.Page+1 < p.TotalPages }

func (p Pager) PrevHref() string { return p.href(p.Page - 1) }

func (p Pager) NextHref() string { return p.href(p.Page + 1) }

func (p Pager) href(page int) string {
	href := fmt.Sprintf("%s?page=%d", p.BasePath, page)
	if p.ExtraQuery != "" {
		href += "&" + p.ExtraQuery
	}
	return href
}
