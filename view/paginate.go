package view

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page is a 1-indexed pagination window.
type Page struct {
	Number int `json:"page"`
	Limit  int `json:"limit"`
}

// Skip is the number of documents preceding this page.
func (p Page) Skip() int {
	return (p.Number - 1) * p.Limit
}

// NormalizePage coerces untrusted page/limit parameters into a valid
// window. Non-numeric or non-positive values fall back to the defaults;
// limits above max are clamped, not rejected.
func NormalizePage(page, limit string, max int) Page {
	p, err := strconv.Atoi(page)
	if err != nil || p < 1 {
		p = DefaultPage
	}

	l, err := strconv.Atoi(limit)
	if err != nil || l < 1 {
		l = DefaultLimit
	}
	if max > 0 && l > max {
		l = max
	}

	return Page{Number: p, Limit: l}
}

// Result is one page of resolved views.
type Result struct {
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
	Items []Document `json:"items"`
}
