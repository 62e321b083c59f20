package pagination

import "strings"

const (
	// DefaultPerPage is the standard page size when a limit is not provided.
	DefaultPerPage = 25
	// MaxPerPage caps how many rows any list query can request.
	MaxPerPage = 100
)

// Params holds page-based pagination and sorting inputs from controllers.
type Params struct {
	Page    int
	PerPage int
	Sort    string
	Desc    bool
}

// Meta carries the pagination metadata list responses expose alongside rows.
type Meta struct {
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	Total    int64 `json:"total"`
	LastPage int   `json:"last_page"`
}

// Normalize clamps the page and per-page values and whitelists the sort
// column, falling back to the provided default when the input is unknown.
func Normalize(p Params, sortable []string, defaultSort string) Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}

	sort := strings.TrimSpace(p.Sort)
	allowed := false
	for _, candidate := range sortable {
		if candidate == sort {
			allowed = true
			break
		}
	}
	if !allowed {
		sort = defaultSort
	}
	p.Sort = sort
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// OrderClause renders the SQL ORDER BY expression for the normalized params.
func (p Params) OrderClause() string {
	dir := "ASC"
	if p.Desc {
		dir = "DESC"
	}
	return p.Sort + " " + dir
}

// MetaFor computes pagination metadata for a total row count.
func MetaFor(p Params, total int64) Meta {
	last := 1
	if p.PerPage > 0 {
		last = int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
		if last < 1 {
			last = 1
		}
	}
	return Meta{
		Page:     p.Page,
		PerPage:  p.PerPage,
		Total:    total,
		LastPage: last,
	}
}
