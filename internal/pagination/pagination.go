// Package pagination applies sort-order and page-window constraints to
// repository queries and computes the result metadata echoed back in
// list responses.
package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Defaults applied when a page is requested without explicit values.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

var (
	// ErrInvalidSortField is returned when sort_by does not name a
	// sortable column on the target entity. Unknown fields fail fast
	// rather than being silently ignored.
	ErrInvalidSortField = errors.New("invalid sort field")
	// ErrInvalidPage is returned for page or page_size values below 1.
	ErrInvalidPage = errors.New("page and page_size must be >= 1")
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortRequest names the column and direction to order by before
// windowing. Zero value means "id descending".
type SortRequest struct {
	Field     string
	Direction Direction
}

// PageRequest is a 1-based page window.
type PageRequest struct {
	Page     int
	PageSize int
}

// Params bundles the sort and optional page window for one list call.
// A nil Page means "return everything" - the caller still gets metadata
// describing the full set.
type Params struct {
	Sort SortRequest
	Page *PageRequest
}

// Metadata describes the applied window plus the total row count of
// the un-windowed set. Total is independent of the requested page.
type Metadata struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// ParseQuery extracts pagination parameters from URL query values:
// sort_by, sort_order, page, page_size. Absent page parameters yield a
// nil Page. Malformed numbers are a caller error.
func ParseQuery(q url.Values) (Params, error) {
	p := Params{
		Sort: SortRequest{
			Field:     strings.TrimSpace(q.Get("sort_by")),
			Direction: Direction(strings.ToLower(q.Get("sort_order"))),
		},
	}

	pageStr, sizeStr := q.Get("page"), q.Get("page_size")
	if pageStr == "" && sizeStr == "" {
		return p, nil
	}

	page := PageRequest{Page: DefaultPage, PageSize: DefaultPageSize}
	if pageStr != "" {
		n, err := strconv.Atoi(pageStr)
		if err != nil || n < 1 {
			return Params{}, ErrInvalidPage
		}
		page.Page = n
	}
	if sizeStr != "" {
		n, err := strconv.Atoi(sizeStr)
		if err != nil || n < 1 {
			return Params{}, ErrInvalidPage
		}
		page.PageSize = n
	}
	p.Page = &page
	return p, nil
}

// OrderBy renders the ORDER BY clause for the sort request, validating
// the field against the entity's sortable columns. The id column is
// always appended as a deterministic tie-break so identical parameters
// against an unchanged set yield identical results, and flipping the
// direction yields the exact reverse sequence.
func (p Params) OrderBy(sortable map[string]bool) (string, error) {
	field := p.Sort.Field
	if field == "" {
		field = "id"
	}
	if !sortable[field] {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortField, field)
	}

	dir := p.Sort.Direction
	switch dir {
	case "":
		dir = Descending
	case Ascending, Descending:
	default:
		return "", fmt.Errorf("%w: direction %q", ErrInvalidSortField, p.Sort.Direction)
	}

	clause := fmt.Sprintf("ORDER BY %s %s", field, strings.ToUpper(string(dir)))
	if field != "id" {
		clause += fmt.Sprintf(", id %s", strings.ToUpper(string(dir)))
	}
	return clause, nil
}

// Window returns the LIMIT/OFFSET pair for the page request. The
// second result is false when no window applies (fetch everything).
func (p Params) Window() (limit, offset int, ok bool) {
	if p.Page == nil {
		return 0, 0, false
	}
	return p.Page.PageSize, p.Page.PageSize * (p.Page.Page - 1), true
}

// NewMetadata builds the response metadata for a list call. Without a
// page window the whole set was returned, so page_size reports the
// total.
func NewMetadata(p Params, total int) Metadata {
	if p.Page == nil {
		return Metadata{Page: 1, PageSize: total, Total: total}
	}
	return Metadata{Page: p.Page.Page, PageSize: p.Page.PageSize, Total: total}
}
