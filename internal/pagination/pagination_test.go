package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sortable = map[string]bool{"id": true, "created_at": true, "priority": true}

func TestParseQuery_NoParams(t *testing.T) {
	p, err := ParseQuery(url.Values{})
	require.NoError(t, err)
	assert.Nil(t, p.Page)
	assert.Empty(t, p.Sort.Field)
}

func TestParseQuery_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		query    url.Values
		wantPage int
		wantSize int
	}{
		{"page only", url.Values{"page": {"3"}}, 3, DefaultPageSize},
		{"size only", url.Values{"page_size": {"25"}}, DefaultPage, 25},
		{"both", url.Values{"page": {"2"}, "page_size": {"5"}}, 2, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseQuery(tt.query)
			require.NoError(t, err)
			require.NotNil(t, p.Page)
			assert.Equal(t, tt.wantPage, p.Page.Page)
			assert.Equal(t, tt.wantSize, p.Page.PageSize)
		})
	}
}

func TestParseQuery_Invalid(t *testing.T) {
	for _, q := range []url.Values{
		{"page": {"0"}},
		{"page": {"-1"}},
		{"page": {"abc"}},
		{"page_size": {"0"}},
		{"page_size": {"x"}},
	} {
		_, err := ParseQuery(q)
		assert.ErrorIs(t, err, ErrInvalidPage, "query %v", q)
	}
}

func TestOrderBy_DefaultsToIDDescending(t *testing.T) {
	clause, err := Params{}.OrderBy(sortable)
	require.NoError(t, err)
	assert.Equal(t, "ORDER BY id DESC", clause)
}

func TestOrderBy_TieBreakByID(t *testing.T) {
	p := Params{Sort: SortRequest{Field: "created_at", Direction: Ascending}}
	clause, err := p.OrderBy(sortable)
	require.NoError(t, err)
	assert.Equal(t, "ORDER BY created_at ASC, id ASC", clause)
}

func TestOrderBy_UnknownFieldFailsFast(t *testing.T) {
	p := Params{Sort: SortRequest{Field: "owner.email"}}
	_, err := p.OrderBy(sortable)
	assert.ErrorIs(t, err, ErrInvalidSortField)

	p = Params{Sort: SortRequest{Field: "password_hash"}}
	_, err = p.OrderBy(sortable)
	assert.ErrorIs(t, err, ErrInvalidSortField)
}

func TestOrderBy_BadDirection(t *testing.T) {
	p := Params{Sort: SortRequest{Field: "id", Direction: "sideways"}}
	_, err := p.OrderBy(sortable)
	assert.ErrorIs(t, err, ErrInvalidSortField)
}

func TestWindow(t *testing.T) {
	limit, offset, ok := Params{Page: &PageRequest{Page: 3, PageSize: 10}}.Window()
	require.True(t, ok)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 20, offset)

	_, _, ok = Params{}.Window()
	assert.False(t, ok)
}

func TestNewMetadata(t *testing.T) {
	// Absent pagination: full set with page_size = total.
	meta := NewMetadata(Params{}, 25)
	assert.Equal(t, Metadata{Page: 1, PageSize: 25, Total: 25}, meta)

	// Windowed: echoes the applied page, total stays the un-windowed count.
	meta = NewMetadata(Params{Page: &PageRequest{Page: 4, PageSize: 10}}, 25)
	assert.Equal(t, Metadata{Page: 4, PageSize: 10, Total: 25}, meta)
}
