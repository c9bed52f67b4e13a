package models

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/shelf/internal/shared"
)

// SortKey names the field the filter endpoint sorts by.
type SortKey string

const (
	SortByTitle         SortKey = "title"
	SortByAuthor        SortKey = "author"
	SortByReadingStatus SortKey = "readingStatus"
	SortByCategory      SortKey = "category"
)

// SortKeys lists the supported sort keys in cycling order.
var SortKeys = []SortKey{SortByTitle, SortByAuthor, SortByReadingStatus, SortByCategory}

// Valid reports whether k is a supported sort key.
func (k SortKey) Valid() bool {
	for _, s := range SortKeys {
		if s == k {
			return true
		}
	}
	return false
}

// Next returns the sort key after k, wrapping around.
func (k SortKey) Next() SortKey {
	for i, s := range SortKeys {
		if s == k {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortByTitle
}

// SortOrder is ascending or descending.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Valid reports whether o is asc or desc.
func (o SortOrder) Valid() bool {
	return o == OrderAsc || o == OrderDesc
}

// Toggle flips the order.
func (o SortOrder) Toggle() SortOrder {
	if o == OrderDesc {
		return OrderAsc
	}
	return OrderDesc
}

// FilterSpec holds the transient filter and sort settings for the filter endpoint.
// Title, Author and Category match by substring; ReadingStatus matches exactly.
type FilterSpec struct {
	Title         string
	Author        string
	ReadingStatus ReadingStatus
	Category      string
	SortBy        SortKey
	Order         SortOrder
}

// DefaultFilter sorts by title ascending with no filters.
func DefaultFilter() FilterSpec {
	return FilterSpec{SortBy: SortByTitle, Order: OrderAsc}
}

// IsZero reports whether no filter field is set. Sort settings are ignored.
func (f FilterSpec) IsZero() bool {
	return f.Title == "" && f.Author == "" && f.ReadingStatus == "" && f.Category == ""
}

// Validate rejects unknown sort keys, orders and statuses. Empty values are allowed.
func (f FilterSpec) Validate() error {
	if f.SortBy != "" && !f.SortBy.Valid() {
		return fmt.Errorf("%w: unknown sort key %q", shared.ErrValidation, f.SortBy)
	}
	if f.Order != "" && !f.Order.Valid() {
		return fmt.Errorf("%w: unknown sort order %q", shared.ErrValidation, f.Order)
	}
	if f.ReadingStatus != "" && !f.ReadingStatus.Valid() {
		return fmt.Errorf("%w: unknown reading status %q", shared.ErrValidation, f.ReadingStatus)
	}
	return nil
}

// Query encodes the filter as query parameters, omitting empty fields.
func (f FilterSpec) Query() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			q.Set(k, v)
		}
	}
	set("title", f.Title)
	set("author", f.Author)
	set("readingStatus", string(f.ReadingStatus))
	set("category", f.Category)
	set("sortBy", string(f.SortBy))
	set("order", string(f.Order))
	return q
}

// String describes the sort for status lines, e.g. "title asc".
func (f FilterSpec) String() string {
	by, order := f.SortBy, f.Order
	if by == "" {
		by = SortByTitle
	}
	if order == "" {
		order = OrderAsc
	}
	return fmt.Sprintf("%s %s", by, order)
}
