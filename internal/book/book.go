// Package book is the catalog core: the Book record, the storage gateway and
// its Postgres and SQLite implementations, the rating-bumping lookup service
// and the HTTP handlers.
package book

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// MaxRating is the largest rating the books table can hold (a 32-bit INTEGER).
const MaxRating = math.MaxInt32

// ErrUnknownSortField is returned when a sort order names a column the books table does not have.
var ErrUnknownSortField = errors.New("unknown sort field")

// Book represents a catalog record.
type Book struct {
	ID     int64  `json:"id" bun:",pk,autoincrement"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Date   string `json:"date"`
	Views  string `json:"views"`
	Likes  string `json:"likes"`
	Link   string `json:"link"`
	Rating int    `json:"rating"`
}

// Key is the identity of a book. Only the title takes part, so two distinct
// records sharing a title compare equal. Callers that deduplicate on Key
// collapse them.
func (b Book) Key() string {
	return b.Title
}

// Equal reports whether b and other have the same identity (see Key).
func (b Book) Equal(other Book) bool {
	return b.Key() == other.Key()
}

// Direction is a sort direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// Order sorts by one field.
type Order struct {
	Field     string
	Direction Direction
}

// Sort is an ordered list of orders. The zero value is unsorted.
type Sort []Order

// By builds a Sort from a single order.
func By(dir Direction, field string) Sort {
	return Sort{{Field: field, Direction: dir}}
}

// ByRatingDesc is the order every catalog lookup uses.
var ByRatingDesc = By(Desc, "rating")

// Unsorted reports whether s imposes no ordering.
func (s Sort) Unsorted() bool {
	return len(s) == 0
}

// sortColumns maps sortable fields to columns of the books table.
var sortColumns = map[string]string{
	"id":     "id",
	"title":  "title",
	"author": "author",
	"date":   "date",
	"views":  "views",
	"likes":  "likes",
	"link":   "link",
	"rating": "rating",
}

// Columns validates s and returns its "column DIRECTION" terms in order.
func (s Sort) Columns() ([]string, error) {
	out := make([]string, 0, len(s))
	for _, o := range s {
		col, ok := sortColumns[strings.ToLower(o.Field)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSortField, o.Field)
		}
		out = append(out, col+" "+o.Direction.String())
	}
	return out, nil
}
