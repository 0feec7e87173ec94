package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"bookcatalog/internal/book"
)

// ErrShortRow is returned for a CSV row with fewer than the seven book columns.
var ErrShortRow = errors.New("csv row has fewer than 7 columns")

const columnCount = 7

var numeric = regexp.MustCompile(`^[0-9]+$`)

// Parse reads every row of r as a book: title, author, date, views, likes,
// link, rating. No row is treated as a header. Extra columns are ignored.
func Parse(r io.Reader) ([]book.Book, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var out []book.Book
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		b, err := parseRow(row)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, b)
	}
}

func parseRow(row []string) (book.Book, error) {
	if len(row) < columnCount {
		return book.Book{}, fmt.Errorf("%w: got %d", ErrShortRow, len(row))
	}
	return book.Book{
		Title:  row[0],
		Author: row[1],
		Date:   row[2],
		Views:  row[3],
		Likes:  row[4],
		Link:   row[5],
		Rating: ParseRating(row[6]),
	}, nil
}

// ParseRating returns the value of a purely numeric field and 0 for anything
// else, including the empty string and values above book.MaxRating.
func ParseRating(field string) int {
	if !numeric.MatchString(field) {
		return 0
	}
	n, err := strconv.ParseInt(field, 10, 32)
	if err != nil {
		return 0
	}
	return int(n)
}
