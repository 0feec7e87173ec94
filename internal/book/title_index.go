package book

import (
	"bytes"
	"encoding/json"
)

// TitleIndex maps titles to books, keeping the order in which titles were
// first added. Adding a title that is already present is a no-op. The zero
// value is an empty index ready to use.
type TitleIndex struct {
	keys  []string
	books map[string]Book
}

// IndexByTitle builds a TitleIndex from books in order; the first book of each title wins.
func IndexByTitle(books []Book) *TitleIndex {
	idx := &TitleIndex{books: make(map[string]Book, len(books))}
	for _, b := range books {
		idx.Add(b)
	}
	return idx
}

// Add inserts b under its key unless that key is already taken.
func (t *TitleIndex) Add(b Book) {
	if t.books == nil {
		t.books = make(map[string]Book)
	}
	if _, ok := t.books[b.Key()]; ok {
		return
	}
	t.keys = append(t.keys, b.Key())
	t.books[b.Key()] = b
}

// Get returns the book stored under title.
func (t *TitleIndex) Get(title string) (Book, bool) {
	b, ok := t.books[title]
	return b, ok
}

// Len returns the number of titles.
func (t *TitleIndex) Len() int {
	return len(t.keys)
}

// Titles returns the titles in insertion order.
func (t *TitleIndex) Titles() []string {
	return append([]string(nil), t.keys...)
}

// MarshalJSON encodes the index as a JSON object whose keys follow insertion order.
func (t *TitleIndex) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(t.books[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
