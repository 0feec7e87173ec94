package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"bookcatalog/internal/book"
	"bookcatalog/internal/database"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// OpenSQLite opens a private in-memory database closed at the end of the test.
func OpenSQLite(t testing.TB) *bun.DB {
	t.Helper()
	db, err := database.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SampleBooks is a small catalog with two authors and overlapping title words.
func SampleBooks() []book.Book {
	return []book.Book{
		{Title: "Java Programming", Author: "Ann Lee", Date: "2018", Views: "100", Likes: "10", Link: "https://example.com/jp", Rating: 3},
		{Title: "Learning Go", Author: "Bob Ray", Date: "2021", Views: "200", Likes: "20", Link: "https://example.com/lg", Rating: 5},
		{Title: "java for kids", Author: "Ann Lee", Date: "2012", Views: "50", Likes: "5", Link: "https://example.com/jk", Rating: 4},
		{Title: "Programming Pearls", Author: "Cid Moe", Date: "1999", Views: "70", Likes: "7", Link: "https://example.com/pp", Rating: 1},
	}
}

// NewRequest builds a GET request, escaping each path segment.
func NewRequest(segments ...string) *http.Request {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return httptest.NewRequest(http.MethodGet, "/"+strings.Join(escaped, "/"), nil)
}

// Do serves r on h and records the response.
func Do(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

// DecodeJSON decodes the recorded body into T.
func DecodeJSON[T any](t testing.TB, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), "body: %s", w.Body.String())
	return v
}

// Titles returns the titles of books in order.
func Titles(books []book.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}
