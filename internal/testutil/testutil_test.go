package testutil

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequest_EscapesSegments(t *testing.T) {
	r := NewRequest("book", "title", "Design Patterns: Elements")

	assert.Equal(t, http.MethodGet, r.Method)
	assert.Equal(t, "/book/title/Design Patterns: Elements", r.URL.Path)
	assert.Equal(t, "/book/title/Design%20Patterns:%20Elements", r.URL.EscapedPath())
}

func TestTitles(t *testing.T) {
	assert.Equal(t, []string{"Java Programming", "Learning Go", "java for kids", "Programming Pearls"}, Titles(SampleBooks()))
	assert.Empty(t, Titles(nil))
}
