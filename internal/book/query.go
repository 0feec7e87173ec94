package book

import (
	"strings"
)

// KeywordQuery selects books whose title contains any of Terms, ordered by Sort.
// It is independent of the store; each repository renders it in its own dialect.
type KeywordQuery struct {
	Terms []string
	Sort  Sort
}

// NewKeywordQuery validates the sort order up front so no store ever sees an unknown column.
func NewKeywordQuery(terms []string, sort Sort) (KeywordQuery, error) {
	if _, err := sort.Columns(); err != nil {
		return KeywordQuery{}, err
	}
	return KeywordQuery{Terms: terms, Sort: sort}, nil
}

// Patterns returns one LIKE pattern per term. Terms are not escaped, so % and _
// inside a term keep their wildcard meaning.
func (q KeywordQuery) Patterns() []string {
	out := make([]string, len(q.Terms))
	for i, t := range q.Terms {
		out[i] = "%" + t + "%"
	}
	return out
}

// Where renders the OR-of-LIKE predicate over column. placeholder returns the
// bind marker for the i-th pattern. With no terms the predicate matches nothing.
func (q KeywordQuery) Where(column string, placeholder func(i int) string) string {
	if len(q.Terms) == 0 {
		return "1 = 0"
	}
	clauses := make([]string, len(q.Terms))
	for i := range q.Terms {
		clauses[i] = column + " LIKE " + placeholder(i)
	}
	return "(" + strings.Join(clauses, " OR ") + ")"
}

// OrderBy renders the ORDER BY clause, or "" when the query is unsorted.
func (q KeywordQuery) OrderBy() (string, error) {
	return orderByClause(q.Sort)
}

func orderByClause(s Sort) (string, error) {
	cols, err := s.Columns()
	if err != nil {
		return "", err
	}
	if len(cols) == 0 {
		return "", nil
	}
	return "ORDER BY " + strings.Join(cols, ", "), nil
}
