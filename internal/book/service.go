package book

import (
	"context"
	"fmt"
	"strings"
)

// Service provides the catalog lookups. Every lookup bumps the rating of each
// record it returns, so the ratings in a response are already incremented.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetBookByAuthor returns the books written by author, most popular first.
func (s *Service) GetBookByAuthor(ctx context.Context, author string) ([]Book, error) {
	books, err := s.repo.FindByAuthor(ctx, author, ByRatingDesc)
	if err != nil {
		return nil, err
	}
	return s.bumpRatings(ctx, books)
}

// GetBookByExactTitle returns the books whose title equals title, most popular first.
func (s *Service) GetBookByExactTitle(ctx context.Context, title string) ([]Book, error) {
	books, err := s.repo.FindByExactTitle(ctx, title, ByRatingDesc)
	if err != nil {
		return nil, err
	}
	return s.bumpRatings(ctx, books)
}

// GetBookByKeyword returns the books whose title contains any word of text.
func (s *Service) GetBookByKeyword(ctx context.Context, text string) ([]Book, error) {
	books, err := s.repo.FindByKeywords(ctx, SplitKeywords(text), ByRatingDesc)
	if err != nil {
		return nil, err
	}
	return s.bumpRatings(ctx, books)
}

// IncrementRating adds one to the rating of b and persists the whole record.
// The rating saturates at MaxRating. It is not idempotent and not guarded:
// concurrent increments of the same record can overwrite each other.
func (s *Service) IncrementRating(ctx context.Context, b *Book) error {
	if b.Rating < MaxRating {
		b.Rating++
	}
	if err := s.repo.Save(ctx, b); err != nil {
		return fmt.Errorf("increment rating of book %d: %w", b.ID, err)
	}
	return nil
}

// bumpRatings is the write step of every read path. It stops at the first
// failed write; records bumped before it stay bumped.
func (s *Service) bumpRatings(ctx context.Context, books []Book) ([]Book, error) {
	for i := range books {
		if err := s.IncrementRating(ctx, &books[i]); err != nil {
			return nil, err
		}
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// SplitKeywords splits text on single spaces. Consecutive spaces yield empty
// keywords, which match every title. Trailing empty keywords are dropped and
// an empty text yields a single empty keyword.
func SplitKeywords(text string) []string {
	if text == "" {
		return []string{""}
	}
	parts := strings.Split(text, " ")
	end := len(parts)
	for end > 0 && parts[end-1] == "" {
		end--
	}
	return parts[:end]
}
