package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	FindByAuthor(ctx context.Context, author string, sort Sort) ([]Book, error)
	FindByExactTitle(ctx context.Context, title string, sort Sort) ([]Book, error)
	FindByKeywords(ctx context.Context, keywords []string, sort Sort) ([]Book, error)
	Save(ctx context.Context, book *Book) error
	Ping(ctx context.Context) error
}
