package book

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = "id, title, author, date, views, likes, link, rating"

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) FindByAuthor(ctx context.Context, author string, sort Sort) ([]Book, error) {
	books, err := r.findWhere(ctx, "author = $1", []any{author}, sort)
	if err != nil {
		return nil, fmt.Errorf("find books by author: %w", err)
	}
	return books, nil
}

func (r *PostgresRepo) FindByExactTitle(ctx context.Context, title string, sort Sort) ([]Book, error) {
	books, err := r.findWhere(ctx, "title = $1", []any{title}, sort)
	if err != nil {
		return nil, fmt.Errorf("find books by title: %w", err)
	}
	return books, nil
}

func (r *PostgresRepo) FindByKeywords(ctx context.Context, keywords []string, sort Sort) ([]Book, error) {
	q, err := NewKeywordQuery(keywords, sort)
	if err != nil {
		return nil, err
	}

	where := q.Where("title", func(i int) string { return fmt.Sprintf("$%d", i+1) })
	patterns := q.Patterns()
	args := make([]any, len(patterns))
	for i, p := range patterns {
		args[i] = p
	}

	books, err := r.findWhere(ctx, where, args, sort)
	if err != nil {
		return nil, fmt.Errorf("find books by keywords: %w", err)
	}
	return books, nil
}

func (r *PostgresRepo) findWhere(ctx context.Context, where string, args []any, sort Sort) ([]Book, error) {
	orderBy, err := orderByClause(sort)
	if err != nil {
		return nil, err
	}

	parts := []string{"SELECT " + bookColumns, "FROM books", "WHERE " + where}
	if orderBy != "" {
		parts = append(parts, orderBy)
	}
	query := strings.Join(parts, "\n")

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Date, &b.Views, &b.Likes, &b.Link, &b.Rating); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Save inserts b when it has no id yet, otherwise it overwrites every column
// of the row with b's id.
func (r *PostgresRepo) Save(ctx context.Context, b *Book) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	if b.ID == 0 {
		const insertSQL = `
			INSERT INTO books (title, author, date, views, likes, link, rating)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`
		err := r.db.QueryRow(timeoutCtx, insertSQL,
			b.Title, b.Author, b.Date, b.Views, b.Likes, b.Link, b.Rating,
		).Scan(&b.ID)
		if err != nil {
			return fmt.Errorf("insert book %q: %w", b.Title, err)
		}
		return nil
	}

	const updateSQL = `
		UPDATE books SET
			title = $1,
			author = $2,
			date = $3,
			views = $4,
			likes = $5,
			link = $6,
			rating = $7
		WHERE id = $8`
	tag, err := r.db.Exec(timeoutCtx, updateSQL,
		b.Title, b.Author, b.Date, b.Views, b.Likes, b.Link, b.Rating, b.ID,
	)
	if err != nil {
		return fmt.Errorf("update book %d: %w", b.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update book %d: %w", b.ID, pgx.ErrNoRows)
	}
	return nil
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
