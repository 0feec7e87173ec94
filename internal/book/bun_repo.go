package book

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// bookModel binds Book to the books table for bun.
type bookModel struct {
	bun.BaseModel `bun:"table:books,alias:b"`
	Book
}

// BunRepo stores books through bun. It backs the SQLite mode.
type BunRepo struct {
	db      *bun.DB
	timeout time.Duration
}

func NewBunRepo(db *bun.DB, timeout time.Duration) *BunRepo {
	return &BunRepo{db: db, timeout: timeout}
}

// CreateSchema creates the books table if it does not exist.
func (r *BunRepo) CreateSchema(ctx context.Context) error {
	if _, err := r.db.NewCreateTable().Model((*bookModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create books table: %w", err)
	}
	return nil
}

func (r *BunRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *BunRepo) FindByAuthor(ctx context.Context, author string, sort Sort) ([]Book, error) {
	books, err := r.find(ctx, sort, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("author = ?", author)
	})
	if err != nil {
		return nil, fmt.Errorf("find books by author: %w", err)
	}
	return books, nil
}

func (r *BunRepo) FindByExactTitle(ctx context.Context, title string, sort Sort) ([]Book, error) {
	books, err := r.find(ctx, sort, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("title = ?", title)
	})
	if err != nil {
		return nil, fmt.Errorf("find books by title: %w", err)
	}
	return books, nil
}

func (r *BunRepo) FindByKeywords(ctx context.Context, keywords []string, sort Sort) ([]Book, error) {
	kq, err := NewKeywordQuery(keywords, sort)
	if err != nil {
		return nil, err
	}

	books, err := r.find(ctx, sort, func(q *bun.SelectQuery) *bun.SelectQuery {
		patterns := kq.Patterns()
		if len(patterns) == 0 {
			return q.Where("1 = 0")
		}
		return q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			for _, p := range patterns {
				q = q.WhereOr("title LIKE ?", p)
			}
			return q
		})
	})
	if err != nil {
		return nil, fmt.Errorf("find books by keywords: %w", err)
	}
	return books, nil
}

func (r *BunRepo) find(ctx context.Context, sort Sort, where func(*bun.SelectQuery) *bun.SelectQuery) ([]Book, error) {
	cols, err := sort.Columns()
	if err != nil {
		return nil, err
	}

	var rows []bookModel
	q := where(r.db.NewSelect().Model(&rows))
	for _, c := range cols {
		q = q.OrderExpr(c)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := q.Scan(timeoutCtx); err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	out := make([]Book, len(rows))
	for i, m := range rows {
		out[i] = m.Book
	}
	return out, nil
}

// Save inserts b when it has no id yet, otherwise it overwrites the row with b's id.
func (r *BunRepo) Save(ctx context.Context, b *Book) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := &bookModel{Book: *b}
	if b.ID == 0 {
		if _, err := r.db.NewInsert().Model(m).Exec(timeoutCtx); err != nil {
			return fmt.Errorf("insert book %q: %w", b.Title, err)
		}
		b.ID = m.ID
		return nil
	}

	res, err := r.db.NewUpdate().Model(m).WherePK().Exec(timeoutCtx)
	if err != nil {
		return fmt.Errorf("update book %d: %w", b.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update book %d: %w", b.ID, sql.ErrNoRows)
	}
	return nil
}

func (r *BunRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
