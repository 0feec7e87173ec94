package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/database"

	"github.com/jackc/pgx/v5"
)

var (
	authors = []string{"Ann Lee", "Bob Ray", "Cid Moe", "Dana Cho", "Eli Park", "Fay Wu", "Gus Hale", "Hana Ito"}
	words   = []string{
		"Java", "Go", "Programming", "Systems", "Patterns", "Data", "Design", "Concurrency",
		"Networks", "Algorithms", "Practice", "Learning", "Modern", "Clean", "Applied", "Distributed",
	}
)

func main() {
	count := flag.Int("count", 10000, "Number of books to generate")
	seed := flag.Int64("seed", 1, "Random seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.DBDriver != config.DriverPostgres {
		log.Fatalf("seed only supports DB_DRIVER=postgres, got %q", cfg.DBDriver)
	}

	ctx := context.Background()
	pool, err := database.OpenPostgres(ctx, cfg.DBDSN, cfg.DBTimeout)
	if err != nil {
		log.Fatalf("Failed to connect to database (%s): %v", database.RedactDSN(cfg.DBDSN), err)
	}
	defer pool.Close()

	log.Printf("Generating %d books...", *count)
	books := generate(rand.New(rand.NewSource(*seed)), *count)

	// COPY is much faster than individual inserts.
	n, err := pool.CopyFrom(ctx,
		pgx.Identifier{"books"},
		[]string{"title", "author", "date", "views", "likes", "link", "rating"},
		pgx.CopyFromSlice(len(books), func(i int) ([]any, error) {
			b := books[i]
			return []any{b.Title, b.Author, b.Date, b.Views, b.Likes, b.Link, b.Rating}, nil
		}),
	)
	if err != nil {
		log.Fatalf("Failed to insert books: %v", err)
	}
	log.Printf("Successfully inserted %d books!", n)

	var total int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM books").Scan(&total); err != nil {
		log.Fatalf("Failed to count books: %v", err)
	}
	log.Printf("Total books in database: %d", total)
}

// generate builds count synthetic books. Titles repeat every len(words)^2
// books so that title-keyed lookups see duplicates.
func generate(rng *rand.Rand, count int) []book.Book {
	books := make([]book.Book, 0, count)
	for i := 0; i < count; i++ {
		title := fmt.Sprintf("%s %s", words[i%len(words)], words[(i/len(words))%len(words)])
		books = append(books, book.Book{
			Title:  title,
			Author: authors[rng.Intn(len(authors))],
			Date:   fmt.Sprintf("%d-%02d-%02d", 1970+rng.Intn(55), 1+rng.Intn(12), 1+rng.Intn(28)),
			Views:  fmt.Sprint(rng.Intn(50000)),
			Likes:  fmt.Sprint(rng.Intn(5000)),
			Link:   fmt.Sprintf("https://books.example.com/%d", i+1),
			Rating: rng.Intn(100),
		})
	}
	return books
}
