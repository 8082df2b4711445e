package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"inkwell/internal/modules/books/domain"
	booksout "inkwell/internal/modules/books/port/out"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteBookCache struct {
	db *sql.DB
}

func NewSQLiteBookCache(dbPath string) (booksout.BookCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	cache := &SQLiteBookCache{db: db}
	if err := cache.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return cache, nil
}

func (s *SQLiteBookCache) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS books (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT,
  genre TEXT,
  language TEXT,
  status TEXT NOT NULL,
  page_count INTEGER NOT NULL,
  cover_url TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create books table: %w", err)
	}
	return nil
}

func (s *SQLiteBookCache) UpsertBook(ctx context.Context, book domain.Book) error {
	const stmt = `
INSERT INTO books (id, title, description, genre, language, status, page_count, cover_url, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title,
  description=excluded.description,
  genre=excluded.genre,
  language=excluded.language,
  status=excluded.status,
  page_count=excluded.page_count,
  cover_url=excluded.cover_url,
  created_at=excluded.created_at,
  updated_at=excluded.updated_at;
`
	_, err := s.db.ExecContext(ctx, stmt,
		book.ID,
		book.Title,
		book.Description,
		book.Genre,
		book.Language,
		string(book.Status),
		book.PageCount,
		book.CoverURL,
		book.CreatedAt.Format(timeLayout),
		book.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("upsert book: %w", err)
	}
	return nil
}

func (s *SQLiteBookCache) List(ctx context.Context) ([]domain.Book, error) {
	const query = `
SELECT id, title, description, genre, language, status, page_count, cover_url, created_at, updated_at
FROM books ORDER BY updated_at DESC;
`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cached books: %w", err)
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		var b domain.Book
		var status, createdAt, updatedAt string
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.Genre, &b.Language, &status, &b.PageCount, &b.CoverURL, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan cached book: %w", err)
		}
		b.Status = domain.Status(status)
		b.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		b.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
		books = append(books, b)
	}
	return books, rows.Err()
}

func (s *SQLiteBookCache) Delete(ctx context.Context, bookID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, bookID); err != nil {
		return fmt.Errorf("delete cached book: %w", err)
	}
	return nil
}

func (s *SQLiteBookCache) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM books`); err != nil {
		return fmt.Errorf("reset book cache: %w", err)
	}
	return nil
}
