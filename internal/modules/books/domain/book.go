package domain

import "time"

type Status string

const (
	StatusDraft      Status = "draft"
	StatusGenerating Status = "generating"
	StatusReady      Status = "ready"
)

// Book is the client-side projection of a backend book. All fields are
// backend-owned; the client never computes them.
type Book struct {
	ID          string
	Title       string
	Description string
	Genre       string
	Language    string
	Status      Status
	PageCount   int
	CoverURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Page struct {
	ID              string
	BookID          string
	Index           int
	Title           string
	Content         string
	IllustrationURL string
	UpdatedAt       time.Time
}

// GenerationOptions go to the backend when auto-generation starts.
type GenerationOptions struct {
	Illustrations bool
	Style         string
}
