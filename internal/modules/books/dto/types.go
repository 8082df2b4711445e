package dto

import "time"

type BookOutput struct {
	ID          string
	Title       string
	Description string
	Genre       string
	Language    string
	Status      string
	PageCount   int
	CoverURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type PageOutput struct {
	ID              string
	BookID          string
	Index           int
	Title           string
	Content         string
	IllustrationURL string
	UpdatedAt       time.Time
}

type BookDetailOutput struct {
	Book  BookOutput
	Pages []PageOutput
}

type ListOutput struct {
	Books []BookOutput
	// FromCache is set when the backend was unreachable and the local
	// projection served the list instead.
	FromCache bool
}

type CreateInput struct {
	Title       string
	Description string
	Genre       string
	Language    string
}

type UpdateInput struct {
	BookID      string
	Title       string
	Description string
	Genre       string
	Language    string
}

type UpdatePageInput struct {
	BookID  string
	PageID  string
	Title   string
	Content string
}

type ReorderPagesInput struct {
	BookID  string
	PageIDs []string
}

type TranslateInput struct {
	BookID   string
	Language string
}

type RestyleInput struct {
	BookID string
	Style  string
}

type StartGenerationInput struct {
	BookID        string
	Illustrations bool
	Style         string
}
