package dto

import "time"

type RequestInput struct {
	BookID string
	Format string
}

type ExportOutput struct {
	ID        string
	BookID    string
	BookTitle string
	Format    string
	Status    string
	CreatedAt time.Time
	LocalPath string
}

type DownloadOutput struct {
	Path  string
	Bytes int64
	// Pages is filled for PDF downloads after verification.
	Pages int
}
