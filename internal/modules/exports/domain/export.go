package domain

import (
	"fmt"
	"time"
)

type Format string

const (
	FormatEPUB Format = "epub"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	// FormatZip is the bulk export of every book in the library.
	FormatZip Format = "zip"
)

func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case FormatEPUB, FormatPDF, FormatDOCX, FormatZip:
		return Format(raw), nil
	}
	return "", fmt.Errorf("unknown export format %q", raw)
}

type ExportStatus string

const (
	ExportPending ExportStatus = "pending"
	ExportReady   ExportStatus = "ready"
	ExportFailed  ExportStatus = "failed"
)

// Export is one build job on the backend plus, once downloaded, its local
// path.
type Export struct {
	ID        string
	BookID    string
	BookTitle string
	Format    Format
	Status    ExportStatus
	CreatedAt time.Time
	LocalPath string
}
