package out

import (
	"context"
	"io"

	"inkwell/internal/modules/exports/domain"
)

type ExportGateway interface {
	Request(ctx context.Context, bookID string, format domain.Format) (domain.Export, error)
	RequestBulk(ctx context.Context) (domain.Export, error)
	List(ctx context.Context) ([]domain.Export, error)
	// Download streams the finished artifact into w.
	Download(ctx context.Context, exportID string, w io.Writer) (int64, error)
}

// PDFInspector opens a downloaded PDF and reports its page count. A file
// that does not parse is a corrupt download.
type PDFInspector interface {
	PageCount(ctx context.Context, path string) (int, error)
}

type ExternalLauncher interface {
	Open(ctx context.Context, target string) error
}
