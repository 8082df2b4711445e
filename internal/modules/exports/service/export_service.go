package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"inkwell/internal/modules/exports/domain"
	exportsout "inkwell/internal/modules/exports/port/out"
	apperrors "inkwell/internal/platform/errors"
)

// ExportService requests backend builds and lands finished artifacts in the
// exports directory. PDFs are opened locally after download so a truncated
// transfer fails here instead of in the user's reader.
type ExportService struct {
	gateway    exportsout.ExportGateway
	inspector  exportsout.PDFInspector
	launcher   exportsout.ExternalLauncher
	exportsDir string
	logger     *slog.Logger

	mu    sync.Mutex
	known map[string]domain.Export
}

func NewExportService(gateway exportsout.ExportGateway, inspector exportsout.PDFInspector, launcher exportsout.ExternalLauncher, exportsDir string, logger *slog.Logger) *ExportService {
	return &ExportService{
		gateway:    gateway,
		inspector:  inspector,
		launcher:   launcher,
		exportsDir: exportsDir,
		logger:     logger,
		known:      map[string]domain.Export{},
	}
}

func (s *ExportService) Request(ctx context.Context, bookID string, format domain.Format) (domain.Export, error) {
	export, err := s.gateway.Request(ctx, bookID, format)
	if err != nil {
		return domain.Export{}, err
	}
	s.remember(export)
	return export, nil
}

func (s *ExportService) RequestBulk(ctx context.Context) (domain.Export, error) {
	export, err := s.gateway.RequestBulk(ctx)
	if err != nil {
		return domain.Export{}, err
	}
	s.remember(export)
	return export, nil
}

func (s *ExportService) List(ctx context.Context) ([]domain.Export, error) {
	exports, err := s.gateway.List(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for _, export := range exports {
		if local, ok := s.known[export.ID]; ok && local.LocalPath != "" {
			export.LocalPath = local.LocalPath
		}
		s.known[export.ID] = export
	}
	s.mu.Unlock()
	return exports, nil
}

func (s *ExportService) remember(export domain.Export) {
	s.mu.Lock()
	s.known[export.ID] = export
	s.mu.Unlock()
}

func (s *ExportService) lookup(ctx context.Context, exportID string) (domain.Export, error) {
	s.mu.Lock()
	export, ok := s.known[exportID]
	s.mu.Unlock()
	if ok {
		return export, nil
	}
	if _, err := s.List(ctx); err != nil {
		return domain.Export{}, err
	}
	s.mu.Lock()
	export, ok = s.known[exportID]
	s.mu.Unlock()
	if !ok {
		return domain.Export{}, fmt.Errorf("%w: export %s", apperrors.ErrNotFound, exportID)
	}
	return export, nil
}

// Download streams the artifact to the exports directory and, for PDFs,
// verifies the file parses before reporting success.
func (s *ExportService) Download(ctx context.Context, exportID string) (string, int64, int, error) {
	export, err := s.lookup(ctx, exportID)
	if err != nil {
		return "", 0, 0, err
	}
	if err := os.MkdirAll(s.exportsDir, 0o755); err != nil {
		return "", 0, 0, fmt.Errorf("create exports dir: %w", err)
	}
	path := filepath.Join(s.exportsDir, exportFilename(export))

	f, err := os.Create(path)
	if err != nil {
		return "", 0, 0, fmt.Errorf("create export file: %w", err)
	}
	n, err := s.gateway.Download(ctx, exportID, f)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, 0, err
	}

	pages := 0
	if export.Format == domain.FormatPDF && s.inspector != nil {
		pages, err = s.inspector.PageCount(ctx, path)
		if err != nil {
			_ = os.Remove(path)
			return "", 0, 0, fmt.Errorf("downloaded pdf failed verification: %w", err)
		}
		if pages == 0 {
			_ = os.Remove(path)
			return "", 0, 0, fmt.Errorf("downloaded pdf has no pages")
		}
	}

	export.LocalPath = path
	s.remember(export)
	s.logger.Info("export downloaded", "export_id", exportID, "path", path, "bytes", n)
	return path, n, pages, nil
}

func (s *ExportService) OpenLocal(ctx context.Context, path string) error {
	if s.launcher == nil {
		return fmt.Errorf("no external launcher configured")
	}
	return s.launcher.Open(ctx, path)
}

func exportFilename(export domain.Export) string {
	if export.Format == domain.FormatZip {
		return "library-" + export.ID + ".zip"
	}
	base := export.BookID
	if base == "" {
		base = "export"
	}
	return fmt.Sprintf("%s-%s.%s", base, export.ID, export.Format)
}
