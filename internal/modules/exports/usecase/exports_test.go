package usecase_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"inkwell/internal/modules/exports/domain"
	exportsdto "inkwell/internal/modules/exports/dto"
	"inkwell/internal/modules/exports/service"
	"inkwell/internal/modules/exports/usecase"
	apperrors "inkwell/internal/platform/errors"
	"inkwell/internal/platform/logging"
)

type fakeGateway struct {
	exports  []domain.Export
	body     []byte
	requests []string
}

func (f *fakeGateway) Request(_ context.Context, bookID string, format domain.Format) (domain.Export, error) {
	f.requests = append(f.requests, bookID+":"+string(format))
	export := domain.Export{ID: "ex-1", BookID: bookID, Format: format, Status: domain.ExportPending}
	f.exports = append(f.exports, export)
	return export, nil
}

func (f *fakeGateway) RequestBulk(context.Context) (domain.Export, error) {
	export := domain.Export{ID: "ex-zip", Format: domain.FormatZip, Status: domain.ExportPending}
	f.exports = append(f.exports, export)
	return export, nil
}

func (f *fakeGateway) List(context.Context) ([]domain.Export, error) {
	return f.exports, nil
}

func (f *fakeGateway) Download(_ context.Context, exportID string, w io.Writer) (int64, error) {
	n, err := w.Write(f.body)
	return int64(n), err
}

type fakeInspector struct {
	pages int
	err   error
}

func (f *fakeInspector) PageCount(context.Context, string) (int, error) {
	return f.pages, f.err
}

type fakeLauncher struct {
	opened []string
}

func (f *fakeLauncher) Open(_ context.Context, target string) error {
	f.opened = append(f.opened, target)
	return nil
}

func newExports(t *testing.T, gateway *fakeGateway, inspector *fakeInspector) (exportsUC, *fakeLauncher, string) {
	t.Helper()
	dir := t.TempDir()
	launcher := &fakeLauncher{}
	svc := service.NewExportService(gateway, inspector, launcher, dir, logging.Discard())
	return usecase.NewInteractor(svc), launcher, dir
}

type exportsUC interface {
	Request(ctx context.Context, input exportsdto.RequestInput) (exportsdto.ExportOutput, error)
	RequestBulk(ctx context.Context) (exportsdto.ExportOutput, error)
	List(ctx context.Context) ([]exportsdto.ExportOutput, error)
	Download(ctx context.Context, exportID string) (exportsdto.DownloadOutput, error)
	OpenLocal(ctx context.Context, path string) error
}

func TestRequestValidatesFormat(t *testing.T) {
	t.Parallel()
	uc, _, _ := newExports(t, &fakeGateway{}, &fakeInspector{})

	if _, err := uc.Request(context.Background(), exportsdto.RequestInput{BookID: "bk-1", Format: "mobi"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("unknown format must fail, got %v", err)
	}
	if _, err := uc.Request(context.Background(), exportsdto.RequestInput{BookID: "bk-1", Format: "zip"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("zip is bulk-only, got %v", err)
	}
	out, err := uc.Request(context.Background(), exportsdto.RequestInput{BookID: "bk-1", Format: "epub"})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if out.Format != "epub" || out.Status != "pending" {
		t.Fatalf("unexpected export: %+v", out)
	}
}

func TestDownloadWritesArtifact(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{body: []byte("epub bytes")}
	uc, _, dir := newExports(t, gateway, &fakeInspector{})

	if _, err := uc.Request(context.Background(), exportsdto.RequestInput{BookID: "bk-1", Format: "epub"}); err != nil {
		t.Fatalf("request: %v", err)
	}
	out, err := uc.Download(context.Background(), "ex-1")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if out.Bytes != int64(len("epub bytes")) {
		t.Fatalf("byte count mismatch: %d", out.Bytes)
	}
	if filepath.Dir(out.Path) != dir {
		t.Fatalf("artifact should land in the exports dir, got %s", out.Path)
	}
	payload, err := os.ReadFile(out.Path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(payload) != "epub bytes" {
		t.Fatalf("artifact content mismatch: %q", payload)
	}
}

func TestDownloadVerifiesPDF(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{body: []byte("pdf bytes")}
	uc, _, _ := newExports(t, gateway, &fakeInspector{pages: 24})

	if _, err := uc.Request(context.Background(), exportsdto.RequestInput{BookID: "bk-1", Format: "pdf"}); err != nil {
		t.Fatalf("request: %v", err)
	}
	out, err := uc.Download(context.Background(), "ex-1")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if out.Pages != 24 {
		t.Fatalf("verified page count should surface, got %d", out.Pages)
	}
}

func TestCorruptPDFDownloadFailsAndRemovesFile(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{body: []byte("garbage")}
	uc, _, dir := newExports(t, gateway, &fakeInspector{err: errors.New("malformed xref")})

	if _, err := uc.Request(context.Background(), exportsdto.RequestInput{BookID: "bk-1", Format: "pdf"}); err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := uc.Download(context.Background(), "ex-1"); err == nil {
		t.Fatalf("corrupt pdf must fail verification")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read exports dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("failed download should not leave a file behind: %v", entries)
	}
}

func TestDownloadUnknownExport(t *testing.T) {
	t.Parallel()
	uc, _, _ := newExports(t, &fakeGateway{}, &fakeInspector{})
	if _, err := uc.Download(context.Background(), "ex-missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown export id, got %v", err)
	}
}

func TestOpenLocalLaunches(t *testing.T) {
	t.Parallel()
	uc, launcher, _ := newExports(t, &fakeGateway{}, &fakeInspector{})
	if err := uc.OpenLocal(context.Background(), "/tmp/book.epub"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(launcher.opened) != 1 || launcher.opened[0] != "/tmp/book.epub" {
		t.Fatalf("launcher should receive the path, got %v", launcher.opened)
	}
}
