package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	toolsout "inkwell/internal/modules/tools/adapter/out"
	"inkwell/internal/modules/tools/domain"
	"inkwell/internal/modules/tools/dto"
	"inkwell/internal/modules/tools/service"
)

type fakeStore struct {
	manifests []domain.Manifest
}

func (s fakeStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct {
	commands []domain.CommandDescriptor
	lastReq  *domain.ExecuteRequest
}

func (*fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }
func (*fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "fake", Version: "1"}, nil
}
func (h *fakeHost) ListCommands(context.Context, domain.Manifest) ([]domain.CommandDescriptor, error) {
	return h.commands, nil
}
func (h *fakeHost) Execute(_ context.Context, _ domain.Manifest, req domain.ExecuteRequest) (domain.ExecuteResult, error) {
	h.lastReq = &req
	return domain.ExecuteResult{Stdout: "ok", ExitCode: 0}, nil
}

func manifestWithBinary(t *testing.T, enabled bool, capabilities []domain.Capability) domain.Manifest {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "demo-tool")
	payload := []byte("demo-tool-binary")
	if err := os.WriteFile(binPath, payload, 0o755); err != nil {
		t.Fatalf("write tool binary: %v", err)
	}
	sum := sha256.Sum256(payload)
	return domain.Manifest{
		Name:         "demo",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       hex.EncodeToString(sum[:]),
		Enabled:      enabled,
		Capabilities: capabilities,
	}
}

func TestExecuteRejectsDisabledTool(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, false, []domain.Capability{domain.CapabilityCommand})
	svc := service.NewToolService(fakeStore{manifests: []domain.Manifest{manifest}}, &fakeHost{})
	_, err := svc.Execute(context.Background(), dto.ExecuteInput{ToolName: manifest.Name, CommandID: "stamp", StateDir: "/tmp", Cwd: "/tmp"})
	if !errors.Is(err, domain.ErrToolDisabled) {
		t.Fatalf("expected ErrToolDisabled, got %v", err)
	}
}

func TestPostExportRejectsMissingCapability(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityCommand})
	svc := service.NewToolService(fakeStore{manifests: []domain.Manifest{manifest}}, &fakeHost{})
	_, err := svc.PostExport(context.Background(), dto.ExecuteInput{ToolName: manifest.Name, CommandID: "publish", StateDir: "/tmp", Cwd: "/tmp", ExportPath: "/tmp/book.pdf"})
	if !errors.Is(err, domain.ErrCapabilityMissing) {
		t.Fatalf("expected ErrCapabilityMissing, got %v", err)
	}
}

func TestPostExportRequiresArtifactPath(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityPostExport})
	svc := service.NewToolService(fakeStore{manifests: []domain.Manifest{manifest}}, &fakeHost{})
	_, err := svc.PostExport(context.Background(), dto.ExecuteInput{ToolName: manifest.Name, CommandID: "publish", StateDir: "/tmp", Cwd: "/tmp"})
	if err == nil || !strings.Contains(err.Error(), "export path") {
		t.Fatalf("expected export path error, got %v", err)
	}
}

func TestExecuteRejectsTamperedBinary(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityCommand})
	if err := os.WriteFile(manifest.Binary, []byte("tampered"), 0o755); err != nil {
		t.Fatalf("rewrite binary: %v", err)
	}
	svc := service.NewToolService(fakeStore{manifests: []domain.Manifest{manifest}}, &fakeHost{})
	_, err := svc.Execute(context.Background(), dto.ExecuteInput{ToolName: manifest.Name, CommandID: "stamp", StateDir: "/tmp", Cwd: "/tmp"})
	if !errors.Is(err, domain.ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestExecuteRejectsKindMismatch(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityCommand})
	host := &fakeHost{commands: []domain.CommandDescriptor{
		{ID: "publish", Title: "Publish", Kind: domain.CommandKindPostExport},
	}}
	svc := service.NewToolService(fakeStore{manifests: []domain.Manifest{manifest}}, host)
	_, err := svc.Execute(context.Background(), dto.ExecuteInput{ToolName: manifest.Name, CommandID: "publish", StateDir: "/tmp", Cwd: "/tmp"})
	if err == nil || !strings.Contains(err.Error(), "kind mismatch") {
		t.Fatalf("expected kind mismatch, got %v", err)
	}
}

func TestExecuteRejectsUnknownCommand(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityCommand})
	host := &fakeHost{commands: []domain.CommandDescriptor{
		{ID: "stamp", Title: "Stamp", Kind: domain.CommandKindCommand},
	}}
	svc := service.NewToolService(fakeStore{manifests: []domain.Manifest{manifest}}, host)
	_, err := svc.Execute(context.Background(), dto.ExecuteInput{ToolName: manifest.Name, CommandID: "missing", StateDir: "/tmp", Cwd: "/tmp"})
	if !errors.Is(err, domain.ErrCommandNotFound) {
		t.Fatalf("expected ErrCommandNotFound, got %v", err)
	}
}

func TestExecuteCarriesContextAndTimeout(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityPostExport})
	host := &fakeHost{commands: []domain.CommandDescriptor{
		{ID: "publish", Title: "Publish", Kind: domain.CommandKindPostExport, TimeoutMS: 9000},
	}}
	svc := service.NewToolService(fakeStore{manifests: []domain.Manifest{manifest}}, host)
	out, err := svc.PostExport(context.Background(), dto.ExecuteInput{
		ToolName:   manifest.Name,
		CommandID:  "publish",
		BookID:     "bk-1",
		ExportPath: "/tmp/exports/bk-1-ex-1.pdf",
		StateDir:   "/tmp/state",
		Cwd:        "/tmp",
	})
	if err != nil {
		t.Fatalf("post export: %v", err)
	}
	if out.Stdout != "ok" || out.ExitCode != 0 {
		t.Fatalf("unexpected output: %+v", out)
	}
	if host.lastReq == nil {
		t.Fatalf("host never executed")
	}
	if host.lastReq.TimeoutMS != 9000 {
		t.Fatalf("descriptor timeout should propagate, got %d", host.lastReq.TimeoutMS)
	}
	if host.lastReq.Context.BookID != "bk-1" || host.lastReq.Context.ExportPath != "/tmp/exports/bk-1-ex-1.pdf" {
		t.Fatalf("context not carried: %+v", host.lastReq.Context)
	}
}

func TestExecuteRejectsInvalidInputJSON(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityCommand})
	svc := service.NewToolService(fakeStore{manifests: []domain.Manifest{manifest}}, &fakeHost{})
	_, err := svc.Execute(context.Background(), dto.ExecuteInput{ToolName: manifest.Name, CommandID: "stamp", InputJSON: "{broken", StateDir: "/tmp", Cwd: "/tmp"})
	if err == nil || !strings.Contains(err.Error(), "valid JSON") {
		t.Fatalf("expected json validation error, got %v", err)
	}
}

func TestDoctorDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	toolsDir := t.TempDir()
	binPath := filepath.Join(toolsDir, "dummy-tool")
	if err := os.WriteFile(binPath, []byte("not-a-real-tool"), 0o755); err != nil {
		t.Fatalf("write tool binary: %v", err)
	}
	manifestYAML := "- name: demo\n" +
		"  version: 1.0.0\n" +
		"  binary: dummy-tool\n" +
		"  sha256: " + strings.Repeat("0", 64) + "\n" +
		"  enabled: true\n" +
		"  capabilities: [command]\n"
	if err := os.WriteFile(filepath.Join(toolsDir, "tools.yaml"), []byte(manifestYAML), 0o644); err != nil {
		t.Fatalf("write tools.yaml: %v", err)
	}

	svc := service.NewToolService(toolsout.NewYAMLManifestStore(toolsDir), nil)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].ChecksumValid {
		t.Fatalf("expected checksum mismatch")
	}
	if !results[0].BinaryReachable {
		t.Fatalf("relative binary should resolve against the tools dir")
	}
}

func TestListRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityCommand})
	svc := service.NewToolService(fakeStore{manifests: []domain.Manifest{manifest, manifest}}, &fakeHost{})
	if _, err := svc.List(context.Background()); err == nil || !strings.Contains(err.Error(), "duplicate tool name") {
		t.Fatalf("expected duplicate name error, got %v", err)
	}
}

func TestManifestStoreRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	toolsDir := t.TempDir()
	manifestYAML := "- name: demo\n" +
		"  version: 1.0.0\n" +
		"  binary: dummy-tool\n" +
		"  sha256: " + strings.Repeat("a", 64) + "\n" +
		"  enabled: true\n" +
		"  capabilities: [command]\n" +
		"  surprise: field\n"
	if err := os.WriteFile(filepath.Join(toolsDir, "tools.yaml"), []byte(manifestYAML), 0o644); err != nil {
		t.Fatalf("write tools.yaml: %v", err)
	}
	if _, err := toolsout.NewYAMLManifestStore(toolsDir).Load(context.Background()); err == nil {
		t.Fatalf("unknown manifest fields must fail decoding")
	}
}

func TestManifestStoreMissingFileIsEmpty(t *testing.T) {
	t.Parallel()
	manifests, err := toolsout.NewYAMLManifestStore(t.TempDir()).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected empty manifest list, got %d", len(manifests))
	}
}
