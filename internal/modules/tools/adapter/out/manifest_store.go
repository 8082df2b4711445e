package out

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"inkwell/internal/modules/tools/domain"
	toolsout "inkwell/internal/modules/tools/port/out"

	"gopkg.in/yaml.v3"
)

// YAMLManifestStore reads tool manifests from tools.yaml inside the tools
// directory. Relative binary paths resolve against that directory, so a
// tools dir can be moved wholesale.
type YAMLManifestStore struct {
	toolsDir string
	path     string
}

func NewYAMLManifestStore(toolsDir string) toolsout.ManifestStore {
	return &YAMLManifestStore{toolsDir: toolsDir, path: filepath.Join(toolsDir, "tools.yaml")}
}

func (s *YAMLManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read tool manifest store: %w", err)
	}
	var manifests []domain.Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode tool manifests: %w", err)
	}
	for i := range manifests {
		if manifests[i].Binary != "" && !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(s.toolsDir, manifests[i].Binary))
		}
	}
	return manifests, nil
}
