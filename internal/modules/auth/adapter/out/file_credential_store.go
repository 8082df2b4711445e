package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"inkwell/internal/modules/auth/domain"
	apperrors "inkwell/internal/platform/errors"
)

// FileCredentialStore persists the active credential as a JSON file under
// the state directory. It doubles as the api.CredentialSource the HTTP
// client reads on every request, so Current and Clear are lock-protected.
type FileCredentialStore struct {
	mu   sync.Mutex
	path string
	key  string
}

func NewFileCredentialStore(path string) *FileCredentialStore {
	store := &FileCredentialStore{path: path}
	if cred, err := store.Load(context.Background()); err == nil {
		store.key = cred.Key
	}
	return store
}

func (s *FileCredentialStore) Save(_ context.Context, cred domain.Credential) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}
	payload, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	s.mu.Lock()
	s.key = cred.Key
	s.mu.Unlock()
	return nil
}

func (s *FileCredentialStore) Load(_ context.Context) (domain.Credential, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Credential{}, apperrors.ErrNoCredential
		}
		return domain.Credential{}, fmt.Errorf("read credential: %w", err)
	}
	cred := domain.Credential{}
	if err := json.Unmarshal(payload, &cred); err != nil {
		return domain.Credential{}, fmt.Errorf("decode credential: %w", err)
	}
	if cred.Key == "" {
		return domain.Credential{}, apperrors.ErrNoCredential
	}
	return cred, nil
}

func (s *FileCredentialStore) ClearStored(_ context.Context) error {
	s.mu.Lock()
	s.key = ""
	s.mu.Unlock()
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

// Current satisfies api.CredentialSource.
func (s *FileCredentialStore) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// Clear satisfies api.CredentialSource. Called by the HTTP client on 401;
// the on-disk file goes too so the next launch starts logged out.
func (s *FileCredentialStore) Clear() {
	_ = s.ClearStored(context.Background())
}
