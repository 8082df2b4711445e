package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	settingsout "inkwell/internal/modules/settings/adapter/out"
	"inkwell/internal/modules/settings/domain"
	"inkwell/internal/modules/settings/usecase"
	apperrors "inkwell/internal/platform/errors"
)

func newSettings(t *testing.T) (string, func(string) *usecase.Interactor) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.db")
	return path, func(dbPath string) *usecase.Interactor {
		store, err := settingsout.NewSQLitePreferenceStore(dbPath)
		if err != nil {
			t.Fatalf("open store: %v", err)
		}
		return usecase.NewInteractor(store).(*usecase.Interactor)
	}
}

func TestPreferencesRoundTripAndSurviveReopen(t *testing.T) {
	t.Parallel()
	path, open := newSettings(t)
	uc := open(path)

	if uc.OnboardingSeen(context.Background()) {
		t.Fatalf("fresh store has no onboarding flag")
	}
	if err := uc.MarkOnboardingSeen(context.Background()); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := uc.Set(context.Background(), domain.KeyLastChangelogSeen, "2026.08"); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened := open(path)
	if !reopened.OnboardingSeen(context.Background()) {
		t.Fatalf("flag should survive reopen")
	}
	value, ok, err := reopened.Get(context.Background(), domain.KeyLastChangelogSeen)
	if err != nil || !ok || value != "2026.08" {
		t.Fatalf("changelog marker should round-trip, got %q ok=%v err=%v", value, ok, err)
	}
}

func TestUnknownKeyRejected(t *testing.T) {
	t.Parallel()
	path, open := newSettings(t)
	uc := open(path)

	if err := uc.Set(context.Background(), "theme_color", "mauve"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("unknown key must fail, got %v", err)
	}
	if _, _, err := uc.Get(context.Background(), "theme_color"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("unknown key must fail on read, got %v", err)
	}
}

func TestSetOverwrites(t *testing.T) {
	t.Parallel()
	path, open := newSettings(t)
	uc := open(path)

	if err := uc.Set(context.Background(), domain.KeyLastChangelogSeen, "2026.07"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := uc.Set(context.Background(), domain.KeyLastChangelogSeen, "2026.08"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	all, err := uc.All(context.Background())
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if all[domain.KeyLastChangelogSeen] != "2026.08" {
		t.Fatalf("last write wins, got %q", all[domain.KeyLastChangelogSeen])
	}
}
