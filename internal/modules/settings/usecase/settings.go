package usecase

import (
	"context"
	"fmt"

	"inkwell/internal/modules/settings/domain"
	settingsin "inkwell/internal/modules/settings/port/in"
	settingsout "inkwell/internal/modules/settings/port/out"
	apperrors "inkwell/internal/platform/errors"
)

type Interactor struct {
	store settingsout.PreferenceStore
}

func NewInteractor(store settingsout.PreferenceStore) settingsin.Usecase {
	return &Interactor{store: store}
}

func (i *Interactor) Get(ctx context.Context, key string) (string, bool, error) {
	if !domain.KnownKey(key) {
		return "", false, fmt.Errorf("%w: unknown preference %q", apperrors.ErrInvalidInput, key)
	}
	return i.store.Get(ctx, key)
}

func (i *Interactor) Set(ctx context.Context, key, value string) error {
	if !domain.KnownKey(key) {
		return fmt.Errorf("%w: unknown preference %q", apperrors.ErrInvalidInput, key)
	}
	return i.store.Set(ctx, key, value)
}

func (i *Interactor) All(ctx context.Context) (map[string]string, error) {
	return i.store.All(ctx)
}

func (i *Interactor) MarkOnboardingSeen(ctx context.Context) error {
	return i.store.Set(ctx, domain.KeyOnboardingSeen, domain.FlagTrue)
}

func (i *Interactor) OnboardingSeen(ctx context.Context) bool {
	value, ok, err := i.store.Get(ctx, domain.KeyOnboardingSeen)
	return err == nil && ok && value == domain.FlagTrue
}
