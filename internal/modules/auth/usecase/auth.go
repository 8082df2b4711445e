package usecase

import (
	"context"

	"inkwell/internal/modules/auth/dto"
	authin "inkwell/internal/modules/auth/port/in"
	authout "inkwell/internal/modules/auth/port/out"
	"inkwell/internal/modules/auth/service"
)

type Interactor struct {
	svc   *service.AuthService
	store authout.CredentialStore

	// onCredentialChanged lets the shell react to a credential switch:
	// reopen the realtime channel, reset caches. Empty key means logout.
	onCredentialChanged func(key string)
}

func NewInteractor(svc *service.AuthService, store authout.CredentialStore) *Interactor {
	return &Interactor{svc: svc, store: store}
}

var _ authin.Usecase = (*Interactor)(nil)

func (i *Interactor) SetCredentialChangedHook(fn func(key string)) {
	i.onCredentialChanged = fn
}

func (i *Interactor) Login(ctx context.Context, input dto.LoginInput) (dto.LoginOutput, error) {
	cred, account, err := i.svc.Verify(ctx, input.Key)
	if err != nil {
		return dto.LoginOutput{}, err
	}
	if err := i.store.Save(ctx, cred); err != nil {
		return dto.LoginOutput{}, err
	}
	if i.onCredentialChanged != nil {
		i.onCredentialChanged(cred.Key)
	}
	return dto.LoginOutput{Email: account.Email, Plan: account.Plan, Credits: account.Credits}, nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	if err := i.store.ClearStored(ctx); err != nil {
		return err
	}
	if i.onCredentialChanged != nil {
		i.onCredentialChanged("")
	}
	return nil
}

func (i *Interactor) Session(ctx context.Context) (dto.SessionOutput, error) {
	cred, err := i.store.Load(ctx)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	out := dto.SessionOutput{Key: cred.Key, SavedAt: cred.SavedAt}
	_, account, err := i.svc.Verify(ctx, cred.Key)
	if err == nil {
		out.Email = account.Email
		out.Plan = account.Plan
		out.Credits = account.Credits
	}
	return out, nil
}
