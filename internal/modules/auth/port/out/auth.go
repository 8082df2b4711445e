package out

import (
	"context"

	"inkwell/internal/modules/auth/domain"
)

type CredentialStore interface {
	Save(ctx context.Context, cred domain.Credential) error
	Load(ctx context.Context) (domain.Credential, error)
	ClearStored(ctx context.Context) error
}

// AccountGateway verifies a candidate key against the backend before it is
// stored. It authenticates with the key it is handed, not the stored one.
type AccountGateway interface {
	Verify(ctx context.Context, key string) (domain.Account, error)
}
