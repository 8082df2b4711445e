package domain

import (
	"strings"
	"time"
)

const SchemaVersion = 1

// Credential is the license key the backend authenticates every request
// with. One credential is active at a time.
type Credential struct {
	Key     string    `json:"key"`
	SavedAt time.Time `json:"saved_at"`
}

// Account is what the backend reports for a verified credential.
type Account struct {
	Email   string
	Plan    string
	Credits int
}

func NormalizeKey(raw string) string {
	return strings.TrimSpace(raw)
}
