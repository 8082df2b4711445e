package out

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/modules/auth/domain"
	"inkwell/internal/platform/api"
	apperrors "inkwell/internal/platform/errors"
)

// HTTPAccountGateway talks to the backend with a candidate key, before
// that key is stored anywhere. It deliberately bypasses the shared client:
// a failed verification must not notify or clear the active credential.
type HTTPAccountGateway struct {
	baseURL string
	http    api.Doer
}

func NewHTTPAccountGateway(baseURL string) *HTTPAccountGateway {
	return &HTTPAccountGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *HTTPAccountGateway) SetHTTPDoer(d api.Doer) { g.http = d }

func (g *HTTPAccountGateway) Verify(ctx context.Context, key string) (domain.Account, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/api/me", nil)
	if err != nil {
		return domain.Account{}, fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := g.http.Do(req)
	if err != nil {
		return domain.Account{}, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return domain.Account{}, apperrors.ErrInvalidInput
	case resp.StatusCode >= http.StatusBadRequest:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<12))
		return domain.Account{}, fmt.Errorf("%w: verify returned %d: %s", apperrors.ErrServer, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	payload := struct {
		Email   string `json:"email"`
		Plan    string `json:"plan"`
		Credits int    `json:"credits"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Account{}, fmt.Errorf("decode account: %w", err)
	}
	return domain.Account{Email: payload.Email, Plan: payload.Plan, Credits: payload.Credits}, nil
}
