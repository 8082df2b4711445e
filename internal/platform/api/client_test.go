package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"inkwell/internal/platform/api"
	apperrors "inkwell/internal/platform/errors"
	"inkwell/internal/platform/logging"
	"inkwell/internal/platform/notify"
)

type fakeCreds struct {
	mu      sync.Mutex
	key     string
	cleared bool
}

func (f *fakeCreds) Current() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.key
}

func (f *fakeCreds) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.key = ""
	f.cleared = true
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*api.Client, *fakeCreds, *notify.Store, *api.RateLimitStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	creds := &fakeCreds{key: "lic-123"}
	store := notify.NewStore()
	limits := api.NewRateLimitStore()
	client := api.NewClient(server.URL, creds, store, limits, logging.Discard())
	return client, creds, store, limits
}

func TestAttachesBearerAndDecodes(t *testing.T) {
	t.Parallel()
	var gotAuth string
	client, _, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"title":"Tides"}`))
	})
	out := struct {
		Title string `json:"title"`
	}{}
	if err := client.Get(context.Background(), "/api/books/b1", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "Bearer lic-123" {
		t.Fatalf("bearer header not attached: %q", gotAuth)
	}
	if out.Title != "Tides" {
		t.Fatalf("body not decoded: %+v", out)
	}
}

func TestUnauthorizedClearsCredentialAndRedirects(t *testing.T) {
	t.Parallel()
	client, creds, store, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	redirected := false
	client.SetAuthExpiredHook(func() { redirected = true })

	err := client.Get(context.Background(), "/api/books", nil)
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !creds.cleared {
		t.Fatalf("credential should be cleared on 401")
	}
	if !redirected {
		t.Fatalf("auth-expired hook should fire")
	}
	assertOneNotification(t, store)
}

func TestPaymentRequired(t *testing.T) {
	t.Parallel()
	client, _, store, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	})
	err := client.Post(context.Background(), "/api/books/b1/generate", map[string]any{}, nil)
	if !errors.Is(err, apperrors.ErrPaymentRequired) {
		t.Fatalf("expected ErrPaymentRequired, got %v", err)
	}
	assertOneNotification(t, store)
}

func TestRateLimitedRecordsResetTime(t *testing.T) {
	t.Parallel()
	client, _, store, limits := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"retry_after":30}`))
	})
	before := time.Now()
	err := client.Get(context.Background(), "/api/credits", nil)
	if !errors.Is(err, apperrors.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	resetAt, active := limits.ResetAt()
	if !active {
		t.Fatalf("rate limit window should be active")
	}
	wait := resetAt.Sub(before)
	if wait < 25*time.Second || wait > 35*time.Second {
		t.Fatalf("reset should be ~30s out, got %s", wait)
	}
	assertOneNotification(t, store)
}

func TestRateLimitedDefaultsTo60s(t *testing.T) {
	t.Parallel()
	client, _, _, limits := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	before := time.Now()
	_ = client.Get(context.Background(), "/api/credits", nil)
	resetAt, _ := limits.ResetAt()
	wait := resetAt.Sub(before)
	if wait < 55*time.Second || wait > 65*time.Second {
		t.Fatalf("reset should default to ~60s, got %s", wait)
	}
}

func TestRateLimitLastWriterWins(t *testing.T) {
	t.Parallel()
	retry := 30
	client, _, store, limits := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		if retry == 30 {
			_, _ = w.Write([]byte(`{"retry_after":30}`))
			retry = 10
			return
		}
		_, _ = w.Write([]byte(`{"retry_after":10}`))
	})
	_ = client.Get(context.Background(), "/api/credits", nil)
	_ = client.Get(context.Background(), "/api/credits", nil)

	resetAt, _ := limits.ResetAt()
	wait := time.Until(resetAt)
	if wait > 15*time.Second {
		t.Fatalf("last response should set the window, got %s", wait)
	}
	if got := len(store.Recent(10)); got != 2 {
		t.Fatalf("each failed request notifies once, got %d", got)
	}
}

func TestServerErrorUsesBodyMessage(t *testing.T) {
	t.Parallel()
	client, _, store, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"generation backend offline"}`))
	})
	err := client.Get(context.Background(), "/api/books", nil)
	if !errors.Is(err, apperrors.ErrServer) {
		t.Fatalf("expected ErrServer, got %v", err)
	}
	recent := store.Recent(1)
	if len(recent) != 1 || recent[0].Message != "generation backend offline" {
		t.Fatalf("server message should surface verbatim: %+v", recent)
	}
}

func TestStructuredBodyFieldPrecedence(t *testing.T) {
	t.Parallel()
	client, _, store, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"third","error":"second","detail":"first"}`))
	})
	err := client.Get(context.Background(), "/api/books", nil)
	if !errors.Is(err, apperrors.ErrRequest) {
		t.Fatalf("expected ErrRequest, got %v", err)
	}
	recent := store.Recent(1)
	if recent[0].Message != "first" {
		t.Fatalf("detail should win field precedence, got %q", recent[0].Message)
	}
}

func TestNetworkFailure(t *testing.T) {
	t.Parallel()
	creds := &fakeCreds{key: "k"}
	store := notify.NewStore()
	client := api.NewClient("http://127.0.0.1:1", creds, store, api.NewRateLimitStore(), logging.Discard())
	err := client.Get(context.Background(), "/api/books", nil)
	if !errors.Is(err, apperrors.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	assertOneNotification(t, store)
}

func assertOneNotification(t *testing.T, store *notify.Store) {
	t.Helper()
	if got := len(store.Recent(10)); got != 1 {
		t.Fatalf("exactly one notification per failed request, got %d", got)
	}
}
