package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "inkwell/internal/platform/errors"
	"inkwell/internal/platform/notify"
)

const defaultRetryAfter = 60 * time.Second

// Doer is the HTTP client used by the wrapper, injectable for tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// CredentialSource exposes the bearer credential to outbound requests.
// Clear is invoked on 401 so a stale key is never reused.
type CredentialSource interface {
	Current() string
	Clear()
}

// Client is the shared HTTP wrapper. It attaches the bearer credential,
// maps failure statuses onto the sentinel error taxonomy, and emits exactly
// one user-facing notification per failed request. The typed error still
// returns to the caller for request-specific UI.
type Client struct {
	baseURL  string
	creds    CredentialSource
	http     Doer
	notifier notify.Notifier
	limits   *RateLimitStore
	logger   *slog.Logger

	// onAuthExpired fires after a 401 cleared the credential, letting the
	// shell route back to the login view.
	onAuthExpired func()
}

func NewClient(baseURL string, creds CredentialSource, notifier notify.Notifier, limits *RateLimitStore, logger *slog.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		creds:    creds,
		http:     &http.Client{Timeout: 30 * time.Second},
		notifier: notifier,
		limits:   limits,
		logger:   logger,
	}
}

// SetHTTPDoer swaps the underlying transport, for tests.
func (c *Client) SetHTTPDoer(d Doer) { c.http = d }

// SetAuthExpiredHook installs the 401 redirect hook.
func (c *Client) SetAuthExpiredHook(fn func()) { c.onAuthExpired = fn }

// SetNotifier replaces the notification sink. The CLI shell uses this to
// mirror toasts onto stderr.
func (c *Client) SetNotifier(n notify.Notifier) { c.notifier = n }

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Download streams a binary response body to w. Error mapping matches the
// JSON methods; the body is treated as opaque.
func (c *Client) Download(ctx context.Context, path string, w io.Writer) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, c.failTransport(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return 0, c.failStatus(resp)
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, c.failTransport(err)
	}
	return n, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.failTransport(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return c.failStatus(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if key := c.creds.Current(); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
	return req, nil
}

type errorBody struct {
	Detail     string `json:"detail"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}

// firstMessage picks detail, then error, then message. The backend is not
// consistent about which field it populates.
func (b errorBody) firstMessage() string {
	for _, candidate := range []string{b.Detail, b.Error, b.Message} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}

func (c *Client) failTransport(err error) error {
	c.logger.Warn("request transport failure", "err", err)
	c.notify(notify.LevelError, "network error, check your connection")
	return fmt.Errorf("%w: %v", apperrors.ErrNetwork, err)
}

func (c *Client) failStatus(resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	parsed := errorBody{}
	_ = json.Unmarshal(payload, &parsed)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		c.creds.Clear()
		c.notify(notify.LevelWarn, "session expired, please log in again")
		if c.onAuthExpired != nil {
			c.onAuthExpired()
		}
		return apperrors.ErrUnauthorized

	case http.StatusPaymentRequired:
		c.notify(notify.LevelWarn, "insufficient credits, top up to continue")
		return apperrors.ErrPaymentRequired

	case http.StatusTooManyRequests:
		retry := retryAfter(parsed, resp.Header)
		resetAt := time.Now().Add(retry)
		if c.limits != nil {
			c.limits.Record(resetAt)
		}
		c.notify(notify.LevelWarn, fmt.Sprintf("too many requests, retry in %ds", int(retry.Seconds())))
		return apperrors.ErrRateLimited

	case http.StatusInternalServerError:
		msg := parsed.firstMessage()
		if msg == "" {
			msg = "the server hit an unexpected error"
		}
		c.notify(notify.LevelError, msg)
		return fmt.Errorf("%w: %s", apperrors.ErrServer, msg)

	case http.StatusNotFound:
		msg := parsed.firstMessage()
		if msg == "" {
			msg = "resource not found"
		}
		c.notify(notify.LevelError, msg)
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, msg)

	default:
		msg := parsed.firstMessage()
		if msg == "" {
			msg = fmt.Sprintf("request failed (%d)", resp.StatusCode)
		}
		c.notify(notify.LevelError, msg)
		return fmt.Errorf("%w: %s", apperrors.ErrRequest, msg)
	}
}

func retryAfter(parsed errorBody, header http.Header) time.Duration {
	if parsed.RetryAfter > 0 {
		return time.Duration(parsed.RetryAfter) * time.Second
	}
	if raw := header.Get("Retry-After"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultRetryAfter
}

func (c *Client) notify(level notify.Level, message string) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(notify.Notification{Level: level, Message: message})
}
