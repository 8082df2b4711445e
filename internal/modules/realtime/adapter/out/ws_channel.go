package out

import (
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"inkwell/internal/modules/realtime/domain"
	realtimeout "inkwell/internal/modules/realtime/port/out"
)

// RetryDelay is the fixed pause before a reconnect attempt. No backoff:
// the backend drops idle sockets routinely and a quick steady retry is
// what the UX expects.
const RetryDelay = 3 * time.Second

const dialTimeout = 10 * time.Second

// WSChannel is one websocket subscription to the push endpoint. It owns a
// single goroutine that dials, reads until failure, waits the retry delay,
// and dials again until Close. An empty credential never connects.
type WSChannel struct {
	url        string
	retryDelay time.Duration
	logger     *slog.Logger
	handlers   realtimeout.ChannelHandlers
	dialer     *websocket.Dialer

	mu         sync.Mutex
	conn       *websocket.Conn
	state      realtimeout.ChannelState
	frames     int
	drops      int
	reconnects int

	done      chan struct{}
	closeOnce sync.Once
}

type WSChannelFactory struct {
	BaseURL string
	Logger  *slog.Logger
}

func (f WSChannelFactory) New(credential string, handlers realtimeout.ChannelHandlers) realtimeout.Channel {
	return NewWSChannel(f.BaseURL, credential, f.Logger, handlers)
}

func NewWSChannel(baseURL, credential string, logger *slog.Logger, handlers realtimeout.ChannelHandlers) *WSChannel {
	endpoint := ""
	if credential != "" {
		derived, err := DeriveEndpoint(baseURL, credential)
		if err != nil {
			logger.Warn("bad channel endpoint", "base_url", baseURL, "err", err)
		} else {
			endpoint = derived
		}
	}
	return &WSChannel{
		url:        endpoint,
		retryDelay: RetryDelay,
		logger:     logger,
		handlers:   handlers,
		dialer:     &websocket.Dialer{HandshakeTimeout: dialTimeout},
		state:      realtimeout.StateIdle,
		done:       make(chan struct{}),
	}
}

// DeriveEndpoint maps the API base URL onto the push endpoint: http → ws,
// https → wss, path /ws/notifications/<credential>.
func DeriveEndpoint(baseURL, credential string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	switch parsed.Scheme {
	case "http":
		parsed.Scheme = "ws"
	case "https":
		parsed.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	parsed.Path = "/ws/notifications/" + url.PathEscape(credential)
	return parsed.String(), nil
}

// SetRetryDelay shortens the reconnect pause, for tests.
func (c *WSChannel) SetRetryDelay(d time.Duration) { c.retryDelay = d }

// Open starts the connection loop. Without a credential there is nothing
// to subscribe to and the channel stays idle.
func (c *WSChannel) Open() {
	if c.url == "" {
		c.logger.Debug("channel not opened: no credential")
		return
	}
	go c.run()
}

func (c *WSChannel) run() {
	for {
		select {
		case <-c.done:
			return
		default:
		}

		c.setState(realtimeout.StateConnecting)
		conn, resp, err := c.dialer.Dial(c.url, nil)
		if resp != nil {
			_ = resp.Body.Close()
		}
		if err != nil {
			c.logger.Warn("channel dial failed", "err", err)
			if !c.waitRetry() {
				return
			}
			continue
		}

		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()
		c.setState(realtimeout.StateOpen)

		c.readUntilClosed(conn)

		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()

		select {
		case <-c.done:
			return
		default:
		}
		if !c.waitRetry() {
			return
		}
	}
}

// waitRetry parks on the single retry timer. It reports false when the
// channel was torn down while waiting.
func (c *WSChannel) waitRetry() bool {
	c.setState(realtimeout.StateRetryWait)
	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()
	select {
	case <-c.done:
		return false
	case <-timer.C:
		c.mu.Lock()
		c.reconnects++
		c.mu.Unlock()
		return true
	}
}

func (c *WSChannel) readUntilClosed(conn *websocket.Conn) {
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				c.logger.Warn("channel read failed", "err", err)
			}
			return
		}
		frame, err := domain.DecodeFrame(payload)
		if err != nil {
			c.countDrop()
			c.logger.Warn("dropped malformed frame", "err", err)
			continue
		}
		if !frame.Known() {
			c.countDrop()
			c.logger.Warn("dropped unknown frame type", "type", string(frame.Type))
			continue
		}
		c.mu.Lock()
		c.frames++
		c.mu.Unlock()
		c.emitStatus()
		if c.handlers.OnFrame != nil {
			c.handlers.OnFrame(frame)
		}
	}
}

// Send writes a JSON message when the socket is open and is a logged no-op
// otherwise, matching fire-and-forget semantics on the other side.
func (c *WSChannel) Send(v any) error {
	c.mu.Lock()
	conn := c.conn
	state := c.state
	c.mu.Unlock()
	if state != realtimeout.StateOpen || conn == nil {
		c.logger.Warn("send skipped: channel not open", "state", string(state))
		return nil
	}
	return conn.WriteJSON(v)
}

// Close tears the channel down: the retry timer dies with the done
// channel, the socket closes, and the run loop exits. Idempotent.
func (c *WSChannel) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		conn := c.conn
		c.conn = nil
		c.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		c.setState(realtimeout.StateTornDown)
	})
}

func (c *WSChannel) setState(state realtimeout.ChannelState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
	c.emitStatus()
}

func (c *WSChannel) countDrop() {
	c.mu.Lock()
	c.drops++
	c.mu.Unlock()
	c.emitStatus()
}

func (c *WSChannel) Status() realtimeout.ChannelStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return realtimeout.ChannelStatus{
		State:      c.state,
		Frames:     c.frames,
		Drops:      c.drops,
		Reconnects: c.reconnects,
	}
}

func (c *WSChannel) emitStatus() {
	if c.handlers.OnStatus != nil {
		c.handlers.OnStatus(c.Status())
	}
}
