package out_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	wsout "inkwell/internal/modules/realtime/adapter/out"
	"inkwell/internal/modules/realtime/domain"
	realtimeout "inkwell/internal/modules/realtime/port/out"
	"inkwell/internal/platform/logging"
)

func TestDeriveEndpoint(t *testing.T) {
	t.Parallel()
	cases := []struct {
		base string
		want string
	}{
		{"http://localhost:8000", "ws://localhost:8000/ws/notifications/lic-1"},
		{"https://api.inkwell.dev", "wss://api.inkwell.dev/ws/notifications/lic-1"},
	}
	for _, tc := range cases {
		got, err := wsout.DeriveEndpoint(tc.base, "lic-1")
		if err != nil {
			t.Fatalf("derive %s: %v", tc.base, err)
		}
		if got != tc.want {
			t.Fatalf("derive %s: got %s want %s", tc.base, got, tc.want)
		}
	}
	if _, err := wsout.DeriveEndpoint("ftp://x", "lic-1"); err == nil {
		t.Fatalf("non-http scheme must fail")
	}
}

type pushServer struct {
	t        *testing.T
	upgrader websocket.Upgrader

	mu    sync.Mutex
	dials int
	conns []*websocket.Conn
}

func newPushServer(t *testing.T) (*pushServer, string) {
	t.Helper()
	ps := &pushServer{t: t}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := ps.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ps.mu.Lock()
		ps.dials++
		ps.conns = append(ps.conns, conn)
		ps.mu.Unlock()
	}))
	t.Cleanup(server.Close)
	t.Cleanup(ps.closeAll)
	return ps, server.URL
}

func (ps *pushServer) dialCount() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.dials
}

func (ps *pushServer) latest() *websocket.Conn {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if len(ps.conns) == 0 {
		return nil
	}
	return ps.conns[len(ps.conns)-1]
}

func (ps *pushServer) closeAll() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, conn := range ps.conns {
		_ = conn.Close()
	}
	ps.conns = nil
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %s", what)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

type frameSink struct {
	mu     sync.Mutex
	frames []domain.Frame
}

func (s *frameSink) add(frame domain.Frame) {
	s.mu.Lock()
	s.frames = append(s.frames, frame)
	s.mu.Unlock()
}

func (s *frameSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func (s *frameSink) last() domain.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames[len(s.frames)-1]
}

func TestChannelDeliversFramesAndCountsDrops(t *testing.T) {
	t.Parallel()
	server, baseURL := newPushServer(t)
	sink := &frameSink{}
	channel := wsout.NewWSChannel(baseURL, "lic-1", logging.Discard(), realtimeout.ChannelHandlers{OnFrame: sink.add})
	channel.SetRetryDelay(20 * time.Millisecond)
	channel.Open()
	defer channel.Close()

	waitFor(t, "first dial", func() bool { return server.dialCount() == 1 })
	conn := server.latest()

	writeText := func(payload string) {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
			t.Fatalf("server write: %v", err)
		}
	}
	writeText(`{"type":"credits_added","amount":10}`)
	writeText(`not json at all`)
	writeText(`{"type":"mystery_event"}`)
	writeText(`{"type":"auto_gen_progress","phase":"started","book_id":"bk-1"}`)

	waitFor(t, "two delivered frames", func() bool { return sink.count() == 2 })
	if sink.last().Progress.BookID != "bk-1" {
		t.Fatalf("unexpected last frame: %+v", sink.last())
	}
	waitFor(t, "drop counters", func() bool { return channel.Status().Drops == 2 })
	if got := channel.Status().Frames; got != 2 {
		t.Fatalf("expected 2 counted frames, got %d", got)
	}
}

func TestChannelReconnectsAfterServerClose(t *testing.T) {
	t.Parallel()
	server, baseURL := newPushServer(t)
	channel := wsout.NewWSChannel(baseURL, "lic-1", logging.Discard(), realtimeout.ChannelHandlers{})
	channel.SetRetryDelay(20 * time.Millisecond)
	channel.Open()
	defer channel.Close()

	waitFor(t, "first dial", func() bool { return server.dialCount() == 1 })
	_ = server.latest().Close()

	waitFor(t, "reconnect dial", func() bool { return server.dialCount() >= 2 })
	if channel.Status().Reconnects < 1 {
		t.Fatalf("reconnect counter should advance, got %+v", channel.Status())
	}
}

func TestCloseStopsRetrying(t *testing.T) {
	t.Parallel()
	server, baseURL := newPushServer(t)
	channel := wsout.NewWSChannel(baseURL, "lic-1", logging.Discard(), realtimeout.ChannelHandlers{})
	channel.SetRetryDelay(20 * time.Millisecond)
	channel.Open()

	waitFor(t, "first dial", func() bool { return server.dialCount() == 1 })
	channel.Close()

	dialsAtClose := server.dialCount()
	time.Sleep(100 * time.Millisecond)
	if server.dialCount() != dialsAtClose {
		t.Fatalf("teardown must cancel the retry timer; dials went %d -> %d", dialsAtClose, server.dialCount())
	}
	if channel.Status().State != realtimeout.StateTornDown {
		t.Fatalf("expected torn down state, got %s", channel.Status().State)
	}
}

func TestEmptyCredentialNeverConnects(t *testing.T) {
	t.Parallel()
	server, baseURL := newPushServer(t)
	channel := wsout.NewWSChannel(baseURL, "", logging.Discard(), realtimeout.ChannelHandlers{})
	channel.Open()
	defer channel.Close()

	time.Sleep(50 * time.Millisecond)
	if server.dialCount() != 0 {
		t.Fatalf("no credential means no connection attempt")
	}
	if channel.Status().State != realtimeout.StateIdle {
		t.Fatalf("channel should stay idle, got %s", channel.Status().State)
	}
}

func TestSendIsNoOpWhenNotOpen(t *testing.T) {
	t.Parallel()
	channel := wsout.NewWSChannel("http://127.0.0.1:1", "lic-1", logging.Discard(), realtimeout.ChannelHandlers{})
	if err := channel.Send(map[string]string{"type": "ping"}); err != nil {
		t.Fatalf("send before open should be a silent no-op, got %v", err)
	}
	channel.Close()
}
