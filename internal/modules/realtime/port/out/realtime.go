package out

import "inkwell/internal/modules/realtime/domain"

type ChannelState string

const (
	StateIdle       ChannelState = "idle"
	StateConnecting ChannelState = "connecting"
	StateOpen       ChannelState = "open"
	StateRetryWait  ChannelState = "retry_wait"
	StateTornDown   ChannelState = "torn_down"
)

// ChannelStatus is the connection state plus delivery counters, rendered
// on the dashboard.
type ChannelStatus struct {
	State      ChannelState
	Frames     int
	Drops      int
	Reconnects int
}

type ChannelHandlers struct {
	OnFrame  func(frame domain.Frame)
	OnStatus func(status ChannelStatus)
}

// Channel is one websocket connection lifecycle: open once, close once.
// A credential switch means a new Channel.
type Channel interface {
	Open()
	Send(v any) error
	Close()
	Status() ChannelStatus
}

// ChannelFactory builds a channel bound to one credential.
type ChannelFactory interface {
	New(credential string, handlers ChannelHandlers) Channel
}
