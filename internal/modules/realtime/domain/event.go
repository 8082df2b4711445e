package domain

import (
	"encoding/json"
	"fmt"
)

type EventType string

const (
	EventCreditsAdded    EventType = "credits_added"
	EventAutoGenProgress EventType = "auto_gen_progress"
)

type Phase string

const (
	PhaseStarted                Phase = "started"
	PhaseGeneratingPage         Phase = "generating_page"
	PhaseGeneratingIllustration Phase = "generating_illustration"
	PhaseGeneratingCover        Phase = "generating_cover"
	PhaseCompleted              Phase = "completed"
	PhaseError                  Phase = "error"
)

// Known reports whether the phase belongs to the closed set the backend
// emits. Anything else is a protocol drift and gets dropped.
func (p Phase) Known() bool {
	switch p {
	case PhaseStarted, PhaseGeneratingPage, PhaseGeneratingIllustration, PhaseGeneratingCover, PhaseCompleted, PhaseError:
		return true
	}
	return false
}

// Terminal phases end a generation job; the progress view auto-dismisses
// after them.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseError
}

type CreditsAdded struct {
	Amount int
}

// AutoGenProgress is one snapshot of a generation job. Events replace the
// whole displayed state; fields are never merged across events.
type AutoGenProgress struct {
	Phase             Phase
	BookID            string
	CurrentStep       int
	TotalSteps        int
	Message           string
	Percent           float64
	WithIllustrations bool
	Error             string
}

// Frame is one decoded push message, discriminated on Type. Exactly one of
// the payload fields is meaningful.
type Frame struct {
	Type     EventType
	Credits  CreditsAdded
	Progress AutoGenProgress
}

// Known reports whether the frame's type tag is one this client handles.
func (f Frame) Known() bool {
	return f.Type == EventCreditsAdded || f.Type == EventAutoGenProgress
}

type wireFrame struct {
	Type              string  `json:"type"`
	Amount            int     `json:"amount"`
	Phase             string  `json:"phase"`
	BookID            string  `json:"book_id"`
	CurrentStep       int     `json:"current_step"`
	TotalSteps        int     `json:"total_steps"`
	Message           string  `json:"message"`
	Percent           float64 `json:"percent"`
	WithIllustrations bool    `json:"with_illustrations"`
	Error             string  `json:"error"`
}

// DecodeFrame parses a raw push payload. Malformed JSON is an error; an
// unknown type tag decodes fine and is left for the caller to drop.
func DecodeFrame(raw []byte) (Frame, error) {
	wire := wireFrame{}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Frame{}, fmt.Errorf("decode push frame: %w", err)
	}
	frame := Frame{Type: EventType(wire.Type)}
	switch frame.Type {
	case EventCreditsAdded:
		frame.Credits = CreditsAdded{Amount: wire.Amount}
	case EventAutoGenProgress:
		frame.Progress = AutoGenProgress{
			Phase:             Phase(wire.Phase),
			BookID:            wire.BookID,
			CurrentStep:       wire.CurrentStep,
			TotalSteps:        wire.TotalSteps,
			Message:           wire.Message,
			Percent:           wire.Percent,
			WithIllustrations: wire.WithIllustrations,
			Error:             wire.Error,
		}
	}
	return frame, nil
}
