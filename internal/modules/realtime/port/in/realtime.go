package in

import "inkwell/internal/modules/realtime/dto"

type Usecase interface {
	// SetCredential swaps the push subscription to a new credential. An
	// empty key tears the channel down and leaves it down.
	SetCredential(key string)
	WatchBook(bookID string)
	Unwatch()
	Progress() dto.ProgressOutput
	Status() dto.StatusOutput
	Shutdown()
}
