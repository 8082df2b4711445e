package usecase

import (
	"inkwell/internal/modules/realtime/dto"
	realtimein "inkwell/internal/modules/realtime/port/in"
	"inkwell/internal/modules/realtime/service"
)

type Interactor struct {
	svc *service.RealtimeService
}

func NewInteractor(svc *service.RealtimeService) realtimein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) SetCredential(key string) { i.svc.SetCredential(key) }
func (i *Interactor) WatchBook(bookID string)  { i.svc.WatchBook(bookID) }
func (i *Interactor) Unwatch()                 { i.svc.Unwatch() }
func (i *Interactor) Shutdown()                { i.svc.Shutdown() }

func (i *Interactor) Progress() dto.ProgressOutput {
	view, visible := i.svc.Progress()
	return dto.ProgressOutput{
		Visible:           visible,
		Phase:             string(view.Phase),
		BookID:            view.BookID,
		CurrentStep:       view.CurrentStep,
		TotalSteps:        view.TotalSteps,
		Message:           view.Message,
		Percent:           view.Percent,
		WithIllustrations: view.WithIllustrations,
		Error:             view.Error,
	}
}

func (i *Interactor) Status() dto.StatusOutput {
	status := i.svc.Status()
	return dto.StatusOutput{
		State:      string(status.State),
		Frames:     status.Frames,
		Drops:      status.Drops,
		Reconnects: status.Reconnects,
	}
}
