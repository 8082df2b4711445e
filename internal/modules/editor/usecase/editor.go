package usecase

import (
	"context"

	"inkwell/internal/modules/editor/dto"
	editorin "inkwell/internal/modules/editor/port/in"
	"inkwell/internal/modules/editor/service"
)

type Interactor struct {
	svc *service.PageEditor
}

func NewInteractor(svc *service.PageEditor) editorin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Open(input dto.OpenInput)        { i.svc.Open(input) }
func (i *Interactor) Input(text string)               { i.svc.Input(text) }
func (i *Interactor) Undo() (string, bool)            { return i.svc.Undo() }
func (i *Interactor) Redo() (string, bool)            { return i.svc.Redo() }
func (i *Interactor) Flush(ctx context.Context) error { return i.svc.Flush(ctx) }
func (i *Interactor) Close(ctx context.Context)       { i.svc.Close(ctx) }
func (i *Interactor) State() dto.StateOutput          { return i.svc.State() }
