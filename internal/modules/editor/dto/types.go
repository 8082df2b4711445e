package dto

type OpenInput struct {
	BookID  string
	PageID  string
	Title   string
	Content string
}

// StateOutput is what the editor view renders each frame.
type StateOutput struct {
	BookID      string
	PageID      string
	Content     string
	CanUndo     bool
	CanRedo     bool
	Dirty       bool
	SavePending bool
}
