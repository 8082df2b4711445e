package dto

type ProgressOutput struct {
	Visible           bool
	Phase             string
	BookID            string
	CurrentStep       int
	TotalSteps        int
	Message           string
	Percent           float64
	WithIllustrations bool
	Error             string
}

type StatusOutput struct {
	State      string
	Frames     int
	Drops      int
	Reconnects int
}
