package dto

import "time"

type LoginInput struct {
	Key string
}

type LoginOutput struct {
	Email   string
	Plan    string
	Credits int
}

type SessionOutput struct {
	Key     string
	SavedAt time.Time
	Email   string
	Plan    string
	Credits int
}
