package events

import "time"

// Event names
const (
	UserRegistered = "USER_REGISTERED"
	UserLoggedIn   = "USER_LOGGED_IN"
)

// Envelope is the wire format published to the broker and pushed to the
// wallet service.
type Envelope struct {
	Event     string    `json:"event"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

type UserRegisteredEvent struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type UserLoggedInEvent struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
