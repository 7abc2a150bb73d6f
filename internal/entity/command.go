package entity

import "time"

// RegisteredCommand is a voice command owned by a client screen. Registrations
// live for the lifetime of the screen's focus; the screen unregisters them on
// blur.
type RegisteredCommand struct {
	ID          string    `json:"id"`
	Screen      string    `json:"screen"`
	Patterns    []string  `json:"patterns"`
	Description string    `json:"description"`
	ActionType  string    `json:"action_type"`
	Target      string    `json:"target,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	ActionNavigate = "navigate"
	ActionScroll   = "scroll"
	ActionTrigger  = "trigger"
)
