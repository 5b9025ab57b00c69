package core

import (
	"time"
)

// ThresholdKey is the settings key holding the confidence threshold
const ThresholdKey = "threshold"

// DefaultThreshold applies when no threshold has been saved
const DefaultThreshold = 0.6

// UncertainLabel replaces the backend label when confidence is below the threshold
const UncertainLabel = "Uncertain"

// User-visible messages
const (
	MsgLoading          = "Fetching emails..."
	MsgNotLoggedIn      = "Not logged in."
	MsgUnreachable      = "Could not connect to backend."
	MsgUnexpected       = "Unexpected response from backend."
	MsgEmpty            = "No emails found."
	MsgInvalidThreshold = "Enter a valid number between 0 and 1."
	MsgSaved            = "Saved!"
)

// EmailRecord represents a classified email as returned by the backend
type EmailRecord struct {
	Subject    string  `json:"subject"`
	From       string  `json:"from,omitempty"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Card is the display form of one email record
type Card struct {
	Subject    string
	From       string
	Label      string
	Confidence float64
	Uncertain  bool
}

// Health is the backend status reported by its root endpoint
type Health struct {
	Status    string
	CheckedAt time.Time
}

// PopupStatus tags the outcome of one popup refresh
type PopupStatus int

const (
	StateEmails PopupStatus = iota
	StateEmpty
	StateNotLoggedIn
	StateUnreachable
	StateUnexpected
)

// String returns the status name used in logs
func (s PopupStatus) String() string {
	switch s {
	case StateEmails:
		return "emails"
	case StateEmpty:
		return "empty"
	case StateNotLoggedIn:
		return "not_logged_in"
	case StateUnreachable:
		return "unreachable"
	case StateUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// PopupState is everything a view needs to draw the popup after a refresh
type PopupState struct {
	Status    PopupStatus
	Identity  string
	Threshold float64
	Cards     []Card
	LoginURL  string
}

// Message returns the fixed status line for states that carry no cards
func (s *PopupState) Message() string {
	switch s.Status {
	case StateEmpty:
		return MsgEmpty
	case StateNotLoggedIn:
		return MsgNotLoggedIn
	case StateUnreachable:
		return MsgUnreachable
	case StateUnexpected:
		return MsgUnexpected
	default:
		return ""
	}
}
