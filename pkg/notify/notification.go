package notify

import (
	"time"
)

// Type is the delivery channel of a notification.
type Type string

const (
	TypeEmail Type = "email"
	TypeSMS   Type = "sms"
	TypeInApp Type = "in_app"
)

// Valid reports whether t is one of the supported channels.
func (t Type) Valid() bool {
	switch t {
	case TypeEmail, TypeSMS, TypeInApp:
		return true
	}
	return false
}

// Label is the human readable channel name used in status messages.
func (t Type) Label() string {
	switch t {
	case TypeEmail:
		return "Email"
	case TypeSMS:
		return "SMS"
	case TypeInApp:
		return "In-app"
	}
	return string(t)
}

// Status is the lifecycle state of a notification record.
// Queued is initial; the other values are terminal for a delivery attempt.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusQueued, StatusSent, StatusFailed, StatusSkipped:
		return true
	}
	return false
}

// User is the recipient of notifications. Other records reference it by id.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Notification is the durable record of one notification and its delivery status.
// SentAt is set iff Status is sent; ErrorMessage is only set on failed and skipped.
type Notification struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Type         Type       `json:"type"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Status       Status     `json:"status"`
	ErrorMessage string     `json:"error_message,omitempty"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Preference holds the per-channel opt-in flags of a user. All channels are
// enabled by default.
type Preference struct {
	UserID       string    `json:"user_id"`
	EmailEnabled bool      `json:"email_enabled"`
	SMSEnabled   bool      `json:"sms_enabled"`
	InAppEnabled bool      `json:"in_app_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DefaultPreference returns the preference a user gets before changing anything.
func DefaultPreference(userID string, now time.Time) Preference {
	return Preference{
		UserID:       userID,
		EmailEnabled: true,
		SMSEnabled:   true,
		InAppEnabled: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsEnabled reports whether the user accepts notifications of type t.
// Unknown types are reported as enabled so the sender can reject them.
func (p Preference) IsEnabled(t Type) bool {
	switch t {
	case TypeEmail:
		return p.EmailEnabled
	case TypeSMS:
		return p.SMSEnabled
	case TypeInApp:
		return p.InAppEnabled
	}
	return true
}

// DisabledMessage is recorded on a notification skipped because of preferences.
func DisabledMessage(t Type) string {
	return t.Label() + " notifications disabled by user"
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
