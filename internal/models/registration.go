package models

import "time"

type RegistrationStatus string

const (
	RegistrationConfirmed RegistrationStatus = "Confirmed"
	RegistrationCancelled RegistrationStatus = "Cancelled"
)

type Registration struct {
	ID          string             `json:"id"`
	EventID     string             `json:"event_id"`
	UserID      string             `json:"user_id"`
	Status      RegistrationStatus `json:"status"`
	ConfirmedAt *time.Time         `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time         `json:"cancelled_at,omitempty"`
}
