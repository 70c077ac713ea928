package models

import "time"

type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifyWarning NotificationType = "warning"
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
)

// Notification is one entry in a user's inbox. Read starts false and only
// ever flips to true (there is no un-read, only bulk clear).
type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
	Type      NotificationType `json:"type"`
	Link      string           `json:"link,omitempty"`
}
