package model

import "time"

// NotificationField is one titled line of a notification, such as the
// outcome for a single content type.
type NotificationField struct {
	Name   string
	Value  string
	Inline bool
}

// Notification is a transport-agnostic message for downstream notifiers.
// Failed marks messages that report at least one unsuccessful step.
type Notification struct {
	Title       string
	Description string
	Fields      []NotificationField
	Failed      bool
	At          time.Time
}
