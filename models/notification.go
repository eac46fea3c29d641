package models

// NotificationKind tags a toast as a success or an error
type NotificationKind string

// Notification kinds
const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification holds the structure for the transient toast. Token identifies this particular
// toast so that a stale dismissal cannot clear a newer one.
type Notification struct {
	Token   uint64           `json:"token"`
	Message string           `json:"message"`
	Kind    NotificationKind `json:"kind"`
}
