// Package ui holds client presentation state: the loading flag, the open
// modal, notifications and the selected tab.
package ui

// DefaultTab is the tab selected in a fresh session.
const DefaultTab = "character"

// NotificationType grades a notification.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification is one message shown to the player.
type Notification struct {
	ID        string           `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Timestamp int64            `json:"timestamp"`
}

// State is the UI slice. An empty ModalOpen means no modal is open.
type State struct {
	IsLoading     bool           `json:"isLoading"`
	ModalOpen     string         `json:"modalOpen,omitempty"`
	Notifications []Notification `json:"notifications"`
	ActiveTab     string         `json:"activeTab"`
}

// Initial returns the UI slice of a fresh session.
func Initial() *State {
	return &State{
		Notifications: []Notification{},
		ActiveTab:     DefaultTab,
	}
}

// Valid reports whether s is structurally usable as a UI slice.
func Valid(s *State) bool {
	return s != nil && s.Notifications != nil
}
