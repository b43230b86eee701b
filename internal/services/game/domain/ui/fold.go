package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/louisbranch/boothill/internal/services/game/domain/action"
	"github.com/louisbranch/boothill/internal/services/game/domain/fold"
)

// Folder applies actions to the UI slice.
type Folder struct {
	Env fold.Env
}

// FoldHandledTypes returns the action types the UI fold reacts to.
func FoldHandledTypes() []action.Type {
	return []action.Type{
		action.SetLoading,
		action.OpenModal,
		action.CloseModal,
		action.AddNotification,
		action.RemoveNotification,
		action.ClearNotifications,
		action.SetActiveTab,
	}
}

// Fold applies a to the UI slice. The input is never modified and is
// returned as-is when the action does not change it.
func (f Folder) Fold(state *State, a action.Action) (*State, error) {
	if state == nil {
		state = Initial()
	}
	switch a.Type {
	case action.SetLoading:
		loading, err := action.DecodePayload[bool](a)
		if err != nil {
			return state, fmt.Errorf("ui fold %s: %w", a.Type, err)
		}
		if state.IsLoading == loading {
			return state, nil
		}
		next := *state
		next.IsLoading = loading
		return &next, nil
	case action.OpenModal:
		modal, err := decodeID(a)
		if err != nil {
			return state, fmt.Errorf("ui fold %s: %w", a.Type, err)
		}
		if state.ModalOpen == modal {
			return state, nil
		}
		next := *state
		next.ModalOpen = modal
		return &next, nil
	case action.CloseModal:
		if state.ModalOpen == "" {
			return state, nil
		}
		next := *state
		next.ModalOpen = ""
		return &next, nil
	case action.AddNotification:
		notification, err := decodeNotification(a)
		if err != nil {
			return state, fmt.Errorf("ui fold %s: %w", a.Type, err)
		}
		if notification.ID == "" {
			notification.ID = f.Env.ID("note")
		}
		if notification.Timestamp == 0 {
			notification.Timestamp = f.Env.NowMillis()
		}
		if notification.Type == "" {
			notification.Type = NotificationInfo
		}
		next := *state
		next.Notifications = append(slices.Clone(state.Notifications), notification)
		return &next, nil
	case action.RemoveNotification:
		id, err := decodeID(a)
		if err != nil {
			return state, fmt.Errorf("ui fold %s: %w", a.Type, err)
		}
		i := slices.IndexFunc(state.Notifications, func(n Notification) bool { return n.ID == id })
		if i < 0 {
			return state, nil
		}
		next := *state
		next.Notifications = slices.Delete(slices.Clone(state.Notifications), i, i+1)
		return &next, nil
	case action.ClearNotifications:
		if len(state.Notifications) == 0 && state.Notifications != nil {
			return state, nil
		}
		next := *state
		next.Notifications = []Notification{}
		return &next, nil
	case action.SetActiveTab:
		tab, err := decodeID(a)
		if err != nil {
			return state, fmt.Errorf("ui fold %s: %w", a.Type, err)
		}
		if state.ActiveTab == tab {
			return state, nil
		}
		next := *state
		next.ActiveTab = tab
		return &next, nil
	}
	return state, nil
}

type idPayload struct {
	ID string `json:"id"`
}

// decodeID reads a bare string or {id}.
func decodeID(a action.Action) (string, error) {
	payload := bytes.TrimSpace(a.Payload)
	if len(payload) > 0 && payload[0] == '{' {
		var obj idPayload
		if err := json.Unmarshal(payload, &obj); err != nil {
			return "", fmt.Errorf("decode %s payload: %w", a.Type, err)
		}
		return obj.ID, nil
	}
	return action.DecodePayload[string](a)
}

// decodeNotification reads a bare message or a Notification.
func decodeNotification(a action.Action) (Notification, error) {
	payload := bytes.TrimSpace(a.Payload)
	if len(payload) > 0 && payload[0] == '"' {
		message, err := action.DecodePayload[string](a)
		return Notification{Message: message}, err
	}
	return action.DecodePayload[Notification](a)
}
