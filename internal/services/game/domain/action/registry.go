package action

import "strings"

// legacyTypes maps legacy flat action types onto their namespaced form.
var legacyTypes = map[Type]Type{
	"SET_CHARACTER":     SetCharacter,
	"UPDATE_CHARACTER":  UpdateCharacter,
	"SET_OPPONENT":      SetOpponent,
	"CLEAR_OPPONENT":    ClearOpponent,
	"ADD_WOUND":         AddWound,
	"RESET_STRENGTH":    ResetStrength,
	"SET_BASE_STRENGTH": SetBaseStrength,

	"SET_COMBAT_ACTIVE":   SetCombatActive,
	"SET_COMBAT_TYPE":     SetCombatType,
	"UPDATE_COMBAT_STATE": UpdateCombatState,
	"ADD_COMBAT_LOG":      AddCombatLogEntry,
	"NEXT_ROUND":          NextCombatRound,
	"END_COMBAT":          EndCombat,

	"ADD_ITEM":             AddItem,
	"REMOVE_ITEM":          RemoveItem,
	"USE_ITEM":             UseItem,
	"UPDATE_ITEM_QUANTITY": UpdateItemQuantity,
	"CLEAN_INVENTORY":      CleanInventory,
	"SET_INVENTORY":        SetInventory,
	"EQUIP_WEAPON":         EquipWeapon,
	"UNEQUIP_WEAPON":       UnequipWeapon,

	"UPDATE_JOURNAL":       AddJournalEntry,
	"UPDATE_JOURNAL_ENTRY": UpdateJournalEntry,
	"REMOVE_JOURNAL_ENTRY": RemoveJournalEntry,
	"SET_JOURNAL":          SetJournalEntries,
	"CLEAR_JOURNAL":        ClearJournal,

	"ADD_NARRATIVE_HISTORY":    AddNarrativeHistory,
	"SET_NARRATIVE":            SetNarrative,
	"SET_STORY_POINT":          SetStoryPoint,
	"UPDATE_NARRATIVE_CONTEXT": UpdateNarrativeContext,
	"RECORD_DECISION":          RecordDecision,
	"RESET_NARRATIVE":          ResetNarrative,

	"SET_LOADING":         SetLoading,
	"OPEN_MODAL":          OpenModal,
	"CLOSE_MODAL":         CloseModal,
	"ADD_NOTIFICATION":    AddNotification,
	"REMOVE_NOTIFICATION": RemoveNotification,
	"CLEAR_NOTIFICATIONS": ClearNotifications,
	"SET_ACTIVE_TAB":      SetActiveTab,

	"SET_PLAYER":            SetPlayer,
	"ADD_NPC":               AddNPC,
	"SET_LOCATION":          SetLocation,
	"ADD_QUEST":             AddQuest,
	"SET_GAME_PROGRESS":     SetGameProgress,
	"SAVE_GAME":             SetSavedTimestamp,
	"SET_SUGGESTED_ACTIONS": SetSuggestedActions,
	"SET_CLIENT_READY":      SetClientReady,
	"SET_STATE":             SetState,
	"RESET_STATE":           ResetState,
}

// namespacedTypes is the reverse of legacyTypes.
var namespacedTypes = func() map[Type]Type {
	reverse := make(map[Type]Type, len(legacyTypes))
	for legacy, namespaced := range legacyTypes {
		reverse[namespaced] = legacy
	}
	return reverse
}()

// Normalize rewrites a legacy action type to its namespaced form. The payload
// is carried over untouched and unrecognized types pass through unchanged.
func Normalize(a Action) Action {
	if namespaced, ok := Namespaced(a.Type); ok {
		a.Type = namespaced
	}
	return a
}

// Namespaced returns the namespaced form of a legacy type. Types that are
// already namespaced are returned as-is when known.
func Namespaced(t Type) (Type, bool) {
	key := Type(strings.TrimSpace(string(t)))
	if namespaced, ok := legacyTypes[key]; ok {
		return namespaced, true
	}
	if _, ok := namespacedTypes[key]; ok {
		return key, true
	}
	return t, false
}

// Legacy returns the legacy flat name for a namespaced type.
func Legacy(t Type) (Type, bool) {
	legacy, ok := namespacedTypes[t]
	return legacy, ok
}

// IsLegacy reports whether t is a legacy flat type.
func IsLegacy(t Type) bool {
	_, ok := legacyTypes[t]
	return ok
}

// Known reports whether t belongs to either vocabulary.
func Known(t Type) bool {
	_, ok := Namespaced(t)
	return ok
}

// NamespacedTypes lists every namespaced type the engine understands.
func NamespacedTypes() []Type {
	types := make([]Type, 0, len(namespacedTypes))
	for namespaced := range namespacedTypes {
		types = append(types, namespaced)
	}
	return types
}
