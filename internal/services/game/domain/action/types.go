package action

// Character slice.
const (
	SetCharacter    Type = "character/SET_CHARACTER"
	UpdateCharacter Type = "character/UPDATE_CHARACTER"
	SetOpponent     Type = "character/SET_OPPONENT"
	ClearOpponent   Type = "character/CLEAR_OPPONENT"
	AddWound        Type = "character/ADD_WOUND"
	ResetStrength   Type = "character/RESET_STRENGTH"
	SetBaseStrength Type = "character/SET_BASE_STRENGTH"
)

// Combat slice.
const (
	SetCombatActive   Type = "combat/SET_ACTIVE"
	SetCombatType     Type = "combat/SET_COMBAT_TYPE"
	UpdateCombatState Type = "combat/UPDATE_COMBAT_STATE"
	AddCombatLogEntry Type = "combat/ADD_LOG_ENTRY"
	NextCombatRound   Type = "combat/NEXT_ROUND"
	EndCombat         Type = "combat/END_COMBAT"
)

// Inventory slice.
const (
	AddItem            Type = "inventory/ADD_ITEM"
	RemoveItem         Type = "inventory/REMOVE_ITEM"
	UseItem            Type = "inventory/USE_ITEM"
	UpdateItemQuantity Type = "inventory/UPDATE_ITEM_QUANTITY"
	CleanInventory     Type = "inventory/CLEAN_INVENTORY"
	SetInventory       Type = "inventory/SET_INVENTORY"
	EquipWeapon        Type = "inventory/EQUIP_WEAPON"
	UnequipWeapon      Type = "inventory/UNEQUIP_WEAPON"
)

// Journal slice.
const (
	AddJournalEntry    Type = "journal/ADD_ENTRY"
	UpdateJournalEntry Type = "journal/UPDATE_ENTRY"
	RemoveJournalEntry Type = "journal/REMOVE_ENTRY"
	SetJournalEntries  Type = "journal/SET_ENTRIES"
	ClearJournal       Type = "journal/CLEAR_ENTRIES"
)

// Narrative slice.
const (
	AddNarrativeHistory    Type = "narrative/ADD_NARRATIVE_HISTORY"
	SetNarrative           Type = "narrative/SET_NARRATIVE"
	SetStoryPoint          Type = "narrative/SET_STORY_POINT"
	UpdateNarrativeContext Type = "narrative/UPDATE_NARRATIVE_CONTEXT"
	RecordDecision         Type = "narrative/RECORD_DECISION"
	ResetNarrative         Type = "narrative/RESET_NARRATIVE"
)

// UI slice.
const (
	SetLoading         Type = "ui/SET_LOADING"
	OpenModal          Type = "ui/OPEN_MODAL"
	CloseModal         Type = "ui/CLOSE_MODAL"
	AddNotification    Type = "ui/ADD_NOTIFICATION"
	RemoveNotification Type = "ui/REMOVE_NOTIFICATION"
	ClearNotifications Type = "ui/CLEAR_NOTIFICATIONS"
	SetActiveTab       Type = "ui/SET_ACTIVE_TAB"
)

// Top-level (non-sliced) fields and whole-state operations.
const (
	SetPlayer           Type = "game/SET_PLAYER"
	AddNPC              Type = "game/ADD_NPC"
	SetLocation         Type = "game/SET_LOCATION"
	AddQuest            Type = "game/ADD_QUEST"
	SetGameProgress     Type = "game/SET_GAME_PROGRESS"
	SetSavedTimestamp   Type = "game/SET_SAVED_TIMESTAMP"
	SetSuggestedActions Type = "game/SET_SUGGESTED_ACTIONS"
	SetClientReady      Type = "game/SET_CLIENT_READY"
	SetState            Type = "game/SET_STATE"
	ResetState          Type = "game/RESET_STATE"
)
