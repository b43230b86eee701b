// Package journal keeps the player's journal: an ordered list of typed
// entries that is only ever appended to, edited or pruned by explicit
// actions.
package journal

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"

	"github.com/louisbranch/boothill/internal/services/game/domain/fold"
)

// EntryType tags the variant of a journal entry.
type EntryType string

const (
	EntryNarrative EntryType = "narrative"
	EntryCombat    EntryType = "combat"
	EntryInventory EntryType = "inventory"
	EntryQuest     EntryType = "quest"
)

// Quest statuses.
const (
	QuestActive    = "active"
	QuestCompleted = "completed"
	QuestFailed    = "failed"
)

// Combatants names both sides of a fight.
type Combatants struct {
	Player   string `json:"player"`
	Opponent string `json:"opponent"`
}

// ItemChanges lists item names gained and lost.
type ItemChanges struct {
	Acquired []string `json:"acquired"`
	Removed  []string `json:"removed"`
}

// Entry is a journal entry. Type selects which variant fields are set:
// Combatants and Outcome for combat, Items for inventory, Title and Status
// for quest.
type Entry struct {
	ID               string       `json:"id"`
	Timestamp        int64        `json:"timestamp"`
	Type             EntryType    `json:"type"`
	Content          string       `json:"content"`
	NarrativeSummary string       `json:"narrativeSummary,omitempty"`
	Combatants       *Combatants  `json:"combatants,omitempty"`
	Outcome          string       `json:"outcome,omitempty"`
	Items            *ItemChanges `json:"items,omitempty"`
	Title            string       `json:"title,omitempty"`
	Status           string       `json:"status,omitempty"`
}

// Input is a loosely typed entry description. It decodes from an entry-like
// object or from a bare string, which becomes narrative content.
type Input struct {
	ID               string       `json:"id,omitempty"`
	Timestamp        int64        `json:"timestamp,omitempty"`
	Type             EntryType    `json:"type,omitempty"`
	Content          string       `json:"content,omitempty"`
	NarrativeSummary string       `json:"narrativeSummary,omitempty"`
	Combatants       *Combatants  `json:"combatants,omitempty"`
	Outcome          string       `json:"outcome,omitempty"`
	Items            *ItemChanges `json:"items,omitempty"`
	Title            string       `json:"title,omitempty"`
	Status           string       `json:"status,omitempty"`
}

// UnmarshalJSON accepts a bare string as narrative content.
func (in *Input) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var content string
		if err := json.Unmarshal(trimmed, &content); err != nil {
			return err
		}
		*in = Input{Type: EntryNarrative, Content: content}
		return nil
	}
	type plain Input
	var decoded plain
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return err
	}
	*in = Input(decoded)
	return nil
}

// NewEntry builds the tagged variant described by in. Unknown types become
// narrative entries, a missing id or timestamp is filled from env, and only
// the fields of the chosen variant are kept.
func NewEntry(in Input, env fold.Env) Entry {
	entry := Entry{
		ID:               strings.TrimSpace(in.ID),
		Timestamp:        in.Timestamp,
		Type:             in.Type,
		Content:          in.Content,
		NarrativeSummary: in.NarrativeSummary,
	}
	if entry.ID == "" {
		entry.ID = env.ID("entry")
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = env.NowMillis()
	}
	switch in.Type {
	case EntryCombat:
		combatants := Combatants{}
		if in.Combatants != nil {
			combatants = *in.Combatants
		}
		entry.Combatants = &combatants
		entry.Outcome = in.Outcome
	case EntryInventory:
		items := ItemChanges{Acquired: []string{}, Removed: []string{}}
		if in.Items != nil {
			items.Acquired = append(items.Acquired, in.Items.Acquired...)
			items.Removed = append(items.Removed, in.Items.Removed...)
		}
		entry.Items = &items
	case EntryQuest:
		entry.Title = in.Title
		entry.Status = in.Status
		if entry.Status == "" {
			entry.Status = QuestActive
		}
	default:
		entry.Type = EntryNarrative
	}
	return entry
}

// input converts an entry back into an Input so it can be merged and rebuilt.
func (e Entry) input() Input {
	in := Input{
		ID:               e.ID,
		Timestamp:        e.Timestamp,
		Type:             e.Type,
		Content:          e.Content,
		NarrativeSummary: e.NarrativeSummary,
		Outcome:          e.Outcome,
		Title:            e.Title,
		Status:           e.Status,
	}
	if e.Combatants != nil {
		combatants := *e.Combatants
		in.Combatants = &combatants
	}
	if e.Items != nil {
		in.Items = &ItemChanges{
			Acquired: slices.Clone(e.Items.Acquired),
			Removed:  slices.Clone(e.Items.Removed),
		}
	}
	return in
}

// merge overlays the non-zero fields of patch onto in. A summary on either
// side survives.
func (in Input) merge(patch Input) Input {
	if patch.Timestamp != 0 {
		in.Timestamp = patch.Timestamp
	}
	if patch.Type != "" {
		in.Type = patch.Type
	}
	if patch.Content != "" {
		in.Content = patch.Content
	}
	if patch.NarrativeSummary != "" {
		in.NarrativeSummary = patch.NarrativeSummary
	}
	if patch.Combatants != nil {
		in.Combatants = patch.Combatants
	}
	if patch.Outcome != "" {
		in.Outcome = patch.Outcome
	}
	if patch.Items != nil {
		in.Items = patch.Items
	}
	if patch.Title != "" {
		in.Title = patch.Title
	}
	if patch.Status != "" {
		in.Status = patch.Status
	}
	return in
}
