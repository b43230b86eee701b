package aggregate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/louisbranch/boothill/internal/services/game/domain/character"
	"github.com/louisbranch/boothill/internal/services/game/domain/combat"
	"github.com/louisbranch/boothill/internal/services/game/domain/fold"
	"github.com/louisbranch/boothill/internal/services/game/domain/inventory"
	"github.com/louisbranch/boothill/internal/services/game/domain/journal"
	"github.com/louisbranch/boothill/internal/services/game/domain/narrative"
	"github.com/louisbranch/boothill/internal/services/game/domain/ui"
)

// ErrNotObject is returned by Decode when the payload is not a JSON object.
var ErrNotObject = errors.New("state must be a JSON object")

// Decode parses a persisted state blob and migrates it. Blobs that are not a
// JSON object yield a fresh initial state together with the error.
func Decode(data []byte) (*State, error) {
	return decode(data, fold.Env{})
}

func decode(data []byte, env fold.Env) (*State, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return Initial(), fmt.Errorf("decode state: %w", err)
	}
	object, ok := raw.(map[string]any)
	if !ok {
		return Initial(), fmt.Errorf("decode state: %w (got %T)", ErrNotObject, raw)
	}
	return migrate(object, env), nil
}

// Migrate builds a complete state from any previous state shape: flat legacy
// arrays, partially populated objects or a fully valid state. Every slice
// that fails its structural check is replaced by its default; bare inventory
// and journal arrays are adopted as the slice contents, and top-level player
// and opponent objects are adopted into an empty character slice.
func Migrate(raw map[string]any) *State {
	return migrate(raw, fold.Env{})
}

func migrate(raw map[string]any, env fold.Env) *State {
	if raw == nil {
		return Initial()
	}
	s := &State{
		CurrentPlayer:    getString(raw, "currentPlayer", ""),
		NPCs:             getStrings(raw, "npcs"),
		Location:         getLocation(raw, "location"),
		Quests:           getStrings(raw, "quests"),
		GameProgress:     getInt(raw, "gameProgress", 0),
		SavedTimestamp:   getInt64(raw, "savedTimestamp", 0),
		IsClient:         getBool(raw, "isClient", false),
		SuggestedActions: getSuggestedActions(raw, "suggestedActions"),

		Character: migrateCharacter(raw),
		Combat:    migrateCombat(raw),
		Inventory: migrateInventory(raw["inventory"]),
		Journal:   migrateJournal(raw["journal"], env),
		Narrative: migrateNarrative(raw["narrative"]),
		UI:        migrateUI(raw["ui"]),
	}
	return Complete(s)
}

func migrateCharacter(raw map[string]any) *character.State {
	s := character.Initial()
	if object, ok := raw["character"].(map[string]any); ok {
		if decoded, ok := decodeLenient[character.State](object); ok {
			s = &decoded
		}
	}
	if s.Player == nil {
		if player, ok := decodeCharacter(raw["player"]); ok {
			s.Player = &player
		}
	}
	if s.Opponent == nil {
		if opponent, ok := decodeCharacter(raw["opponent"]); ok {
			s.Opponent = &opponent
		}
	}
	return character.Complete(s)
}

func decodeCharacter(value any) (character.Character, bool) {
	object, ok := value.(map[string]any)
	if !ok {
		return character.Character{}, false
	}
	return decodeLenient[character.Character](object)
}

func migrateCombat(raw map[string]any) *combat.State {
	object, ok := raw["combat"].(map[string]any)
	if !ok {
		s := combat.Initial()
		s.IsActive = getBool(raw, "isCombatActive", false)
		if record, ok := decodeObject[combat.Record](raw["combatState"]); ok && s.IsActive {
			s.Legacy = &record
		}
		return s
	}
	decoded, ok := decodeAs[combat.State](object)
	if !ok {
		return combat.Initial()
	}
	if decoded.Legacy == nil && decoded.IsActive {
		if record, ok := decodeObject[combat.Record](raw["combatState"]); ok {
			decoded.Legacy = &record
		}
	}
	return combat.Complete(&decoded)
}

func migrateInventory(value any) *inventory.State {
	switch v := value.(type) {
	case []any:
		return inventory.FromItems(decodeEach[inventory.Item](v))
	case map[string]any:
		if _, ok := v["items"].([]any); !ok {
			return inventory.Initial()
		}
		if decoded, ok := decodeLenient[inventory.State](v); ok {
			return &decoded
		}
	}
	return inventory.Initial()
}

func migrateJournal(value any, env fold.Env) *journal.State {
	switch v := value.(type) {
	case []any:
		return journal.FromInputs(decodeEach[journal.Input](v), env)
	case map[string]any:
		if _, ok := v["entries"].([]any); !ok {
			return journal.Initial()
		}
		if decoded, ok := decodeLenient[journal.State](v); ok {
			return &decoded
		}
	}
	return journal.Initial()
}

func migrateNarrative(value any) *narrative.State {
	object, ok := value.(map[string]any)
	if !ok {
		return narrative.Initial()
	}
	if _, ok := object["narrativeHistory"].([]any); !ok {
		return narrative.Initial()
	}
	decoded, ok := decodeAs[narrative.State](object)
	if !ok {
		return narrative.Initial()
	}
	return &decoded
}

func migrateUI(value any) *ui.State {
	object, ok := value.(map[string]any)
	if !ok {
		return ui.Initial()
	}
	if _, ok := object["notifications"].([]any); !ok {
		return ui.Initial()
	}
	decoded, ok := decodeAs[ui.State](object)
	if !ok {
		return ui.Initial()
	}
	if decoded.ActiveTab == "" {
		decoded.ActiveTab = ui.DefaultTab
	}
	return &decoded
}

// decodeAs converts a generic JSON value into T through a JSON round trip.
func decodeAs[T any](value any) (T, bool) {
	var out T
	data, err := json.Marshal(value)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false
	}
	return out, true
}

// decodeObject is decodeAs restricted to JSON objects.
func decodeObject[T any](value any) (T, bool) {
	object, ok := value.(map[string]any)
	if !ok {
		var zero T
		return zero, false
	}
	return decodeAs[T](object)
}

// decodeEach decodes every element of values as T, skipping the elements
// that do not fit.
func decodeEach[T any](values []any) []T {
	out := make([]T, 0, len(values))
	for _, value := range values {
		if decoded, ok := decodeAs[T](value); ok {
			out = append(out, decoded)
		}
	}
	return out
}

// decodeLenient decodes object as T. When the whole object does not fit,
// the fields, nested fields and array elements that fail to decode are
// dropped and the remainder is adopted.
func decodeLenient[T any](object map[string]any) (T, bool) {
	if decoded, ok := decodeAs[T](object); ok {
		return decoded, true
	}
	pruned := prune(object, func(candidate map[string]any) bool {
		_, ok := decodeAs[T](candidate)
		return ok
	})
	return decodeAs[T](pruned)
}

// prune keeps the parts of object accepted by fits. fits is always asked
// about a single top-level key so that one bad value cannot hide another.
func prune(object map[string]any, fits func(map[string]any) bool) map[string]any {
	out := make(map[string]any, len(object))
	for key, value := range object {
		wrap := func(v any) map[string]any { return map[string]any{key: v} }
		if fits(wrap(value)) {
			out[key] = value
			continue
		}
		var kept any
		switch v := value.(type) {
		case map[string]any:
			kept = prune(v, func(candidate map[string]any) bool {
				return fits(wrap(candidate))
			})
		case []any:
			elements := make([]any, 0, len(v))
			for _, element := range v {
				if fits(wrap([]any{element})) {
					elements = append(elements, element)
				}
			}
			kept = elements
		default:
			continue
		}
		if fits(wrap(kept)) {
			out[key] = kept
		}
	}
	return out
}

func getString(raw map[string]any, key, fallback string) string {
	if value, ok := raw[key].(string); ok {
		return value
	}
	return fallback
}

func getBool(raw map[string]any, key string, fallback bool) bool {
	if value, ok := raw[key].(bool); ok {
		return value
	}
	return fallback
}

func getInt64(raw map[string]any, key string, fallback int64) int64 {
	switch value := raw[key].(type) {
	case json.Number:
		if n, err := value.Int64(); err == nil {
			return n
		}
		if f, err := value.Float64(); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int64(f)
		}
	case float64:
		if !math.IsNaN(value) && !math.IsInf(value, 0) {
			return int64(value)
		}
	case int:
		return int64(value)
	case int64:
		return value
	}
	return fallback
}

func getInt(raw map[string]any, key string, fallback int) int {
	return int(getInt64(raw, key, int64(fallback)))
}

func getStrings(raw map[string]any, key string) []string {
	values, ok := raw[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if s, ok := value.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func getLocation(raw map[string]any, key string) *Location {
	switch value := raw[key].(type) {
	case string:
		if value != "" {
			return &Location{Name: value}
		}
	case map[string]any:
		if location, ok := decodeAs[Location](value); ok {
			return &location
		}
	}
	location := DefaultLocation
	return &location
}

func getSuggestedActions(raw map[string]any, key string) []SuggestedAction {
	values, ok := raw[key].([]any)
	if !ok {
		return []SuggestedAction{}
	}
	out := make([]SuggestedAction, 0, len(values))
	for _, value := range values {
		if suggestion, ok := decodeObject[SuggestedAction](value); ok {
			out = append(out, suggestion)
		}
	}
	return out
}
