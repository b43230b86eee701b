// Package inventory models the items the player carries.
package inventory

import (
	"slices"
	"strings"
)

// Category is the closed set of item categories.
type Category string

const (
	CategoryGeneral    Category = "general"
	CategoryWeapon     Category = "weapon"
	CategoryConsumable Category = "consumable"
	CategoryMedical    Category = "medical"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryWeapon, CategoryConsumable, CategoryMedical:
		return true
	default:
		return false
	}
}

// consumable reports whether using an item of this category spends it.
func (c Category) consumable() bool {
	return c == CategoryConsumable || c == CategoryMedical
}

// Effect is what using an item does.
type Effect struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

// Requirements gate who can use an item.
type Requirements struct {
	MinimumStrength int    `json:"minimumStrength,omitempty"`
	OptionalSkill   string `json:"optionalSkill,omitempty"`
}

// Item is one inventory entry.
type Item struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Quantity     int           `json:"quantity"`
	Category     Category      `json:"category"`
	IsEquipped   bool          `json:"isEquipped,omitempty"`
	Effect       *Effect       `json:"effect,omitempty"`
	Requirements *Requirements `json:"requirements,omitempty"`
}

// State is the inventory slice.
type State struct {
	Items            []Item `json:"items"`
	EquippedWeaponID string `json:"equippedWeaponId,omitempty"`
}

// Initial returns the empty inventory.
func Initial() *State {
	return &State{Items: []Item{}}
}

// Valid reports whether s is structurally usable as an inventory slice.
func Valid(s *State) bool {
	return s != nil && s.Items != nil
}

// FromItems builds an inventory from a bare item list, as stored by older
// saves. The equipped weapon is recovered from the item flags.
func FromItems(items []Item) *State {
	s := &State{Items: make([]Item, 0, len(items))}
	for _, item := range items {
		item = normalizeItem(item)
		s.Items = append(s.Items, item)
		if item.IsEquipped && s.EquippedWeaponID == "" {
			s.EquippedWeaponID = item.ID
		}
	}
	return s
}

func (s *State) index(id string) int {
	return slices.IndexFunc(s.Items, func(item Item) bool { return item.ID == id })
}

// normalizeItem fills a missing category and id.
func normalizeItem(item Item) Item {
	if !item.Category.Valid() {
		item.Category = CategoryGeneral
	}
	if item.ID == "" {
		item.ID = slug(item.Name)
	}
	if item.Quantity < 0 {
		item.Quantity = 0
	}
	return item
}

func slug(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, "-")
}
