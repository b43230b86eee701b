package action

import "strings"

// Domain names the slice (or top-level area) that owns an action.
type Domain string

const (
	DomainCharacter Domain = "character"
	DomainCombat    Domain = "combat"
	DomainInventory Domain = "inventory"
	DomainJournal   Domain = "journal"
	DomainNarrative Domain = "narrative"
	DomainUI        Domain = "ui"
	DomainGame      Domain = "game"
)

// Domains lists every known domain in routing order.
func Domains() []Domain {
	return []Domain{
		DomainCharacter,
		DomainCombat,
		DomainInventory,
		DomainJournal,
		DomainNarrative,
		DomainUI,
		DomainGame,
	}
}

// Valid reports whether d is a known domain.
func (d Domain) Valid() bool {
	switch d {
	case DomainCharacter, DomainCombat, DomainInventory, DomainJournal, DomainNarrative, DomainUI, DomainGame:
		return true
	default:
		return false
	}
}

type domainKeyword struct {
	keyword string
	domain  Domain
}

// domainKeywords is scanned in order; the first keyword contained in a legacy
// type wins.
var domainKeywords = []domainKeyword{
	{keyword: "COMBAT", domain: DomainCombat},
	{keyword: "BRAWL", domain: DomainCombat},
	{keyword: "INVENTORY", domain: DomainInventory},
	{keyword: "ITEM", domain: DomainInventory},
	{keyword: "JOURNAL", domain: DomainJournal},
	{keyword: "NARRATIVE", domain: DomainNarrative},
	{keyword: "STORY", domain: DomainNarrative},
	{keyword: "DECISION", domain: DomainNarrative},
	{keyword: "MODAL", domain: DomainUI},
	{keyword: "NOTIFICATION", domain: DomainUI},
	{keyword: "LOADING", domain: DomainUI},
	{keyword: "TAB", domain: DomainUI},
	{keyword: "CHARACTER", domain: DomainCharacter},
	{keyword: "OPPONENT", domain: DomainCharacter},
	{keyword: "WOUND", domain: DomainCharacter},
	{keyword: "STRENGTH", domain: DomainCharacter},
}

// irregularDomains covers legacy names that carry none of the domain keywords.
var irregularDomains = map[Type]Domain{
	"EQUIP_WEAPON":          DomainInventory,
	"UNEQUIP_WEAPON":        DomainInventory,
	"NEXT_ROUND":            DomainCombat,
	"SET_PLAYER":            DomainGame,
	"ADD_NPC":               DomainGame,
	"SET_LOCATION":          DomainGame,
	"ADD_QUEST":             DomainGame,
	"SET_GAME_PROGRESS":     DomainGame,
	"SAVE_GAME":             DomainGame,
	"SET_SUGGESTED_ACTIONS": DomainGame,
	"SET_CLIENT_READY":      DomainGame,
	"SET_STATE":             DomainGame,
	"RESET_STATE":           DomainGame,
}

// Classify reports the domain that owns the action, or "" when unknown.
//
// Namespaced types are split on the first "/". Flat legacy types fall back to
// keyword matching and finally to the irregular-name table.
func Classify(a Action) Domain {
	return ClassifyType(a.Type)
}

// ClassifyType is Classify for a bare type.
func ClassifyType(t Type) Domain {
	raw := strings.TrimSpace(string(t))
	if raw == "" {
		return ""
	}
	if prefix, _, ok := strings.Cut(raw, "/"); ok {
		domain := Domain(strings.ToLower(prefix))
		if domain.Valid() {
			return domain
		}
		return ""
	}
	upper := strings.ToUpper(raw)
	for _, candidate := range domainKeywords {
		if strings.Contains(upper, candidate.keyword) {
			return candidate.domain
		}
	}
	if domain, ok := irregularDomains[Type(upper)]; ok {
		return domain
	}
	return ""
}
