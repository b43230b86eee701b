package combat

import (
	"strings"

	"github.com/louisbranch/boothill/internal/platform/i18n"
)

// Code is a machine-readable validation error code.
type Code string

const (
	CodeMissingProperty Code = "MISSING_PROPERTY"
	CodeInvalidValue    Code = "INVALID_VALUE"
)

// Message keys for validation errors.
const (
	msgMissingProperty   = "combat.validation.missing_property"
	msgInvalidCombatType = "combat.validation.invalid_combat_type"
	msgInvalidRounds     = "combat.validation.invalid_rounds"
)

// ValidationError describes one problem with a combat record.
type ValidationError struct {
	Code     Code   `json:"code"`
	Message  string `json:"message"`
	Property string `json:"property"`
	Expected any    `json:"expected,omitempty"`
	Actual   any    `json:"actual,omitempty"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationResult is the outcome of validating a combat record.
// CleanedState is set only when the record is valid.
type ValidationResult struct {
	IsValid      bool              `json:"isValid"`
	Errors       []ValidationError `json:"errors"`
	CleanedState *Record           `json:"cleanedState,omitempty"`
}

// Summary joins the error messages into one line.
func (r ValidationResult) Summary() string {
	messages := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// Has reports whether the result contains an error with code for property.
func (r ValidationResult) Has(code Code, property string) bool {
	for _, err := range r.Errors {
		if err.Code == code && err.Property == property {
			return true
		}
	}
	return false
}

// Validate checks a legacy combat record with messages in the base locale.
func Validate(r *Record) ValidationResult {
	return ValidateLocale(r, i18n.BaseLocale)
}

// ValidateLocale checks a legacy combat record. Only brawling records are
// valid: combatType must be brawling, participants and combatLog must be
// present and rounds must be a non-negative number.
func ValidateLocale(r *Record, locale string) ValidationResult {
	p := i18n.Printer(locale)
	result := ValidationResult{Errors: []ValidationError{}}
	missing := func(property string) {
		result.Errors = append(result.Errors, ValidationError{
			Code:     CodeMissingProperty,
			Message:  p.Sprintf(msgMissingProperty, property),
			Property: property,
		})
	}
	if r == nil {
		missing("combatState")
		return result
	}

	switch r.CombatType {
	case TypeNone:
		missing("combatType")
	case TypeBrawling:
	default:
		result.Errors = append(result.Errors, ValidationError{
			Code:     CodeInvalidValue,
			Message:  p.Sprintf(msgInvalidCombatType, string(TypeBrawling), string(r.CombatType)),
			Property: "combatType",
			Expected: string(TypeBrawling),
			Actual:   string(r.CombatType),
		})
	}
	if r.Participants == nil {
		missing("participants")
	}
	switch {
	case r.Rounds == nil:
		missing("rounds")
	case *r.Rounds < 0:
		result.Errors = append(result.Errors, ValidationError{
			Code:     CodeInvalidValue,
			Message:  p.Sprintf(msgInvalidRounds, *r.Rounds),
			Property: "rounds",
			Expected: "non-negative number",
			Actual:   *r.Rounds,
		})
	}
	if r.CombatLog == nil {
		missing("combatLog")
	}

	result.IsValid = len(result.Errors) == 0
	if result.IsValid {
		result.CleanedState = cleaned(r)
	}
	return result
}

// cleaned keeps only the allow-listed record properties.
func cleaned(r *Record) *Record {
	full := r.Clone()
	return &Record{
		IsActive:     full.IsActive,
		CombatType:   full.CombatType,
		Winner:       full.Winner,
		Participants: full.Participants,
		Rounds:       full.Rounds,
		CombatLog:    full.CombatLog,
	}
}
