package server

import (
	"log"
	"strings"

	"github.com/louisbranch/boothill/internal/services/game/domain/aggregate"
	"github.com/louisbranch/boothill/internal/services/game/domain/combat"
	"github.com/louisbranch/boothill/internal/services/game/domain/fold"
	"github.com/louisbranch/boothill/internal/services/game/session"
)

// Options configures the game runtime.
type Options struct {
	// DBPath is the SQLite save store path. Empty keeps saves in memory.
	DBPath             string
	StrictUpdateTarget bool
	CombatEndPolicy    combat.EndPolicy
	// Locale selects the language of combat validation messages.
	Locale    string
	Autosave  bool
	UndoDepth int
}

// engine builds the aggregate engine for opts.
func (o Options) engine() aggregate.Engine {
	return aggregate.Engine{
		Env:                fold.Env{Logf: log.Printf},
		StrictUpdateTarget: o.StrictUpdateTarget,
		CombatEndPolicy:    o.CombatEndPolicy,
		Locale:             strings.TrimSpace(o.Locale),
	}
}

func (o Options) sessionConfig() session.Config {
	return session.Config{
		Engine:    o.engine(),
		UndoDepth: o.UndoDepth,
		Autosave:  o.Autosave,
	}
}
