// Package game parses game command flags and starts the session server.
package game

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/boothill/internal/platform/cmd"
	server "github.com/louisbranch/boothill/internal/services/game/app"
	"github.com/louisbranch/boothill/internal/services/game/domain/combat"
)

// Config holds game command configuration.
type Config struct {
	Port               int              `env:"GAME_PORT" envDefault:"8082"`
	Addr               string           `env:"GAME_ADDR"`
	DBPath             string           `env:"GAME_DB_PATH" envDefault:"data/game.db"`
	StrictUpdateTarget bool             `env:"GAME_STRICT_UPDATE_TARGET"`
	CombatEndPolicy    combat.EndPolicy `env:"GAME_COMBAT_END_POLICY" envDefault:"fail-open"`
	Locale             string           `env:"GAME_LOCALE" envDefault:"en-US"`
	Autosave           bool             `env:"GAME_AUTOSAVE"`
	UndoDepth          int              `env:"GAME_UNDO_DEPTH" envDefault:"20"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The game server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The game server listen address (overrides -port)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite save store path (empty keeps saves in memory)")
	fs.BoolVar(&cfg.StrictUpdateTarget, "strict-update-target", cfg.StrictUpdateTarget, "Reject character updates that name an unknown target")
	fs.Var(&cfg.CombatEndPolicy, "combat-end-policy", "Invalid combat end handling: fail-open or fail-closed")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Default locale for combat end summaries")
	fs.BoolVar(&cfg.Autosave, "autosave", cfg.Autosave, "Write the autosave slot after every changing action")
	fs.IntVar(&cfg.UndoDepth, "undo-depth", cfg.UndoDepth, "Undo history depth per session (negative disables undo)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Options converts the command configuration into server options.
func (c Config) Options() server.Options {
	return server.Options{
		DBPath:             c.DBPath,
		StrictUpdateTarget: c.StrictUpdateTarget,
		CombatEndPolicy:    c.CombatEndPolicy,
		Locale:             c.Locale,
		Autosave:           c.Autosave,
		UndoDepth:          c.UndoDepth,
	}
}

// Run starts the game session service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGame, func(context.Context) error {
		if cfg.Addr != "" {
			return server.RunWithAddr(ctx, cfg.Addr, cfg.Options())
		}
		return server.Run(ctx, cfg.Port, cfg.Options())
	})
}
