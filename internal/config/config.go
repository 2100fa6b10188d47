// Package config loads engine tunables from the environment. The core
// soul package is never aware of this package — it takes its tunables
// (hardening factors, alphas) as constructor parameters — this is purely
// the wiring layer the demo CLI uses.
package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

// Config holds every environment-overridable engine tunable.
type Config struct {
	// AIProvider selects the LLM backend behind internal/llmeval:
	// "g4f", "pollinations", or "fake" (default) for the deterministic
	// in-process evaluator (no network calls).
	AIProvider string `env:"AI_PROVIDER" envDefault:"fake"`

	HistoryAlpha           float64 `env:"SOUL_HISTORY_ALPHA" envDefault:"0.05"`
	ErosionHardeningFactor float64 `env:"SOUL_EROSION_HARDENING_FACTOR" envDefault:"1.1"`
	// TriggerCooldownTurns is decoded but not passed to the soul package;
	// its trigger layer uses the fixed soul.DefaultCooldown.
	TriggerCooldownTurns int `env:"SOUL_TRIGGER_COOLDOWN_TURNS" envDefault:"3"`

	// WorldTickSeconds is a tick interval, in seconds, for
	// internal/worldrunner's Erosion.Tick / Triggers.AdvanceTurn pass.
	// worldrunner.New takes its interval as a parameter and does not read
	// this field itself.
	WorldTickSeconds int `env:"SOUL_WORLD_TICK_SECONDS" envDefault:"5"`

	LLMRateLimitPerMinute int `env:"SOUL_LLM_RATE_PER_MINUTE" envDefault:"6"`
}

// New parses Config from the environment, applying defaults for anything
// unset.
func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
