package config

import "testing"

func TestNewAppliesDefaultsWhenEnvUnset(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("SOUL_HISTORY_ALPHA", "")
	t.Setenv("SOUL_EROSION_HARDENING_FACTOR", "")
	t.Setenv("SOUL_TRIGGER_COOLDOWN_TURNS", "")
	t.Setenv("SOUL_WORLD_TICK_SECONDS", "")
	t.Setenv("SOUL_LLM_RATE_PER_MINUTE", "")

	cfg, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AIProvider != "fake" {
		t.Errorf("AIProvider = %q, want fake", cfg.AIProvider)
	}
	if cfg.HistoryAlpha != 0.05 {
		t.Errorf("HistoryAlpha = %v, want 0.05", cfg.HistoryAlpha)
	}
	if cfg.ErosionHardeningFactor != 1.1 {
		t.Errorf("ErosionHardeningFactor = %v, want 1.1", cfg.ErosionHardeningFactor)
	}
	if cfg.TriggerCooldownTurns != 3 {
		t.Errorf("TriggerCooldownTurns = %v, want 3", cfg.TriggerCooldownTurns)
	}
	if cfg.WorldTickSeconds != 5 {
		t.Errorf("WorldTickSeconds = %v, want 5", cfg.WorldTickSeconds)
	}
	if cfg.LLMRateLimitPerMinute != 6 {
		t.Errorf("LLMRateLimitPerMinute = %v, want 6", cfg.LLMRateLimitPerMinute)
	}
}

func TestNewReadsOverriddenEnv(t *testing.T) {
	t.Setenv("AI_PROVIDER", "pollinations")
	t.Setenv("SOUL_HISTORY_ALPHA", "0.2")

	cfg, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AIProvider != "pollinations" {
		t.Errorf("AIProvider = %q, want pollinations", cfg.AIProvider)
	}
	if cfg.HistoryAlpha != 0.2 {
		t.Errorf("HistoryAlpha = %v, want 0.2", cfg.HistoryAlpha)
	}
}
