package config

import "testing"

func TestLoadBotDefaults(t *testing.T) {
	cfg, err := LoadBot()
	if err != nil {
		t.Fatalf("LoadBot() error = %v", err)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Fatalf("BaseURL = %q, want http://localhost:8080", cfg.BaseURL)
	}
	if cfg.Rounds != 10 {
		t.Fatalf("Rounds = %d, want 10", cfg.Rounds)
	}
}

func TestLoadBotOverrides(t *testing.T) {
	t.Setenv("BASE_URL", "http://127.0.0.1:9000")
	t.Setenv("BOT_NAME", "bot-a")
	t.Setenv("BOT_ROUNDS", "3")

	cfg, err := LoadBot()
	if err != nil {
		t.Fatalf("LoadBot() error = %v", err)
	}
	if cfg.BaseURL != "http://127.0.0.1:9000" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.BotName != "bot-a" || cfg.Rounds != 3 {
		t.Fatalf("unexpected bot config: %+v", cfg)
	}
}
