package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Engine.Mode != EvaluatorRemote {
		t.Errorf("engine.mode = %q", cfg.Engine.Mode)
	}
	if cfg.Trade.AcquisitionDiscount != 0.8 {
		t.Errorf("acquisition_discount = %v", cfg.Trade.AcquisitionDiscount)
	}
	if cfg.Trade.CounterTolerance != 5 {
		t.Errorf("counter_tolerance = %v", cfg.Trade.CounterTolerance)
	}
	if cfg.Trade.SearchDebounce != 300*time.Millisecond {
		t.Errorf("search_debounce = %v", cfg.Trade.SearchDebounce)
	}
	if cfg.Roster.Source != RosterSeed {
		t.Errorf("roster.source = %q", cfg.Roster.Source)
	}
	if !cfg.Trade.AcquisitionDiscountDecimal().Equal(cfg.Trade.AcquisitionDiscountDecimal()) {
		t.Error("decimal accessor not stable")
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
engine:
  mode: local
trade:
  counter_tolerance: 7.5
roster:
  league_cap: 240
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CAP_ACQUISITION_DISCOUNT", "0.75")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Engine.Mode != EvaluatorLocal {
		t.Errorf("engine.mode = %q", cfg.Engine.Mode)
	}
	if cfg.Trade.CounterTolerance != 7.5 {
		t.Errorf("counter_tolerance = %v", cfg.Trade.CounterTolerance)
	}
	if cfg.Trade.AcquisitionDiscount != 0.75 {
		t.Errorf("acquisition_discount = %v", cfg.Trade.AcquisitionDiscount)
	}
	if cfg.Roster.LeagueCap != 240 {
		t.Errorf("league_cap = %v", cfg.Roster.LeagueCap)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Engine: EngineConfig{Mode: EvaluatorRemote, BaseURL: "http://localhost:8000"},
			Trade:  TradeConfig{AcquisitionDiscount: 0.8, CounterTolerance: 5, RestructureYears: 5},
			Roster: RosterConfig{Source: RosterSeed, LeagueCap: 255.4},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown engine mode", func(c *Config) { c.Engine.Mode = "grpc" }, true},
		{"remote without url", func(c *Config) { c.Engine.BaseURL = "" }, true},
		{"local without url", func(c *Config) { c.Engine.Mode = EvaluatorLocal; c.Engine.BaseURL = "" }, false},
		{"postgres without dsn", func(c *Config) { c.Roster.Source = RosterPostgres }, true},
		{"negative discount", func(c *Config) { c.Trade.AcquisitionDiscount = -1 }, true},
		{"zero restructure years", func(c *Config) { c.Trade.RestructureYears = 0 }, true},
		{"zero league cap", func(c *Config) { c.Roster.LeagueCap = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
