package update

import "testing"

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.LeadMinutes != 30 || cfg.RepeatMinutes != 2 {
		t.Fatalf("unexpected reminder defaults: %+v", cfg)
	}
	if cfg.SchedulerBuffer != 64 || cfg.RolloverPollSeconds != 60 {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if cfg.DBPath != "dailytrack.db" || cfg.LogFile != "dailytrack.log" {
		t.Fatalf("unexpected path defaults: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("DAILYTRACK_DB_PATH", "data/tracker.db")
	t.Setenv("DAILYTRACK_LOG_FILE", "data/tracker.log")
	t.Setenv("DAILYTRACK_DESKTOP_NOTIFICATIONS", "off")
	t.Setenv("DAILYTRACK_LEAD_MINUTES", "15")
	t.Setenv("DAILYTRACK_REPEAT_MINUTES", "5")
	t.Setenv("DAILYTRACK_SCHEDULER_BUFFER", "128")
	t.Setenv("DAILYTRACK_ROLLOVER_POLL_SECONDS", "30")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DesktopNotifications {
		t.Fatal("expected desktop notifications disabled from env")
	}
	if cfg.LeadMinutes != 15 || cfg.RepeatMinutes != 5 {
		t.Fatalf("unexpected reminder config: %+v", cfg)
	}
	if cfg.SchedulerBuffer != 128 || cfg.RolloverPollSeconds != 30 {
		t.Fatalf("unexpected runtime overrides: %+v", cfg)
	}
	if cfg.DBPath != "data/tracker.db" || cfg.LogFile != "data/tracker.log" {
		t.Fatalf("unexpected path overrides: %+v", cfg)
	}
}

func TestRuntimeConfigIgnoresInvalidEnv(t *testing.T) {
	t.Setenv("DAILYTRACK_LEAD_MINUTES", "soon")
	t.Setenv("DAILYTRACK_DESKTOP_NOTIFICATIONS", "maybe")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.LeadMinutes != 30 {
		t.Fatalf("expected default lead minutes kept, got %d", cfg.LeadMinutes)
	}
	if !cfg.DesktopNotifications {
		t.Fatal("expected default desktop notifications kept")
	}
}
