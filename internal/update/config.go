package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DBPath               string
	LogFile              string
	DesktopNotifications bool
	LeadMinutes          int
	RepeatMinutes        int
	SchedulerBuffer      int
	RolloverPollSeconds  int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:               "dailytrack.db",
		LogFile:              "dailytrack.log",
		DesktopNotifications: true,
		LeadMinutes:          30,
		RepeatMinutes:        2,
		SchedulerBuffer:      64,
		RolloverPollSeconds:  60,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("DAILYTRACK_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("DAILYTRACK_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	if v, ok := getEnvBool("DAILYTRACK_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("DAILYTRACK_LEAD_MINUTES"); ok && v > 0 {
		cfg.LeadMinutes = v
	}
	if v, ok := getEnvInt("DAILYTRACK_REPEAT_MINUTES"); ok && v > 0 {
		cfg.RepeatMinutes = v
	}
	if v, ok := getEnvInt("DAILYTRACK_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvInt("DAILYTRACK_ROLLOVER_POLL_SECONDS"); ok && v > 0 {
		cfg.RolloverPollSeconds = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
