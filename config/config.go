package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port   string
	Env    string
	DBPath string

	// Workday bounds in hours; the billable-rate denominator is
	// (DayEnd-DayStart)*4 quarter-hours.
	DayStart int
	DayEnd   int

	Export ExportDefaults
}

// ExportDefaults seeds the export options when a request leaves them
// unset.
type ExportDefaults struct {
	GroupByJob bool `yaml:"group_by_job"`
	ShowIndex  bool `yaml:"show_index"`
	ShowTime   bool `yaml:"show_time"`
	ShowJobID  bool `yaml:"show_job_id"`
}

// settingsFile is the optional on-disk settings document. Env vars win
// over anything set here.
type settingsFile struct {
	DayStart int            `yaml:"day_start"`
	DayEnd   int            `yaml:"day_end"`
	Export   ExportDefaults `yaml:"export"`
}

func Load() *Config {
	_ = godotenv.Load()

	settings := loadSettings(GetEnv("SETTINGS_PATH", "./worklog.yml"))

	cfg := &Config{
		Port:     GetEnv("PORT", "3000"),
		Env:      GetEnv("ENV", "development"),
		DBPath:   GetEnv("DB_PATH", "./data/worklog.db"),
		DayStart: getEnvInt("DAY_START", settings.DayStart),
		DayEnd:   getEnvInt("DAY_END", settings.DayEnd),
		Export:   settings.Export,
	}

	if cfg.DayEnd <= cfg.DayStart {
		log.Fatalf("workday end (%d) must be after start (%d)", cfg.DayEnd, cfg.DayStart)
	}

	return cfg
}

func loadSettings(path string) settingsFile {
	// Defaults for a 9-to-5 workday
	settings := settingsFile{
		DayStart: 9,
		DayEnd:   17,
		Export:   ExportDefaults{ShowTime: true},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		log.Printf("ignoring malformed settings file %s: %v", path, err)
	}

	return settings
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
