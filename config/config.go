package config

import (
	"os"
	"strconv"
)

type ConfigStruct struct {
	Options  Options
	Catalog  CatalogConfig
	Playback PlaybackConfig
	Sentry   SentryConfig
}

type Options struct {
	Port               string
	LogLevel           string
	EventBufferSize    int
	SessionIdleMinutes int
}

type CatalogConfig struct {
	SeedDBPath string
}

type PlaybackConfig struct {
	OpenCommand string
}

type SentryConfig struct {
	DSN string
}

func (s *SentryConfig) IsEnabled() bool {
	return s.DSN != ""
}

func (c *CatalogConfig) HasSeedDB() bool {
	return c.SeedDBPath != ""
}

var Config *ConfigStruct

func NewConfig() {
	config := &ConfigStruct{
		Options: Options{
			Port:               os.Getenv("PORT"),
			LogLevel:           os.Getenv("LOG_LEVEL"),
			EventBufferSize:    getEventBufferSize(),
			SessionIdleMinutes: getSessionIdleMinutes(),
		},
		Catalog: CatalogConfig{
			SeedDBPath: os.Getenv("SEED_DB_PATH"),
		},
		Playback: PlaybackConfig{
			OpenCommand: getOpenCommand(),
		},
		Sentry: SentryConfig{
			DSN: os.Getenv("SENTRY_DSN"),
		},
	}

	Config = config
}

func getEventBufferSize() int {
	sizeStr := os.Getenv("EVENT_BUFFER_SIZE")
	if sizeStr == "" {
		return 100
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil || size <= 0 {
		return 100
	}
	if size > 1000 {
		return 1000 // Cap to keep per-session memory bounded
	}
	return size
}

func getSessionIdleMinutes() int {
	timeoutStr := os.Getenv("SESSION_IDLE_MINUTES")
	if timeoutStr == "" {
		return 30
	}
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil || timeout <= 0 {
		return 30
	}
	return timeout
}

func getOpenCommand() string {
	cmd := os.Getenv("OPEN_COMMAND")
	if cmd == "" {
		return "xdg-open"
	}
	return cmd
}
