package logger

import (
	"os"
	"strconv"
	"strings"
)

// LogConfig holds the logging configuration.
type LogConfig struct {
	Level  string // trace, debug, info, warn, error, fatal
	Format string // json, text
	Output string // file, stdout, both

	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool

	LogPath         string
	AppFile         string
	AuditFile       string
	PerformanceFile string
	ErrorFile       string

	// Comma separated allow lists, empty or "*" allows everything.
	FilterModules     string
	FilterCollections string
	FilterEndpoints   string
	FilterMethods     string
	FilterLogTypes    string

	BufferSize int
}

// DefaultConfig builds the configuration from GO_ENV and LOG_* variables.
func DefaultConfig() *LogConfig {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	config := &LogConfig{
		Level:           "info",
		Format:          "json",
		Output:          "both",
		MaxSize:         100,
		MaxBackups:      7,
		MaxAge:          7,
		Compress:        true,
		LogPath:         "./logs",
		AppFile:         "app.log",
		AuditFile:       "audit.log",
		PerformanceFile: "performance.log",
		ErrorFile:       "error.log",
		BufferSize:      1000,
	}

	if env == "development" {
		config.Level = "debug"
		config.Format = "text"
	}

	overrideString(&config.Level, "LOG_LEVEL", true)
	overrideString(&config.Format, "LOG_FORMAT", true)
	overrideString(&config.Output, "LOG_OUTPUT", true)
	overrideInt(&config.MaxSize, "LOG_MAX_SIZE", 1)
	overrideInt(&config.MaxBackups, "LOG_MAX_BACKUPS", 0)
	overrideInt(&config.MaxAge, "LOG_MAX_AGE", 1)
	overrideInt(&config.BufferSize, "LOG_BUFFER_SIZE", 1)
	if v := os.Getenv("LOG_COMPRESS"); v != "" {
		if compress, err := strconv.ParseBool(v); err == nil {
			config.Compress = compress
		}
	}

	overrideString(&config.LogPath, "LOG_PATH", false)
	overrideString(&config.AppFile, "LOG_APP_FILE", false)
	overrideString(&config.AuditFile, "LOG_AUDIT_FILE", false)
	overrideString(&config.PerformanceFile, "LOG_PERF_FILE", false)
	overrideString(&config.ErrorFile, "LOG_ERROR_FILE", false)

	overrideString(&config.FilterModules, "LOG_FILTER_MODULES", false)
	overrideString(&config.FilterCollections, "LOG_FILTER_COLLECTIONS", false)
	overrideString(&config.FilterEndpoints, "LOG_FILTER_ENDPOINTS", false)
	overrideString(&config.FilterMethods, "LOG_FILTER_METHODS", false)
	overrideString(&config.FilterLogTypes, "LOG_FILTER_LOG_TYPES", false)

	return config
}

func overrideString(dst *string, key string, lower bool) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if lower {
		v = strings.ToLower(v)
	}
	*dst = v
}

func overrideInt(dst *int, key string, min int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil && n >= min {
		*dst = n
	}
}
