package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	loggers   = make(map[string]*logrus.Logger)
	hooks     []*AsyncHook
	loggersMu sync.Mutex

	config *LogConfig

	// rootDir is the project root that relative log paths resolve against
	rootDir string
)

// Init sets up logging. A nil cfg uses DefaultConfig.
func Init(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	config = cfg

	if err := initRootDir(); err != nil {
		return fmt.Errorf("failed to initialize root directory: %w", err)
	}

	if config.Output == "file" || config.Output == "both" {
		if err := os.MkdirAll(getLogPath(), 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
	}
	return nil
}

// initRootDir resolves LOG_ROOT_DIR first, then walks up from the working
// directory until a logs or config directory is found.
func initRootDir() error {
	if rootDir != "" {
		return nil
	}

	if envRootDir := os.Getenv("LOG_ROOT_DIR"); envRootDir != "" {
		if resolved, err := filepath.EvalSymlinks(envRootDir); err == nil {
			rootDir = resolved
		} else {
			rootDir = envRootDir
		}
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("could not get working directory: %v", err)
	}

	currentDir := wd
	for i := 0; i < 5; i++ {
		for _, marker := range []string{"logs", "config"} {
			if _, err := os.Stat(filepath.Join(currentDir, marker)); err == nil {
				rootDir = currentDir
				return nil
			}
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	rootDir = wd
	return nil
}

func getLogPath() string {
	if filepath.IsAbs(config.LogPath) {
		return config.LogPath
	}
	return filepath.Join(rootDir, config.LogPath)
}

// GetLogger returns the named logger (app, audit, performance, error), creating it on first use.
func GetLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if config == nil {
		if err := Init(nil); err != nil {
			panic(fmt.Sprintf("Failed to initialize logger: %v", err))
		}
	}

	if logger, ok := loggers[name]; ok {
		return logger
	}

	logger := createLogger(name)
	loggers[name] = logger
	return logger
}

func createLogger(name string) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if config.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "function",
				logrus.FieldKeyFile:  "file",
			},
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				s := strings.Split(f.Function, ".")
				return s[len(s)-1], fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
			},
		})
	}

	// Every writer sits behind the async hook so slow file I/O never blocks a request.
	var writers []io.Writer
	if config.Output == "file" || config.Output == "both" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   getLogFilePath(name),
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}
	if config.Output == "stdout" || config.Output == "both" {
		writers = append(writers, os.Stdout)
	}

	// filter must run before entries are queued
	logger.AddHook(NewFilterHook(config))

	logger.SetOutput(io.Discard)
	if len(writers) > 0 {
		hook := NewAsyncHookWithWriters(writers, config.BufferSize)
		hooks = append(hooks, hook)
		logger.AddHook(hook)
	}

	logger.SetReportCaller(true)

	logger.WithFields(logrus.Fields{
		"logger": name,
		"level":  logger.GetLevel().String(),
		"format": config.Format,
		"output": config.Output,
	}).Debug("Logger initialized")

	return logger
}

func getLogFilePath(name string) string {
	var filename string
	switch name {
	case "app":
		filename = config.AppFile
	case "audit":
		filename = config.AuditFile
	case "performance":
		filename = config.PerformanceFile
	case "error":
		filename = config.ErrorFile
	default:
		filename = fmt.Sprintf("%s.log", name)
	}
	return filepath.Join(getLogPath(), filename)
}

// Close flushes every async hook. Loggers keep working afterwards by writing synchronously.
func Close() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, h := range hooks {
		_ = h.Close()
	}
}

func GetAppLogger() *logrus.Logger {
	return GetLogger("app")
}

func GetAuditLogger() *logrus.Logger {
	return GetLogger("audit")
}

func GetPerformanceLogger() *logrus.Logger {
	return GetLogger("performance")
}

func GetErrorLogger() *logrus.Logger {
	return GetLogger("error")
}
