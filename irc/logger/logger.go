// Copyright (c) 2017 Daniel Oaks <daniel@danieloaks.net>
// Copyright (c) 2026 chatfmt contributors
// released under the MIT license

package logger

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the level to log messages at.
type Level int

const (
	LogDebug Level = iota
	LogInfo
	LogWarning
	LogError
)

var (
	// LogLevelNames takes a config name and gives the real log level.
	LogLevelNames = map[string]Level{
		"debug":   LogDebug,
		"info":    LogInfo,
		"warn":    LogWarning,
		"warning": LogWarning,
		"error":   LogError,
	}

	levelDisplayNames = map[Level]string{
		LogDebug:   "debug",
		LogInfo:    "info",
		LogWarning: "warn",
		LogError:   "error",
	}
)

// LoggingConfig represents the configuration of a single logger.
// The fields tagged `yaml:"-"` are filled in from the others when the
// config is loaded.
type LoggingConfig struct {
	Method        string
	MethodStdout  bool     `yaml:"-"`
	MethodStderr  bool     `yaml:"-"`
	MethodFile    bool     `yaml:"-"`
	Filename      string
	TypeString    string   `yaml:"type"`
	Types         []string `yaml:"-"`
	ExcludedTypes []string `yaml:"-"`
	LevelString   string   `yaml:"level"`
	Level         Level    `yaml:"-"`
}

// Manager fans log lines out to the configured loggers.
type Manager struct {
	configMutex sync.RWMutex
	loggers     []singleLogger
	stdioLock   sync.Mutex // stdout and stderr share one lock
	fileLock    sync.Mutex
}

// NewManager returns a Manager for the given (prepared) logging config.
// If a log file can't be opened, the error is returned and no Manager.
func NewManager(config []LoggingConfig) (*Manager, error) {
	manager := new(Manager)
	for _, logConfig := range config {
		sLogger, err := manager.newSingleLogger(logConfig)
		if err != nil {
			manager.Close()
			return nil, err
		}
		manager.loggers = append(manager.loggers, sLogger)
	}
	return manager, nil
}

func (manager *Manager) newSingleLogger(config LoggingConfig) (sLogger singleLogger, err error) {
	sLogger = singleLogger{
		stdout:        config.MethodStdout,
		stderr:        config.MethodStderr,
		level:         config.Level,
		types:         make(map[string]bool, len(config.Types)),
		excludedTypes: make(map[string]bool, len(config.ExcludedTypes)),
		stdioLock:     &manager.stdioLock,
		fileLock:      &manager.fileLock,
	}
	for _, name := range config.Types {
		sLogger.types[name] = true
	}
	for _, name := range config.ExcludedTypes {
		sLogger.excludedTypes[name] = true
	}
	if config.MethodFile {
		file, err := os.OpenFile(config.Filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
		if err != nil {
			return sLogger, fmt.Errorf("Could not open log file %s [%w]", config.Filename, err)
		}
		sLogger.file = file
		sLogger.writer = bufio.NewWriter(file)
	}
	return sLogger, nil
}

// Close flushes and closes any log files. Later calls to Log do nothing.
func (manager *Manager) Close() (err error) {
	manager.configMutex.Lock()
	defer manager.configMutex.Unlock()

	for i := range manager.loggers {
		if closeErr := manager.loggers[i].close(); closeErr != nil {
			err = closeErr
		}
	}
	manager.loggers = nil
	return
}

// Log logs the given message with the given details.
func (manager *Manager) Log(level Level, logType string, messageParts ...string) {
	manager.configMutex.RLock()
	defer manager.configMutex.RUnlock()

	var line []byte
	for i := range manager.loggers {
		sLogger := &manager.loggers[i]
		if !sLogger.wants(level, logType) {
			continue
		}
		if line == nil {
			line = formatLine(level, logType, messageParts)
		}
		sLogger.write(line)
	}
}

// Debug logs the given message as a debug message.
func (manager *Manager) Debug(logType string, messageParts ...string) {
	manager.Log(LogDebug, logType, messageParts...)
}

// Error logs the given message as an error message.
func (manager *Manager) Error(logType string, messageParts ...string) {
	manager.Log(LogError, logType, messageParts...)
}

// formatLine renders `timestamp : level : type : part : part`.
func formatLine(level Level, logType string, messageParts []string) []byte {
	var buf strings.Builder
	// 6 is len("encode"), the longest log type in use
	fmt.Fprintf(&buf, "%s : %-5s : %-6s : ", time.Now().UTC().Format("2006-01-02T15:04:05.000Z"), levelDisplayNames[level], logType)
	buf.WriteString(strings.Join(messageParts, " : "))
	buf.WriteByte('\n')
	return []byte(buf.String())
}

type singleLogger struct {
	stdout, stderr bool
	file           *os.File
	writer         *bufio.Writer

	level         Level
	types         map[string]bool
	excludedTypes map[string]bool

	stdioLock *sync.Mutex
	fileLock  *sync.Mutex
}

func (logger *singleLogger) wants(level Level, logType string) bool {
	if !(logger.stdout || logger.stderr || logger.file != nil) || level < logger.level {
		return false
	}
	return (logger.types["*"] || logger.types[logType]) && !logger.excludedTypes["*"] && !logger.excludedTypes[logType]
}

func (logger *singleLogger) write(line []byte) {
	if logger.stdout || logger.stderr {
		logger.stdioLock.Lock()
		if logger.stdout {
			os.Stdout.Write(line)
		}
		if logger.stderr {
			os.Stderr.Write(line)
		}
		logger.stdioLock.Unlock()
	}
	if logger.file != nil {
		logger.fileLock.Lock()
		logger.writer.Write(line)
		logger.writer.Flush()
		logger.fileLock.Unlock()
	}
}

func (logger *singleLogger) close() error {
	if logger.file == nil {
		return nil
	}
	flushErr := logger.writer.Flush()
	closeErr := logger.file.Close()
	logger.file = nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
