package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/zherujiang/spotlight/internal/config"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l LogLevel) String() string {
	if l < DEBUG || l > FATAL {
		return "INFO"
	}
	return levelNames[l]
}

// ParseLevel maps a LOG_LEVEL value to a level, defaulting to INFO.
func ParseLevel(s string) LogLevel {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return LogLevel(i)
		}
	}
	return INFO
}

type levelStyle struct {
	level, category *color.Color
}

var styles = map[LogLevel]levelStyle{
	DEBUG: {color.New(color.FgCyan), color.New(color.FgCyan, color.Bold)},
	INFO:  {color.New(color.FgGreen), color.New(color.FgGreen, color.Bold)},
	WARN:  {color.New(color.FgYellow), color.New(color.FgYellow, color.Bold)},
	ERROR: {color.New(color.FgRed), color.New(color.FgRed, color.Bold)},
	FATAL: {color.New(color.FgRed, color.Bold), color.New(color.FgRed, color.Bold)},
}

type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
}

// Logger writes colored lines to the terminal and, when a log file is open,
// one JSON object per line to it. It is safe for concurrent use.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	logFile  *os.File
	minLevel LogLevel
}

// NewLogger logs to stdout and, when cfg.Dir is set, to a daily file
// <dir>/<service>-<date>.log.
func NewLogger(cfg config.LogConfig) *Logger {
	logger := New(os.Stdout, ParseLevel(cfg.Level))

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			log.Fatal("Failed to create logs directory:", err)
		}

		timestamp := time.Now().Format("2006-01-02")
		logFileName := filepath.Join(cfg.Dir, fmt.Sprintf("%s-%s.log", cfg.Service, timestamp))

		logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Failed to create log file:", err)
		}
		logger.logFile = logFile
		logger.Info("LOGGER", fmt.Sprintf("Log file: %s", logFileName))
	}

	return logger
}

// New returns a logger writing terminal lines to out and dropping entries
// below minLevel.
func New(out io.Writer, minLevel LogLevel) *Logger {
	return &Logger{out: out, minLevel: minLevel}
}

func (l *Logger) log(level LogLevel, category, message string) {
	if level < l.minLevel {
		return
	}

	// caller of the public method, two frames up
	_, file, line, ok := runtime.Caller(2)
	if ok {
		file = filepath.Base(file)
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Level:     level.String(),
		Category:  strings.ToUpper(category),
		Message:   message,
		File:      file,
		Line:      line,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, formatTerminalOutput(level, entry))
	if l.logFile != nil {
		if jsonBytes, err := json.Marshal(entry); err == nil {
			l.logFile.Write(append(jsonBytes, '\n'))
		}
	}
}

func formatTerminalOutput(level LogLevel, entry LogEntry) string {
	style, ok := styles[level]
	if !ok {
		style = styles[INFO]
	}

	timeStr := color.New(color.FgBlue).Sprint(entry.Timestamp[11:19])
	levelStr := style.level.Sprintf("%-5s", entry.Level)
	categoryStr := style.category.Sprintf("[%-10s]", entry.Category)

	if entry.File != "" && entry.Line > 0 {
		fileInfo := color.New(color.FgMagenta).Sprintf(" (%s:%d)", entry.File, entry.Line)
		return fmt.Sprintf("%s %s %s %s%s\n", timeStr, levelStr, categoryStr, entry.Message, fileInfo)
	}
	return fmt.Sprintf("%s %s %s %s\n", timeStr, levelStr, categoryStr, entry.Message)
}

func (l *Logger) Debug(category, message string) {
	l.log(DEBUG, category, message)
}

func (l *Logger) Info(category, message string) {
	l.log(INFO, category, message)
}

func (l *Logger) Warn(category, message string) {
	l.log(WARN, category, message)
}

func (l *Logger) Error(category, message string) {
	l.log(ERROR, category, message)
}

func (l *Logger) Fatal(category, message string) {
	l.log(FATAL, category, message)
	os.Exit(1)
}

// Specialized logging methods for different components
func (l *Logger) LogBooking(action, entity, message string) {
	l.log(INFO, "BOOKING", fmt.Sprintf("[%s] %s - %s", action, entity, message))
}

func (l *Logger) LogAPI(method, path, status, duration string) {
	l.log(INFO, "API", fmt.Sprintf("%s %s - %s (%s)", method, path, status, duration))
}

func (l *Logger) LogKafka(action, topic, message string) {
	l.log(INFO, "KAFKA", fmt.Sprintf("[%s] %s - %s", action, topic, message))
}

func (l *Logger) LogDatabase(operation, table, message string) {
	l.log(DEBUG, "DATABASE", fmt.Sprintf("[%s] %s - %s", operation, table, message))
}

func (l *Logger) Close() {
	if l.logFile != nil {
		l.Info("LOGGER", "Closing log file")
		l.logFile.Close()
		l.logFile = nil
	}
}
