package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger represents a file logger for screening and simulation runs
type Logger struct {
	runName string
	logFile *os.File
	logger  *log.Logger
	mu      sync.Mutex
	logDir  string
}

// LogLevel represents different types of log entries
type LogLevel string

const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARN"
	LogLevelError   LogLevel = "ERROR"
	LogLevelTrade   LogLevel = "TRADE"
	LogLevelScreen  LogLevel = "SCREEN"
)

// NewLogger creates a new file logger for the given run name, e.g.
// "screening" or a strategy preset name.
func NewLogger(runName string) (*Logger, error) {
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s_%s.log", runName, timestamp)
	logPath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &Logger{
		runName: runName,
		logFile: file,
		logger:  log.New(file, "", 0),
		logDir:  logDir,
	}

	l.writeSessionHeader()

	return l, nil
}

// writeSessionHeader writes a session start header to the log
func (l *Logger) writeSessionHeader() {
	l.mu.Lock()
	defer l.mu.Unlock()

	header := fmt.Sprintf(`
================================================================================
🚀 RUN STARTED: %s
================================================================================
Started: %s
Log File: %s_%s.log
================================================================================
`, l.runName, time.Now().Format("2006-01-02 15:04:05"),
		l.runName, time.Now().Format("2006-01-02"))

	l.logger.Print(header)
}

// Log writes a formatted log entry with the specified level
func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	l.logger.Println(fmt.Sprintf("[%s] [%s] %s", timestamp, level, message))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(LogLevelInfo, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(LogLevelWarning, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(LogLevelError, format, args...)
}

// Trade logs a simulated trade action
func (l *Logger) Trade(format string, args ...interface{}) {
	l.Log(LogLevelTrade, format, args...)
}

// Screen logs a screening milestone
func (l *Logger) Screen(format string, args ...interface{}) {
	l.Log(LogLevelScreen, format, args...)
}

// LogEntry logs an opened position
func (l *Logger) LogEntry(symbol, side string, quantity, entryPrice, stop, target float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")

	entryLog := fmt.Sprintf(`
[%s] [TRADE] ==================== POSITION OPENED ====================
✅ Symbol: %s (%s)
📦 Quantity: %.0f
💰 Entry Price: $%.2f
🛑 Stop: $%.2f
🎯 Target: $%.2f
=============================================================`,
		timestamp, symbol, side, quantity, entryPrice, stop, target)

	l.logger.Println(entryLog)
}

// LogExit logs a closed position
func (l *Logger) LogExit(symbol, reason string, exitPrice, realizedPnL float64, holdingDays int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")

	exitLog := fmt.Sprintf(`
[%s] [TRADE] ==================== POSITION CLOSED ====================
🚪 Symbol: %s
📊 Exit Price: $%.2f | Reason: %s
💹 Realized P&L: $%.2f
⏱️ Holding Days: %d
=============================================================`,
		timestamp, symbol, exitPrice, reason, realizedPnL, holdingDays)

	l.logger.Println(exitLog)
}

// LogScreeningSummary logs the outcome of one screening run
func (l *Logger) LogScreeningSummary(benchmark string, processed, skipped, qualifying int, elapsed time.Duration) {
	l.Screen("Screening vs %s complete - Processed: %d, Skipped: %d, Qualifying: %d, Elapsed: %s",
		benchmark, processed, skipped, qualifying, elapsed.Round(time.Millisecond))
}

// LogError logs error with context
func (l *Logger) LogError(context string, err error) {
	l.Error("%s: %v", context, err)
}

// Close closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile != nil {
		timestamp := time.Now().Format("2006-01-02 15:04:05")
		footer := fmt.Sprintf(`
================================================================================
🛑 RUN ENDED: %s
================================================================================
Ended: %s
================================================================================

`, l.runName, timestamp)
		l.logger.Print(footer)

		return l.logFile.Close()
	}
	return nil
}

// GetLogPath returns the current log file path
func (l *Logger) GetLogPath() string {
	timestamp := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s_%s.log", l.runName, timestamp)
	return filepath.Join(l.logDir, filename)
}
