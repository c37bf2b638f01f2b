package skyflow

import (
	"log"
	"os"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// LogLevel selects what the default SDK logger writes.
type LogLevel int

const (
	// LogLevelError logs failures only. This is the default.
	LogLevelError LogLevel = iota
	// LogLevelWarn adds warnings such as partially failed batches.
	LogLevelWarn
	// LogLevelInfo adds one line per client call.
	LogLevelInfo
	// LogLevelDebug adds one line per sub-request.
	LogLevelDebug
	// LogLevelOff disables the default logger entirely.
	LogLevelOff
)

// logr verbosity of each message class.
const (
	vWarn  = 1
	vInfo  = 2
	vDebug = 3
)

var (
	logLevel  atomic.Int32
	stdLogger = stdr.New(log.New(os.Stderr, "skyflow: ", log.LstdFlags))
)

// SetLogLevel sets the level of the default logger shared by every client
// created without WithLogger.
func SetLogLevel(level LogLevel) {
	logLevel.Store(int32(level))
	switch level {
	case LogLevelWarn:
		stdr.SetVerbosity(vWarn)
	case LogLevelInfo:
		stdr.SetVerbosity(vInfo)
	case LogLevelDebug:
		stdr.SetVerbosity(vDebug)
	case LogLevelError, LogLevelOff:
		stdr.SetVerbosity(0)
	}
}

// GetLogLevel returns the level of the default logger.
func GetLogLevel() LogLevel {
	return LogLevel(logLevel.Load())
}

func defaultLogger() logr.Logger {
	if GetLogLevel() == LogLevelOff {
		return logr.Discard()
	}
	return stdLogger
}

// ParseLogLevel maps "error", "warn", "info", "debug" and "off" to a
// LogLevel. Unknown names yield LogLevelError and false.
func ParseLogLevel(name string) (LogLevel, bool) {
	switch name {
	case "error", "ERROR":
		return LogLevelError, true
	case "warn", "WARN", "warning", "WARNING":
		return LogLevelWarn, true
	case "info", "INFO":
		return LogLevelInfo, true
	case "debug", "DEBUG":
		return LogLevelDebug, true
	case "off", "OFF":
		return LogLevelOff, true
	}
	return LogLevelError, false
}
