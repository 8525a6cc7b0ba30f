package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

// LogDirName and LogFileName locate the log file under the XDG state dir
const (
	LogDirName  = "wflink"
	LogFileName = "wflink.log"
)

// Options controls how New builds a logger
type Options struct {
	// Verbosity: 0 warn, 1 info, 2 debug, 3+ trace
	Verbosity int

	// Out receives console output. Defaults to os.Stderr.
	Out io.Writer

	NoColor bool

	// LogFile, when set, also appends JSON lines to that path
	LogFile string
}

// New builds the process logger. It is called once at process entry and the
// result is handed to every component. The returned closer releases the log
// file, if one was opened.
func New(opts Options) (zerolog.Logger, func() error) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}

	writers := []io.Writer{consoleWriter}
	closer := func() error { return nil }

	var fileErr error
	if opts.LogFile != "" {
		file, err := setupLogFile(opts.LogFile)
		if err == nil {
			writers = append(writers, file)
			closer = file.Close
		}
		fileErr = err
	}

	logger := zerolog.New(io.MultiWriter(writers...)).
		Level(LevelFor(opts.Verbosity)).
		With().Timestamp().Logger()

	if fileErr != nil {
		logger.Warn().Err(fileErr).Str("path", opts.LogFile).Msg("Failed to create log file, logging to console only")
	}

	// Add caller information for debug and trace levels
	if opts.Verbosity >= 2 {
		logger = logger.With().Caller().Logger()
	}

	logger.Debug().Int("verbosity", opts.Verbosity).Str("logFile", opts.LogFile).Msg("Logger initialized")
	return logger, closer
}

// LevelFor maps a -v count to a zerolog level
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// WithComponent returns a child logger tagged with the component name
func WithComponent(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

// DefaultLogFilePath returns the log file path.
// It respects XDG_STATE_HOME if set, otherwise uses the xdg default.
func DefaultLogFilePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = xdg.StateHome
	}
	return filepath.Join(stateHome, LogDirName, LogFileName)
}

// setupLogFile creates the log file and its parent directories
func setupLogFile(logPath string) (*os.File, error) {
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// LogCommand logs a command execution with its arguments
func LogCommand(logger zerolog.Logger, cmd string, args []string) {
	logger.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Executing command")
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
