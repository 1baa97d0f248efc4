package ports

import "go.trai.ch/pack/internal/core/domain"

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Debug logs a message only visible at debug level.
	Debug(msg string)
	// Info logs an informational message.
	Info(msg string)
	// Warn logs a warning message.
	Warn(msg string)
	// Error logs an error together with its cause chain.
	Error(err error)
	// WithFormat returns a logger that prefixes every line with the format name.
	WithFormat(format domain.Format) Logger
	// SetLevel changes the minimum level for this logger and all derived loggers.
	SetLevel(level domain.LogLevel)
}
