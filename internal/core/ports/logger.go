package ports

import "io"

// Logger is the structured logging sink used throughout the build.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// SetOutput redirects future log records to w.
	SetOutput(w io.Writer)

	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(err error, args ...any)
}
