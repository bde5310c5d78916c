package palindrome

import (
	"github.com/baditaflorin/go_palindrome/internal/adapters/logger"
	"github.com/baditaflorin/go_palindrome/internal/ports"
)

// createDefaultLogger creates and returns a default logger instance.
func createDefaultLogger() (ports.Logger, error) {
	return logger.NewStdLogger()
}
