package planar

import (
	"github.com/akmonengine/planar/internal/logging"
	"go.uber.org/zap"
)

// SetLogger installs the logger used by every planar package. nil silences them again.
func SetLogger(l *zap.Logger) {
	logging.Set(l)
}

// NewLogger builds a JSON logger writing to stderr at the given level ("debug", "info", "warn", "error").
func NewLogger(level string) (*zap.Logger, error) {
	return logging.New(level)
}
