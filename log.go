//go:build darwin || freebsd || linux

package managedfd

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the package's logger, which currently only reports
// handles reclaimed by the garbage collector while still holding their
// descriptor. It must be called before any handles are created.
func SetLogger(l *zap.Logger) {
	logger = l
}

func leakWarn(kind string, fd int) {
	Logger().Warn("file descriptor handle leaked, closed by finalizer",
		zap.String("kind", kind),
		zap.Int("fd", fd),
	)
}
