package logger

import (
	"go.uber.org/zap"
)

// New builds the process logger. In debug mode it uses the human-readable
// development encoder with stacktraces on errors; otherwise JSON production
// output at info level.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		return cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	}

	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
