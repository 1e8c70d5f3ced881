package cogserver

import (
	"strings"

	"github.com/rs/zerolog"
)

// restLogger adapts zerolog to the logger interface of resty
type restLogger struct {
	zerolog.Logger
}

func (l restLogger) Errorf(format string, args ...interface{}) {
	l.Error().Msgf(strings.TrimSpace(format), args...)
}

func (l restLogger) Warnf(format string, args ...interface{}) {
	l.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (l restLogger) Debugf(format string, args ...interface{}) {
	l.Debug().Msgf(strings.TrimSpace(format), args...)
}
