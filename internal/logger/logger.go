// Package logger builds the zerolog logger used by the CLI and adapts it to
// dwolla.Logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	once   sync.Once
	logger *zerolog.Logger
)

// Get returns the process logger, configured from LOG_LEVEL and LOG_FORMAT on
// first use.
func Get() *zerolog.Logger {
	once.Do(func() {
		logger = New(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	})

	return logger
}

// New creates a logger writing to out. An empty or invalid level means info;
// any format other than json writes human readable console lines.
func New(out io.Writer, level, format string) *zerolog.Logger {
	logLevel := zerolog.InfoLevel

	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Invalid log level %q; defaulting to 'info'\n", level)
		} else {
			logLevel = parsed
		}
	}

	writer := out
	if format != FormatJSON {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05", NoColor: !isTerminal(out)}
	}

	built := zerolog.New(writer).Level(logLevel).With().Timestamp().Logger()

	return &built
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}

	info, err := file.Stat()

	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// Adapter exposes a zerolog logger as a dwolla.Logger.
type Adapter struct {
	log *zerolog.Logger
}

var _ dwolla.Logger = (*Adapter)(nil)

// NewAdapter wraps log.
func NewAdapter(log *zerolog.Logger) *Adapter {
	return &Adapter{log: log}
}

// Debug implements dwolla.Logger.
func (a *Adapter) Debug(msg string, fields map[string]interface{}) {
	a.log.Debug().Fields(fields).Msg(msg)
}

// Info implements dwolla.Logger.
func (a *Adapter) Info(msg string, fields map[string]interface{}) {
	a.log.Info().Fields(fields).Msg(msg)
}

// Warn implements dwolla.Logger.
func (a *Adapter) Warn(msg string, fields map[string]interface{}) {
	a.log.Warn().Fields(fields).Msg(msg)
}

// Error implements dwolla.Logger.
func (a *Adapter) Error(msg string, fields map[string]interface{}) {
	a.log.Error().Fields(fields).Msg(msg)
}
