// Package logging wires the ambient logger every non-core package uses:
// internal/soul stays dependency-free (it never imports this package),
// but internal/llmeval, internal/worldrunner and cmd/soulcli all log
// through it.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logger that writes color console output to stdout when
// stdout is a terminal, plain JSON otherwise, and always tees to a
// rotating file at logPath.
func New(component, logPath string) zerolog.Logger {
	var console io.Writer
	if isatty.IsTerminal(os.Stdout.Fd()) {
		console = zerolog.ConsoleWriter{Out: colorable.NewColorableStdout(), TimeFormat: time.Kitchen}
	} else {
		console = os.Stdout
	}

	file := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	multi := zerolog.MultiLevelWriter(console, file)
	return zerolog.New(multi).With().Timestamp().Str("component", component).Logger()
}

// Discard is used by tests and any caller that wants the ambient stack
// wired but silent.
func Discard() zerolog.Logger {
	return zerolog.New(io.Discard)
}
