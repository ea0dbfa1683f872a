package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	// Output receives every record; defaults to stderr.
	Output io.Writer
	// Level is the logger level.
	Level log.Level
	// Prefix is shown on every record.
	Prefix string
	// Timestamps enables the time field.
	Timestamps bool
	// Buffer receives a copy of each record; a fresh one is made when nil.
	Buffer *Buffer
}

// New creates a logfmt logger that tees into a ring buffer.
func New(opts Options) (*log.Logger, *Buffer) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	buf := opts.Buffer
	if buf == nil {
		buf = NewBuffer()
	}

	logger := log.NewWithOptions(io.MultiWriter(out, NewCapture(buf)), log.Options{
		ReportTimestamp: opts.Timestamps,
		Prefix:          opts.Prefix,
		Level:           opts.Level,
		Formatter:       log.LogfmtFormatter,
	})
	return logger, buf
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Notice logs msg so that it is captured at LevelNotice regardless of the
// buffer's minimum level.
func Notice(logger *log.Logger, msg string, keyvals ...interface{}) {
	if logger == nil {
		return
	}
	logger.WithPrefix(NoticePrefix).Error(msg, keyvals...)
}
