package logging

import (
	"bytes"
	"strings"
	"sync"

	"github.com/go-logfmt/logfmt"
)

// NoticePrefix marks a record as a notice. See Notice.
const NoticePrefix = "NOTICE"

// Capture is an io.Writer that parses logfmt records written by the logger
// and pushes them into a Buffer. Partial writes are held until a newline.
type Capture struct {
	mu      sync.Mutex
	buf     *Buffer
	pending []byte
}

// NewCapture creates a capture writer feeding buf.
func NewCapture(buf *Buffer) *Capture {
	return &Capture{buf: buf}
}

// Write implements io.Writer. It never fails, so a broken record cannot stop
// the console output it is teed with.
func (c *Capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = append(c.pending, p...)
	for {
		i := bytes.IndexByte(c.pending, '\n')
		if i < 0 {
			break
		}
		line := c.pending[:i]
		if len(bytes.TrimSpace(line)) > 0 {
			c.buf.PushEntry(parseRecord(line))
		}
		c.pending = c.pending[i+1:]
	}
	if len(c.pending) == 0 {
		c.pending = nil
	}
	return len(p), nil
}

// parseRecord turns one logfmt line into an entry. Fields other than the
// timestamp, level, prefix and message are appended as key=value.
func parseRecord(line []byte) Entry {
	var (
		level  = LevelInfo
		msg    string
		prefix string
		extra  []string
	)

	dec := logfmt.NewDecoder(bytes.NewReader(line))
	for dec.ScanRecord() {
		for dec.ScanKeyval() {
			key, val := string(dec.Key()), string(dec.Value())
			switch key {
			case "time", "ts":
			case "level":
				if l, err := ParseLevel(val); err == nil {
					level = l
				}
			case "prefix":
				prefix = strings.TrimSuffix(val, ":")
			case "msg":
				msg = val
			default:
				extra = append(extra, key+"="+val)
			}
		}
	}
	if dec.Err() != nil && msg == "" {
		return NewEntry(LevelInfo, string(line))
	}

	if prefix == NoticePrefix {
		level = LevelNotice
	}
	if len(extra) > 0 {
		msg = strings.TrimSpace(msg + " " + strings.Join(extra, " "))
	}
	return NewEntry(level, msg)
}
