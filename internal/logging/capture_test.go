package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureParsesLogfmt(t *testing.T) {
	b := NewBuffer()
	c := NewCapture(b)

	_, err := c.Write([]byte("level=warn prefix=engine msg=\"slow frame\" update_us=1200\n"))
	require.NoError(t, err)

	entries := b.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, LevelWarn, entries[0].Level)
	assert.Equal(t, "slow frame update_us=1200", entries[0].Message)
}

func TestCaptureJoinsPartialWrites(t *testing.T) {
	b := NewBuffer()
	c := NewCapture(b)

	c.Write([]byte("level=info msg=hel"))
	assert.Zero(t, b.Len())
	c.Write([]byte("lo\nlevel=error msg=boom\n"))

	entries := b.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "hello", entries[0].Message)
	assert.Equal(t, LevelError, entries[1].Level)
}

func TestCaptureNoticePrefix(t *testing.T) {
	b := NewBuffer()
	NewCapture(b).Write([]byte("level=error prefix=NOTICE msg=\"boot ok\"\n"))

	entries := b.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, LevelNotice, entries[0].Level)
}

func TestLoggerTeesIntoBuffer(t *testing.T) {
	var out bytes.Buffer
	logger, buf := New(Options{Output: &out, Level: log.DebugLevel})

	logger.Debug("hidden by buffer level")
	logger.Info("scene entered", "scene", "menu")
	Notice(logger, "Hello from tama")

	assert.Contains(t, out.String(), "scene entered")
	assert.Contains(t, out.String(), "hidden by buffer level")

	entries := buf.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Level: LevelInfo, Message: "scene entered scene=menu"}, entries[0])
	assert.Equal(t, Entry{Level: LevelNotice, Message: "Hello from tama"}, entries[1])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var out bytes.Buffer
	logger, buf := New(Options{Output: &out, Level: log.WarnLevel})

	logger.Info("dropped")
	logger.Warn("kept")

	assert.Equal(t, 1, buf.Len())
	assert.NotContains(t, out.String(), "dropped")
}
