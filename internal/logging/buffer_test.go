package logging

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPushAndIterate(t *testing.T) {
	b := NewBuffer()
	b.Push(LevelInfo, "First message")
	b.Push(LevelWarn, "Second message")

	entries := b.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "First message", entries[0].Message)
	assert.Equal(t, "Second message", entries[1].Message)
	assert.Equal(t, "[W] Second message", entries[1].String())
}

func TestBufferLevelFiltering(t *testing.T) {
	b := NewBuffer()
	b.SetMinLevel(LevelWarn)

	b.Push(LevelInfo, "ignored")
	b.Push(LevelWarn, "kept")
	b.Push(LevelNotice, "notice")

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, LevelWarn, b.MinLevel())
}

func TestBufferDisabled(t *testing.T) {
	b := NewBuffer()
	b.Push(LevelInfo, "before")
	b.SetEnabled(false)
	b.Push(LevelError, "dropped")

	assert.False(t, b.Enabled())
	assert.Equal(t, 1, b.Len())
}

func TestBufferOverflowDropsOldest(t *testing.T) {
	b := NewBuffer()
	for i := 0; i < Capacity+5; i++ {
		b.Push(LevelInfo, fmt.Sprintf("Message %d", i))
	}

	entries := b.Entries()
	require.Len(t, entries, Capacity)
	assert.Equal(t, "Message 5", entries[0].Message)
	assert.Equal(t, fmt.Sprintf("Message %d", Capacity+4), entries[Capacity-1].Message)
}

func TestBufferRecent(t *testing.T) {
	b := NewBuffer()
	assert.Nil(t, b.Recent(3))

	for i := 0; i < 5; i++ {
		b.Push(LevelInfo, fmt.Sprint(i))
	}
	recent := b.Recent(3)
	require.Len(t, recent, 3)
	assert.Equal(t, []string{"2", "3", "4"}, []string{recent[0].Message, recent[1].Message, recent[2].Message})
	assert.Len(t, b.Recent(100), 5)

	b.Clear()
	assert.Zero(t, b.Len())
}

func TestEntryTruncated(t *testing.T) {
	e := NewEntry(LevelInfo, strings.Repeat("é", 200))
	assert.Equal(t, LineMaxLen-1, len([]rune(e.Message)))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		err  bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"fatal", LevelError, false},
		{"notice", LevelNotice, false},
		{"trace", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestBufferConcurrentPush(t *testing.T) {
	b := NewBuffer()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				b.Push(LevelInfo, "x")
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, Capacity, b.Len())
}
