package storage

import (
	"fmt"

	"github.com/vovakirdan/tama/internal/input"
)

// flushEvery bounds how many ticks a Recorder buffers before writing.
const flushEvery = 64

// SessionInfo is the replay-relevant setup of a run.
type SessionInfo struct {
	Platform  string
	RootScene string
	Seed      int64
	TickRate  int
	Width     int
	Height    int
}

type pendingEvent struct {
	tick uint64
	seq  int
	ev   input.Event
}

// Recorder appends the raw events of one session. It implements the
// engine's Recorder and Flusher interfaces. Not safe for concurrent use; each
// engine owns its recorder.
type Recorder struct {
	store   *Store
	id      int64
	pending []pendingEvent
	ticks   uint64 // Ticks seen, including empty ones
	dirty   int    // Ticks since the last flush
	ended   bool
}

// StartSession creates a session row and returns its recorder.
func (s *Store) StartSession(info SessionInfo) (*Recorder, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions (platform, root_scene, seed, tick_rate, width, height)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		info.Platform, info.RootScene, info.Seed, info.TickRate, info.Width, info.Height,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot create session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return &Recorder{store: s, id: id}, nil
}

// ID returns the session id.
func (r *Recorder) ID() int64 { return r.id }

// RecordTick buffers the events of one tick. Ticks must arrive in order.
func (r *Recorder) RecordTick(tick uint64, events []input.Event) error {
	if r.ended {
		return fmt.Errorf("storage: session %d already ended", r.id)
	}
	if tick != r.ticks {
		return fmt.Errorf("storage: session %d expected tick %d, got %d", r.id, r.ticks, tick)
	}
	for i, ev := range events {
		r.pending = append(r.pending, pendingEvent{tick: tick, seq: i, ev: ev})
	}
	r.ticks++
	r.dirty++
	if r.dirty >= flushEvery {
		return r.Flush()
	}
	return nil
}

// Flush writes buffered events and the tick count in one transaction.
func (r *Recorder) Flush() error {
	if r.dirty == 0 && len(r.pending) == 0 {
		return nil
	}

	tx, err := r.store.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO input_events (session_id, tick, seq, button, polarity) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range r.pending {
		if _, err := stmt.Exec(r.id, int64(p.tick), p.seq, int(p.ev.Button), int(p.ev.Polarity)); err != nil {
			return fmt.Errorf("storage: cannot save event: %w", err)
		}
	}
	if _, err := tx.Exec("UPDATE sessions SET ticks = ? WHERE id = ?", int64(r.ticks), r.id); err != nil {
		return fmt.Errorf("storage: cannot update session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit events: %w", err)
	}

	r.pending = r.pending[:0]
	r.dirty = 0
	return nil
}

// End flushes and marks the session finished with a reason such as "quit"
// or the fatal error text. Calling End twice is a no-op.
func (r *Recorder) End(reason string) error {
	if r.ended {
		return nil
	}
	if err := r.Flush(); err != nil {
		return err
	}
	r.ended = true
	_, err := r.store.db.Exec(
		"UPDATE sessions SET end_reason = ?, ended_at = CURRENT_TIMESTAMP WHERE id = ?",
		reason, r.id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end session: %w", err)
	}
	return nil
}

// LoadTicks returns the recorded events of a session, one slice per tick.
// Ticks without input are present as nil slices.
func (s *Store) LoadTicks(id int64) (Session, [][]input.Event, error) {
	sess, err := s.Session(id)
	if err != nil {
		return sess, nil, err
	}

	rows, err := s.db.Query(
		`SELECT tick, button, polarity
		 FROM input_events
		 WHERE session_id = ?
		 ORDER BY tick, seq`,
		id,
	)
	if err != nil {
		return sess, nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	ticks := make([][]input.Event, sess.Ticks)
	for rows.Next() {
		var (
			tick             int64
			button, polarity int
		)
		if err := rows.Scan(&tick, &button, &polarity); err != nil {
			return sess, nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if tick < 0 || uint64(tick) >= sess.Ticks {
			return sess, nil, fmt.Errorf("storage: session %d has event at tick %d beyond %d ticks", id, tick, sess.Ticks)
		}
		ticks[tick] = append(ticks[tick], input.Event{
			Button:   input.Button(button),
			Polarity: input.Polarity(polarity),
		})
	}

	if err := rows.Err(); err != nil {
		return sess, nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sess, ticks, nil
}
