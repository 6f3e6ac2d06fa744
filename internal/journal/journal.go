// Package journal is the append-only event transcript shared by every
// corporation in a game session. Undo exists solely so a superseded price
// move can drop its entry before the combined move is logged.
package journal

import "sync"

// Sink receives human-readable game events.
type Sink interface {
	Append(line string)
	Undo()
}

// Memory keeps the transcript in order, in memory. Safe for concurrent use.
type Memory struct {
	mu    sync.Mutex
	lines []string
}

// NewMemory returns an empty in-memory transcript.
func NewMemory() *Memory {
	return &Memory{}
}

// Append adds a line to the end of the transcript.
func (m *Memory) Append(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, line)
}

// Undo removes the most recent line. No-op on an empty transcript.
func (m *Memory) Undo() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.lines) > 0 {
		m.lines = m.lines[:len(m.lines)-1]
	}
}

// Lines returns a copy of the transcript.
func (m *Memory) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}

// Tee fans every event out to multiple sinks.
type Tee struct {
	sinks []Sink
}

// NewTee combines sinks into one.
func NewTee(sinks ...Sink) *Tee {
	return &Tee{sinks: sinks}
}

// Append forwards the line to every sink.
func (t *Tee) Append(line string) {
	for _, s := range t.sinks {
		s.Append(line)
	}
}

// Undo forwards the removal to every sink.
func (t *Tee) Undo() {
	for _, s := range t.sinks {
		s.Undo()
	}
}
