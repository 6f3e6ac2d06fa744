package journal

import "testing"

func TestMemoryAppendUndo(t *testing.T) {
	m := NewMemory()
	m.Append("first")
	m.Append("second")
	m.Undo()

	lines := m.Lines()
	if len(lines) != 1 || lines[0] != "first" {
		t.Fatalf("lines = %q, want just the first entry", lines)
	}

	m.Undo()
	m.Undo() // undo on an empty transcript is a no-op
	if got := len(m.Lines()); got != 0 {
		t.Fatalf("lines = %d, want 0", got)
	}
}

func TestMemoryLinesIsACopy(t *testing.T) {
	m := NewMemory()
	m.Append("only")

	lines := m.Lines()
	lines[0] = "mutated"
	if got := m.Lines()[0]; got != "only" {
		t.Fatalf("transcript = %q, want unaffected by caller mutation", got)
	}
}

func TestTeeFansOut(t *testing.T) {
	a, b := NewMemory(), NewMemory()
	tee := NewTee(a, b)

	tee.Append("one")
	tee.Append("two")
	tee.Undo()

	for name, m := range map[string]*Memory{"a": a, "b": b} {
		lines := m.Lines()
		if len(lines) != 1 || lines[0] != "one" {
			t.Fatalf("sink %s lines = %q, want [one]", name, lines)
		}
	}
}
