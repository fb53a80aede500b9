package components

import (
	"testing"

	"github.com/bububa/travel-agent/schema"
)

func TestMemoryOverflow(t *testing.T) {
	m := NewMemory(3)
	m.NewTurn()
	for _, txt := range []string{"one", "two", "three", "four"} {
		m.NewMessage(UserRole, schema.NewString(txt))
	}
	if got := m.MessageCount(); got != 3 {
		t.Fatalf("expect 3 messages after overflow, got %d", got)
	}
	history := m.History()
	if history[0].StringifiedContent() != "two" {
		t.Errorf("oldest message not dropped first: %s", history[0].StringifiedContent())
	}
	if history[2].StringifiedContent() != "four" {
		t.Errorf("newest message missing: %s", history[2].StringifiedContent())
	}
}

func TestMemoryDeleteTurn(t *testing.T) {
	m := NewMemory(10)
	m.NewTurn()
	first := m.TurnID()
	m.NewMessage(UserRole, schema.NewString("plan a trip"))
	m.NewMessage(AssistantRole, schema.NewString("sure"))
	m.NewTurn()
	second := m.TurnID()
	m.NewMessage(UserRole, schema.NewString("to milan"))

	if err := m.DeleteTurn(second); err != nil {
		t.Fatalf("DeleteTurn failed: %v", err)
	}
	if got := m.MessageCount(); got != 2 {
		t.Errorf("expect 2 messages left, got %d", got)
	}
	// current turn falls back to the last remaining turn
	if m.TurnID() != first {
		t.Errorf("turn ID = %s, want %s", m.TurnID(), first)
	}
	if err := m.DeleteTurn("missing"); err == nil {
		t.Error("expect error for unknown turn ID")
	}
}

func TestMemoryCopyIsIndependent(t *testing.T) {
	src := NewMemory(10)
	src.NewTurn()
	src.NewMessage(UserRole, schema.NewString("hello"))

	dup := NewMemory(0)
	dup.Copy(src)
	if dup.MessageCount() != 1 || dup.TurnID() != src.TurnID() {
		t.Fatalf("copy incomplete: %d messages, turn %s", dup.MessageCount(), dup.TurnID())
	}
	src.NewMessage(UserRole, schema.NewString("again"))
	if dup.MessageCount() != 1 {
		t.Error("copy must not share history with the source")
	}
}

func TestMemoryReset(t *testing.T) {
	m := NewMemory(10)
	m.NewTurn()
	m.NewMessage(UserRole, schema.NewString("hello"))
	m.Reset()
	if got := m.MessageCount(); got != 0 {
		t.Errorf("expect empty history after reset, got %d", got)
	}
}
