package logger

import "testing"

func TestNew_Development(t *testing.T) {
	log, err := New(true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log == nil {
		t.Fatal("expected a logger")
	}
}

func TestNew_Production(t *testing.T) {
	log, err := New(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log == nil {
		t.Fatal("expected a logger")
	}
}

func TestComponent_NilLogger(t *testing.T) {
	log := Component(nil, "quote")
	if log == nil {
		t.Fatal("expected a nop logger for nil input")
	}
	// Must not panic.
	log.Info("noop")
}
