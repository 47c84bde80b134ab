package canopy

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEventTriggerOrder(t *testing.T) {
	ui := newTestUI()
	a := addNode(ui.Root(), "a")
	b := addNode(ui.Root(), "b")

	var e Event[int]
	var got []string
	e.Subscribe(a, func(v int) { got = append(got, "a") })
	e.Subscribe(b, func(v int) { got = append(got, "b") })
	e.Subscribe(nil, func(v int) { got = append(got, "free") })
	e.Trigger(1)

	if diff := cmp.Diff([]string{"a", "b", "free"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestEventDeadSubscriberPruned(t *testing.T) {
	ui := newTestUI()
	n := addNode(ui.Root(), "n")
	keep := addNode(ui.Root(), "keep")

	var e Event[string]
	called := 0
	e.Subscribe(n, func(string) { called++ })
	e.Subscribe(keep, func(string) {})
	if e.Len() != 2 {
		t.Fatalf("Len = %d, want 2", e.Len())
	}

	n.RemoveFromParent()
	e.Trigger("x")
	if called != 0 {
		t.Errorf("callback of destroyed owner ran %d times", called)
	}
	if e.Len() != 1 {
		t.Errorf("Len after trigger = %d, want 1", e.Len())
	}
}

func TestEventSubtreeTeardownUnsubscribes(t *testing.T) {
	ui := newTestUI()
	parent := addNode(ui.Root(), "parent")
	child := addNode(parent, "child")
	grandchild := addNode(child, "grandchild")

	var e Event[int]
	var s Signal
	e.Subscribe(child, func(int) {})
	e.Subscribe(grandchild, func(int) {})
	s.Sub(grandchild, func() {})
	s.Sub(nil, func() {})

	parent.RemoveFromParent()
	// Teardown removes the entries eagerly, before any Trigger.
	if e.Len() != 0 {
		t.Errorf("Event Len = %d, want 0", e.Len())
	}
	if s.Len() != 1 {
		t.Errorf("Signal Len = %d, want 1", s.Len())
	}
}

func TestEventCancel(t *testing.T) {
	var e Event[int]
	called := 0
	sub := e.Subscribe(nil, func(int) { called++ })
	sub.Cancel()
	sub.Cancel()
	e.Trigger(1)
	if called != 0 || e.Len() != 0 {
		t.Errorf("called = %d, Len = %d; want 0, 0", called, e.Len())
	}
	Subscription{}.Cancel() // zero value is safe
}

func TestEventReentrancy(t *testing.T) {
	ui := newTestUI()
	victim := addNode(ui.Root(), "victim")

	var e Event[int]
	var got []string
	e.Subscribe(nil, func(v int) {
		got = append(got, "first")
		victim.RemoveFromParent()
		e.Subscribe(nil, func(int) { got = append(got, "late") })
	})
	e.Subscribe(victim, func(int) { got = append(got, "victim") })

	e.Trigger(1)
	if diff := cmp.Diff([]string{"first"}, got); diff != "" {
		t.Errorf("first trigger mismatch (-want +got):\n%s", diff)
	}
	got = nil
	e.Trigger(2)
	if diff := cmp.Diff([]string{"first", "late"}, got); diff != "" {
		t.Errorf("second trigger mismatch (-want +got):\n%s", diff)
	}
}

func TestEventPanicIsolated(t *testing.T) {
	var buf bytes.Buffer
	ui := newLoggedUI(&buf)
	n := addNode(ui.Root(), "faulty")

	var e Event[int]
	after := false
	e.Subscribe(n, func(int) { panic("boom") })
	e.Subscribe(nil, func(int) { after = true })
	e.Trigger(1)

	if !after {
		t.Error("subscriber after a panicking one should still run")
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("panic should be logged, got: %s", buf.String())
	}
}

func TestEventUnownedPanicUsesUILogger(t *testing.T) {
	var buf bytes.Buffer
	ui := newLoggedUI(&buf)
	ui.Unhandled.Subscribe(nil, func(Touch) { panic("unowned unhandled") })
	ui.InjectTap(5, 5)
	if !strings.Contains(buf.String(), "unowned unhandled") {
		t.Errorf("panic should reach the UI logger, got: %s", buf.String())
	}

	// A bus adopts the logger of the first UI whose node subscribes.
	buf.Reset()
	var e Signal
	e.Sub(ui.Root(), func() {})
	e.Sub(nil, func() { panic("unowned signal") })
	e.Trigger(struct{}{})
	if !strings.Contains(buf.String(), "unowned signal") {
		t.Errorf("panic should reach the UI logger, got: %s", buf.String())
	}
}

func TestEventSubscribeDestroyedOwner(t *testing.T) {
	ui := newTestUI()
	n := ui.NewNode("n", nil)
	n.Dispose()

	var e Event[int]
	e.Subscribe(n, func(int) {})
	if e.Len() != 0 {
		t.Errorf("Len = %d, want 0", e.Len())
	}

	dbg := newTestUI(WithDebug(true))
	m := dbg.NewNode("m", nil)
	m.Dispose()
	expectAssertion(t, "destroyed", func() { e.Subscribe(m, func(int) {}) })
}

func TestKeyboardEvent(t *testing.T) {
	ui := newTestUI()
	var got []KeyEvent
	ui.Keyboard.Subscribe(ui.Root(), func(k KeyEvent) { got = append(got, k) })
	ui.KeyPress(KeyEvent{Char: 'a'})
	ui.KeyPress(KeyEvent{Code: KeyEnter})
	want := []KeyEvent{{Char: 'a'}, {Code: KeyEnter}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}
