package canopy

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTouches(t *testing.T) {
	script := `
# press and drag
10 20 b
15.5 25 m
30 40 e

5 5 began 3
5 5 Cancelled 3
`
	got, err := ParseTouches(script)
	if err != nil {
		t.Fatal(err)
	}
	want := []Touch{
		{ID: MouseTouchID, Position: Point{10, 20}, Phase: Began},
		{ID: MouseTouchID, Position: Point{15.5, 25}, Phase: Moved},
		{ID: MouseTouchID, Position: Point{30, 40}, Phase: Ended},
		{ID: 3, Position: Point{5, 5}, Phase: Began},
		{ID: 3, Position: Point{5, 5}, Phase: Cancelled},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("touches mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTouchesErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		substr string
	}{
		{"too few fields", "10 20", "line 1"},
		{"too many fields", "1 2 b 3 4", "line 1"},
		{"bad x", "# c\nx 20 b", "line 2"},
		{"bad y", "1 y b", "y:"},
		{"bad phase", "1 2 z", "unknown touch phase"},
		{"bad id", "1 2 b -1", "id:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTouches(tt.script)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("error %q should contain %q", err, tt.substr)
			}
		})
	}
}

func TestInjectTouchesAllOrNothing(t *testing.T) {
	ui := newTestUI()
	var log []string
	touchNode(ui.Root(), "a", Rect{0, 0, 100, 100}, &log)
	ui.Tick(0)

	if err := ui.InjectTouches("10 10 b\nbroken"); err == nil {
		t.Fatal("expected parse error")
	}
	if len(log) != 0 {
		t.Errorf("nothing should be dispatched on error, got %v", log)
	}
	if err := ui.InjectTouches("10 10 b\n10 10 e"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a began", "a ended"}, log); diff != "" {
		t.Errorf("delivery mismatch (-want +got):\n%s", diff)
	}
}

func TestInjectTap(t *testing.T) {
	ui := newTestUI()
	var log []string
	touchNode(ui.Root(), "a", Rect{0, 0, 100, 100}, &log)
	ui.Tick(0)
	ui.InjectTap(50, 50)
	if diff := cmp.Diff([]string{"a began", "a ended"}, log); diff != "" {
		t.Errorf("delivery mismatch (-want +got):\n%s", diff)
	}
}

func TestDragTouches(t *testing.T) {
	got := dragTouches(Point{0, 0}, Point{30, 60}, 2)
	want := []Touch{
		{ID: MouseTouchID, Position: Point{0, 0}, Phase: Began},
		{ID: MouseTouchID, Position: Point{10, 20}, Phase: Moved},
		{ID: MouseTouchID, Position: Point{20, 40}, Phase: Moved},
		{ID: MouseTouchID, Position: Point{30, 60}, Phase: Ended},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("drag mismatch (-want +got):\n%s", diff)
	}
	if n := len(dragTouches(Point{}, Point{1, 1}, -5)); n != 2 {
		t.Errorf("negative steps: len = %d, want 2", n)
	}
}

func TestInjectDragCapturedOutside(t *testing.T) {
	ui := newTestUI()
	var log []string
	touchNode(ui.Root(), "a", Rect{0, 0, 100, 100}, &log)
	ui.Tick(0)
	ui.InjectDrag(Point{50, 50}, Point{500, 500}, 1)
	if diff := cmp.Diff([]string{"a began", "a moved", "a ended"}, log); diff != "" {
		t.Errorf("delivery mismatch (-want +got):\n%s", diff)
	}
}
