package canopy

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// MouseTouchID is the touch id used for the mouse pointer and for injected
// touches that do not name an id.
const MouseTouchID uint64 = 1

// InjectTouches parses a touch script and dispatches each touch in order,
// synchronously. One touch per line:
//
//	x y phase [id]
//
// phase is b, m, e or c (or the full phase name). id defaults to
// MouseTouchID. Blank lines and lines starting with # are skipped. Nothing
// is dispatched if any line fails to parse.
func (ui *UI) InjectTouches(script string) error {
	touches, err := ParseTouches(script)
	if err != nil {
		return err
	}
	for _, t := range touches {
		ui.Inject(t)
	}
	return nil
}

// InjectTap dispatches a Began followed by an Ended at (x, y).
func (ui *UI) InjectTap(x, y float64) {
	for _, t := range tapTouches(Point{X: x, Y: y}) {
		ui.Inject(t)
	}
}

// InjectDrag dispatches a Began at from, steps Moved touches linearly
// interpolated toward to, and an Ended at to.
func (ui *UI) InjectDrag(from, to Point, steps int) {
	for _, t := range dragTouches(from, to, steps) {
		ui.Inject(t)
	}
}

// ParseTouches parses a touch script; see InjectTouches for the format.
func ParseTouches(script string) ([]Touch, error) {
	var out []Touch
	sc := bufio.NewScanner(strings.NewReader(script))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		t, err := parseTouchLine(text)
		if err != nil {
			return nil, fmt.Errorf("touch script line %d: %w", line, err)
		}
		out = append(out, t)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("touch script: %w", err)
	}
	return out, nil
}

func parseTouchLine(text string) (Touch, error) {
	fields := strings.Fields(text)
	if len(fields) < 3 || len(fields) > 4 {
		return Touch{}, fmt.Errorf("want \"x y phase [id]\", got %q", text)
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Touch{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Touch{}, fmt.Errorf("y: %w", err)
	}
	phase, err := ParsePhase(fields[2])
	if err != nil {
		return Touch{}, err
	}
	id := MouseTouchID
	if len(fields) == 4 {
		id, err = strconv.ParseUint(fields[3], 10, 64)
		if err != nil {
			return Touch{}, fmt.Errorf("id: %w", err)
		}
	}
	return Touch{ID: id, Position: Point{X: x, Y: y}, Phase: phase}, nil
}

func tapTouches(p Point) []Touch {
	return []Touch{
		{ID: MouseTouchID, Position: p, Phase: Began},
		{ID: MouseTouchID, Position: p, Phase: Ended},
	}
}

func dragTouches(from, to Point, steps int) []Touch {
	if steps < 0 {
		steps = 0
	}
	out := make([]Touch, 0, steps+2)
	out = append(out, Touch{ID: MouseTouchID, Position: from, Phase: Began})
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		out = append(out, Touch{
			ID:       MouseTouchID,
			Position: Point{X: from.X + (to.X-from.X)*t, Y: from.Y + (to.Y-from.Y)*t},
			Phase:    Moved,
		})
	}
	return append(out, Touch{ID: MouseTouchID, Position: to, Phase: Ended})
}
