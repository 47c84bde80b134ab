package canopy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation interpolates up to four float64 fields from a start to an end
// value over a fixed duration. Values are clamped and held at the end value;
// callers poll Finished. An animation bound to a node stops as soon as the
// node is destroyed and holds while the node is hidden.
//
// Create one via AnimateFrame, AnimateOrigin, AnimateColor or AnimateValue
// and schedule it with UI.Animate. Advance may also be called directly.
type Animation struct {
	tweens [4]*gween.Tween
	fields [4]*float64
	to     [4]float64
	count  int
	target Ref
	bound  bool
	done   bool
}

// Finished reports whether every field reached its end value, or the bound
// node was destroyed.
func (a *Animation) Finished() bool {
	return a.done
}

// Stop finishes the animation where it is. The UI drops it on the next
// commit.
func (a *Animation) Stop() {
	a.done = true
}

// Advance moves the animation forward by dt seconds and writes the
// interpolated values.
func (a *Animation) Advance(dt float32) {
	if a.done {
		return
	}
	if a.bound && !a.target.Alive() {
		a.done = true
		return
	}
	allDone := true
	for i := 0; i < a.count; i++ {
		val, finished := a.tweens[i].Update(dt)
		if finished {
			// gween interpolates in float32; land on the exact end value.
			*a.fields[i] = a.to[i]
			continue
		}
		*a.fields[i] = float64(val)
		allDone = false
	}
	a.done = allDone
}

func (a *Animation) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	a.tweens[a.count] = gween.New(float32(*field), float32(to), duration, fn)
	a.fields[a.count] = field
	a.to[a.count] = to
	a.count++
}

func newBoundAnimation(n *Node) *Animation {
	return &Animation{target: n.ref, bound: true}
}

// AnimateFrame animates the node's local frame to `to`. While it runs it
// overrides whatever the node's placer rules computed for the frame.
func AnimateFrame(n *Node, to Rect, duration float32, fn ease.TweenFunc) *Animation {
	a := newBoundAnimation(n)
	a.add(&n.Frame.X, to.X, duration, fn)
	a.add(&n.Frame.Y, to.Y, duration, fn)
	a.add(&n.Frame.Width, to.Width, duration, fn)
	a.add(&n.Frame.Height, to.Height, duration, fn)
	return a
}

// AnimateOrigin animates the node's local origin to `to`.
func AnimateOrigin(n *Node, to Point, duration float32, fn ease.TweenFunc) *Animation {
	a := newBoundAnimation(n)
	a.add(&n.Frame.X, to.X, duration, fn)
	a.add(&n.Frame.Y, to.Y, duration, fn)
	return a
}

// AnimateColor animates all four components of the node's color.
func AnimateColor(n *Node, to Color, duration float32, fn ease.TweenFunc) *Animation {
	a := newBoundAnimation(n)
	a.add(&n.Color.R, to.R, duration, fn)
	a.add(&n.Color.G, to.G, duration, fn)
	a.add(&n.Color.B, to.B, duration, fn)
	a.add(&n.Color.A, to.A, duration, fn)
	return a
}

// AnimateValue animates an arbitrary field. If owner is non-nil the
// animation is bound to it.
func AnimateValue(owner *Node, field *float64, to float64, duration float32, fn ease.TweenFunc) *Animation {
	a := &Animation{}
	if owner != nil {
		a.target = owner.ref
		a.bound = true
	}
	a.add(field, to, duration, fn)
	return a
}

// Animate schedules a for commit on every Tick until it finishes.
func (ui *UI) Animate(a *Animation) *Animation {
	ui.animations = append(ui.animations, a)
	return a
}

// Animations returns the number of scheduled, unfinished animations.
func (ui *UI) Animations() int {
	return len(ui.animations)
}

// commitAnimations advances every scheduled animation whose node is visible
// and drops the finished ones.
func (ui *UI) commitAnimations(dt float64) {
	kept := ui.animations[:0]
	for _, a := range ui.animations {
		if a.done {
			continue
		}
		if a.bound {
			n := a.target.Node()
			if n == nil {
				a.done = true
				continue
			}
			if !n.EffectivelyVisible() {
				kept = append(kept, a)
				continue
			}
		}
		a.Advance(float32(dt))
		if !a.done {
			kept = append(kept, a)
		}
	}
	clear(ui.animations[len(kept):])
	ui.animations = kept
}
