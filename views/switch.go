package views

import "github.com/phanxgames/canopy"

// Switch is an on/off toggle. A tap flips the node's selection flag and
// fires Changed with the new state.
type Switch struct {
	Changed canopy.Event[bool]

	OffColor  canopy.Color
	OnColor   canopy.Color
	KnobColor canopy.Color

	node *canopy.Node
	knob *canopy.Node
	down bool
}

// NewSwitch creates a switch under parent, initially off.
func NewSwitch(parent *canopy.Node) *Switch {
	s := &Switch{
		OffColor:  canopy.ColorLightGray,
		OnColor:   canopy.ColorGreen,
		KnobColor: canopy.ColorWhite,
	}
	s.node = parent.UI().NewNode("Switch", s)
	parent.AddChild(s.node)
	return s
}

// Setup implements canopy.Setuper.
func (s *Switch) Setup(n *canopy.Node) {
	n.Color = s.OffColor
	n.CornerRadius = 4
	n.OnSelectionChanged = func(on bool) {
		if on {
			n.Color = s.OnColor
		} else {
			n.Color = s.OffColor
		}
		s.Changed.Trigger(on)
	}

	s.knob = n.UI().NewNode("Switch knob", nil)
	s.knob.Color = s.KnobColor
	s.knob.CornerRadius = 4
	n.AddChild(s.knob)
	s.knob.Place().RelativeWidth(0.5).RelativeHeight(1).Top(0).
		Custom("switch knob", func(f canopy.Rect, parent canopy.Size) canopy.Rect {
			if n.IsSelected() {
				f.X = parent.Width - f.Width
			} else {
				f.X = 0
			}
			return f
		})
	n.EnableTouch()
}

// Touch implements canopy.Toucher.
func (s *Switch) Touch(n *canopy.Node, t canopy.Touch) {
	switch t.Phase {
	case canopy.Began:
		s.down = true
	case canopy.Ended:
		if s.down && n.AbsoluteFrame().Contains(t.Position) {
			n.SetSelected(!n.IsSelected())
		}
		s.down = false
	case canopy.Cancelled:
		s.down = false
	}
}

// Node returns the switch's node.
func (s *Switch) Node() *canopy.Node {
	return s.node
}

// IsOn reports the switch state.
func (s *Switch) IsOn() bool {
	return s.node.IsSelected()
}

// SetOn sets the switch state, firing Changed if it differs.
func (s *Switch) SetOn(on bool) {
	s.node.SetSelected(on)
}
