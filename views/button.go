package views

import "github.com/phanxgames/canopy"

// Button fires OnTap when a touch that began on it ends inside its frame.
// Dragging out of the frame before lifting cancels the tap.
type Button struct {
	// OnTap fires once per completed tap.
	OnTap canopy.Signal

	NormalColor  canopy.Color
	PressedColor canopy.Color

	node    *canopy.Node
	label   *Label
	text    string
	pressed bool
	inside  bool
}

// NewButton creates a button under parent with the given title.
func NewButton(parent *canopy.Node, title string) *Button {
	b := &Button{
		NormalColor:  canopy.ColorLightGray,
		PressedColor: canopy.ColorGray,
		text:         title,
	}
	b.node = parent.UI().NewNode("Button", b)
	parent.AddChild(b.node)
	return b
}

// Setup implements canopy.Setuper.
func (b *Button) Setup(n *canopy.Node) {
	n.Color = b.NormalColor
	n.CornerRadius = 6
	b.label = NewLabel(n, b.text)
	b.label.Node().Place().Background()
	n.EnableTouch()
}

// Touch implements canopy.Toucher.
func (b *Button) Touch(n *canopy.Node, t canopy.Touch) {
	switch t.Phase {
	case canopy.Began:
		b.pressed, b.inside = true, true
	case canopy.Moved:
		b.inside = n.AbsoluteFrame().Contains(t.Position)
	case canopy.Ended:
		tapped := b.pressed && n.AbsoluteFrame().Contains(t.Position)
		b.pressed, b.inside = false, false
		n.Color = b.NormalColor
		if tapped {
			b.OnTap.Trigger(struct{}{})
		}
		return
	case canopy.Cancelled:
		b.pressed, b.inside = false, false
	}
	if b.pressed && b.inside {
		n.Color = b.PressedColor
	} else {
		n.Color = b.NormalColor
	}
}

// Node returns the button's node.
func (b *Button) Node() *canopy.Node {
	return b.node
}

// Label returns the title label.
func (b *Button) Label() *Label {
	return b.label
}

// IsPressed reports whether a touch is currently held inside the button.
func (b *Button) IsPressed() bool {
	return b.pressed && b.inside
}
