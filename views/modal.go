package views

import "github.com/phanxgames/canopy"

// ModalPriority keeps modals above regular content in draw order.
const ModalPriority int64 = 1 << 20

// Modal is a full-screen overlay with a centered panel holding a title and
// an OK button. While open it owns the topmost touch layer, so views below
// it receive no new touches.
type Modal struct {
	// Closed fires once, right before the modal is destroyed.
	Closed canopy.Signal

	node   *canopy.Node
	panel  *canopy.Node
	title  *Label
	ok     *Button
	layer  *canopy.TouchLayer
	text   string
	closed bool
}

// NewModal creates a modal on ui's root and opens it.
func NewModal(ui *canopy.UI, title string) *Modal {
	m := &Modal{text: title}
	m.node = ui.NewNode("Modal: "+title, m)
	m.node.Priority = ModalPriority
	m.node.Color = canopy.ColorBlack.WithAlpha(0.4)
	ui.Root().AddChild(m.node)
	return m
}

// Setup implements canopy.Setuper.
func (m *Modal) Setup(n *canopy.Node) {
	ui := n.UI()
	m.layer = ui.Touches().PushLayer(n.Name)
	n.Place().Background()
	// The backdrop swallows touches outside the panel.
	n.EnableTouch()
	n.TouchPriorityLow = true

	m.panel = ui.NewNode("Modal panel", nil)
	m.panel.Color = canopy.ColorWhite
	m.panel.CornerRadius = 8
	n.AddChild(m.panel)
	m.panel.Place().RelativeWidth(0.6).RelativeHeight(0.4).Center()

	m.title = NewLabel(m.panel, m.text)
	m.title.Node().Place().Height(24).Top(10).Left(10).Right(10)

	m.ok = NewButton(m.panel, "OK")
	m.ok.Node().Place().Size(80, 32).CenterX().Bottom(10)
	m.ok.OnTap.Sub(n, m.Close)
}

// Teardown implements canopy.Teardowner.
func (m *Modal) Teardown(n *canopy.Node) {
	if m.layer != nil {
		n.UI().Touches().RemoveLayer(m.layer)
		m.layer = nil
	}
}

// Close fires Closed, removes the modal's touch layer and destroys it.
// Safe to call more than once.
func (m *Modal) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.Closed.Trigger(struct{}{})
	m.node.RemoveFromParent()
}

// IsOpen reports whether the modal is still on screen.
func (m *Modal) IsOpen() bool {
	return !m.closed && !m.node.IsDisposed()
}

// Node returns the backdrop node.
func (m *Modal) Node() *canopy.Node {
	return m.node
}

// Panel returns the centered panel node; add extra content here.
func (m *Modal) Panel() *canopy.Node {
	return m.panel
}

// Title returns the title label.
func (m *Modal) Title() *Label {
	return m.title
}

// OK returns the close button.
func (m *Modal) OK() *Button {
	return m.ok
}

// Layer returns the modal's touch layer, or nil once closed.
func (m *Modal) Layer() *canopy.TouchLayer {
	return m.layer
}
