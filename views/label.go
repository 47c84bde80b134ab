package views

import "github.com/phanxgames/canopy"

// Text is the draw-path element a Label emits. Renderers print Content
// inside the node's frame.
type Text struct {
	Content string
	Color   canopy.Color
}

// Text returns t.Content.
func (t Text) Text() string {
	return t.Content
}

// Label displays a single string. It has no fill and does not take touches.
type Label struct {
	node *canopy.Node
	text Text
}

// NewLabel creates a label under parent.
func NewLabel(parent *canopy.Node, text string) *Label {
	l := &Label{text: Text{Content: text, Color: canopy.ColorBlack}}
	l.node = parent.UI().NewNode("Label", l)
	l.node.Paths = []any{l.text}
	parent.AddChild(l.node)
	return l
}

// Node returns the label's node.
func (l *Label) Node() *canopy.Node {
	return l.node
}

// Text returns the displayed string.
func (l *Label) Text() string {
	return l.text.Content
}

// SetText replaces the displayed string.
func (l *Label) SetText(s string) {
	l.text.Content = s
	l.sync()
}

// SetTextColor sets the text color.
func (l *Label) SetTextColor(c canopy.Color) {
	l.text.Color = c
	l.sync()
}

func (l *Label) sync() {
	if len(l.node.Paths) == 0 {
		l.node.Paths = []any{l.text}
		return
	}
	l.node.Paths[0] = l.text
}
