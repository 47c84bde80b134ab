package canopy

// DrawCommand describes one visible node for the render collaborator.
// Commands arrive depth-first: a parent before its children, and siblings
// in ascending priority (registration order breaks ties), so later commands
// draw on top.
type DrawCommand struct {
	Node         Ref
	Name         string
	Frame        Rect // absolute
	Color        Color
	Image        ImageHandle
	Paths        []any
	CornerRadius float64
	BorderColor  Color
	Priority     int64
	Depth        int
}

// Renderer receives the draw list once per frame. The slice is reused by the
// next frame; implementations that keep it must copy it.
type Renderer interface {
	Render(cmds []DrawCommand)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(cmds []DrawCommand)

// Render calls f(cmds).
func (f RendererFunc) Render(cmds []DrawCommand) {
	f(cmds)
}

// DrawList returns the draw list produced by the most recent Tick.
func (ui *UI) DrawList() []DrawCommand {
	return ui.drawList
}

// emitDrawList walks the visible tree and appends one command per node.
func (ui *UI) emitDrawList(n *Node, depth int) {
	if !n.Visible {
		return
	}
	if n.laidOutFrame != ui.frame+1 {
		// Revealed after this frame's layout pass.
		ui.layoutSubtree(n)
	}
	ui.drawList = append(ui.drawList, DrawCommand{
		Node:         n.ref,
		Name:         n.Name,
		Frame:        n.absoluteFrame,
		Color:        n.Color,
		Image:        n.Image,
		Paths:        n.Paths,
		CornerRadius: n.CornerRadius,
		BorderColor:  n.BorderColor,
		Priority:     n.Priority,
		Depth:        depth,
	})
	for _, c := range n.drawOrder() {
		ui.emitDrawList(c, depth+1)
	}
}

// drawOrder returns the live children sorted by ascending priority, stable
// on registration order.
func (n *Node) drawOrder() []*Node {
	kids := n.Children()
	sortByPriority(kids)
	return kids
}
