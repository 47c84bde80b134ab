package canopy

// Placer computes a node's frame from an ordered list of anchor rules.
// Rules run in the order they were attached and each writes only the fields
// it governs. When two rules write the same field the later one wins; the
// caller is responsible for coherent rule order.
//
// Rules that reference other nodes read those nodes' frames as they are at
// the moment the rule runs. Siblings are placed in registration order by
// default, so a rule referencing a later sibling sees that sibling's frame
// from the previous frame (see LayoutOrder).
type Placer struct {
	node  *Node
	rules []rule
}

type rule struct {
	name  string
	refs  []Ref
	apply func(c *placeCtx)
}

// Place returns the node's placer, creating it on first use.
func (n *Node) Place() *Placer {
	if n.place == nil {
		n.place = &Placer{node: n}
	}
	return n.place
}

// Len returns the number of attached rules.
func (p *Placer) Len() int {
	return len(p.rules)
}

// Clear removes every rule.
func (p *Placer) Clear() *Placer {
	p.rules = p.rules[:0]
	return p
}

func (p *Placer) add(name string, apply func(c *placeCtx), refs ...*Node) *Placer {
	r := rule{name: name, apply: apply}
	for _, n := range refs {
		if n == nil || n.disposed {
			p.node.ui.structural("placer: rule %q on %q references a destroyed node", name, p.node.Name)
			return p
		}
		r.refs = append(r.refs, n.ref)
	}
	p.rules = append(p.rules, r)
	return p
}

// --- Edges ---

// Top pins the top edge offset points below the parent's top edge.
func (p *Placer) Top(offset float64) *Placer {
	return p.add("top", func(c *placeCtx) { c.setEdge(Vertical, true, offset) })
}

// Bottom pins the bottom edge offset points above the parent's bottom edge.
func (p *Placer) Bottom(offset float64) *Placer {
	return p.add("bottom", func(c *placeCtx) { c.setEdge(Vertical, false, c.super.Height-offset) })
}

// Left pins the left edge offset points right of the parent's left edge.
func (p *Placer) Left(offset float64) *Placer {
	return p.add("left", func(c *placeCtx) { c.setEdge(Horizontal, true, offset) })
}

// Right pins the right edge offset points left of the parent's right edge.
func (p *Placer) Right(offset float64) *Placer {
	return p.add("right", func(c *placeCtx) { c.setEdge(Horizontal, false, c.super.Width-offset) })
}

// Edge pins the given edge; see Top, Bottom, Left and Right.
func (p *Placer) Edge(a Anchor, offset float64) *Placer {
	switch a {
	case AnchorTop:
		return p.Top(offset)
	case AnchorBottom:
		return p.Bottom(offset)
	case AnchorLeft:
		return p.Left(offset)
	default:
		return p.Right(offset)
	}
}

// TL pins the top-left corner with the same margin on both edges.
func (p *Placer) TL(margin float64) *Placer { return p.Top(margin).Left(margin) }

// TR pins the top-right corner.
func (p *Placer) TR(margin float64) *Placer { return p.Top(margin).Right(margin) }

// BL pins the bottom-left corner.
func (p *Placer) BL(margin float64) *Placer { return p.Bottom(margin).Left(margin) }

// BR pins the bottom-right corner.
func (p *Placer) BR(margin float64) *Placer { return p.Bottom(margin).Right(margin) }

// --- Sizes ---

// Size sets an explicit width and height.
func (p *Placer) Size(width, height float64) *Placer {
	return p.Width(width).Height(height)
}

// Width sets an explicit width.
func (p *Placer) Width(width float64) *Placer {
	return p.add("width", func(c *placeCtx) { c.setLength(Horizontal, width) })
}

// Height sets an explicit height.
func (p *Placer) Height(height float64) *Placer {
	return p.add("height", func(c *placeCtx) { c.setLength(Vertical, height) })
}

// RelativeWidth sets the width to factor times the parent's width.
func (p *Placer) RelativeWidth(factor float64) *Placer {
	return p.add("relative width", func(c *placeCtx) { c.setLength(Horizontal, c.super.Width*factor) })
}

// RelativeHeight sets the height to factor times the parent's height.
func (p *Placer) RelativeHeight(factor float64) *Placer {
	return p.add("relative height", func(c *placeCtx) { c.setLength(Vertical, c.super.Height*factor) })
}

// Relative sets the node's size along axis to factor times other's size
// along otherAxis.
func (p *Placer) Relative(axis Axis, other *Node, otherAxis Axis, factor float64) *Placer {
	return p.add("relative", func(c *placeCtx) {
		c.setLength(axis, c.frameOf(0).length(otherAxis)*factor)
	}, other)
}

// SameSize copies other's size.
func (p *Placer) SameSize(other *Node) *Placer {
	return p.Relative(Horizontal, other, Horizontal, 1).Relative(Vertical, other, Vertical, 1)
}

// --- Centering ---

// Center centers the node in its parent on both axes.
func (p *Placer) Center() *Placer {
	return p.CenterX().CenterY()
}

// CenterX centers the node horizontally in its parent.
func (p *Placer) CenterX() *Placer {
	return p.add("center x", func(c *placeCtx) { c.setCenter(Horizontal, c.super.Width/2) })
}

// CenterY centers the node vertically in its parent.
func (p *Placer) CenterY() *Placer {
	return p.add("center y", func(c *placeCtx) { c.setCenter(Vertical, c.super.Height/2) })
}

// Background makes the node fill its parent exactly.
func (p *Placer) Background() *Placer {
	return p.add("background", func(c *placeCtx) {
		c.setEdge(Horizontal, true, 0)
		c.setEdge(Horizontal, false, c.super.Width)
		c.setEdge(Vertical, true, 0)
		c.setEdge(Vertical, false, c.super.Height)
	})
}

// --- Sibling relations ---

// AtCenter moves the node so its center matches other's center.
func (p *Placer) AtCenter(other *Node) *Placer {
	return p.add("at center", func(c *placeCtx) {
		center := c.frameOf(0).Center()
		c.setCenter(Horizontal, center.X)
		c.setCenter(Vertical, center.Y)
	}, other)
}

// Below pins the top edge margin points below other's bottom edge.
func (p *Placer) Below(other *Node, margin float64) *Placer {
	return p.add("below", func(c *placeCtx) { c.setEdge(Vertical, true, c.frameOf(0).MaxY()+margin) }, other)
}

// Above pins the bottom edge margin points above other's top edge.
func (p *Placer) Above(other *Node, margin float64) *Placer {
	return p.add("above", func(c *placeCtx) { c.setEdge(Vertical, false, c.frameOf(0).Y-margin) }, other)
}

// RightOf pins the left edge margin points right of other's right edge.
func (p *Placer) RightOf(other *Node, margin float64) *Placer {
	return p.add("right of", func(c *placeCtx) { c.setEdge(Horizontal, true, c.frameOf(0).MaxX()+margin) }, other)
}

// LeftOf pins the right edge margin points left of other's left edge.
func (p *Placer) LeftOf(other *Node, margin float64) *Placer {
	return p.add("left of", func(c *placeCtx) { c.setEdge(Horizontal, false, c.frameOf(0).X-margin) }, other)
}

// Between centers the node in the gap separating a and b. The gap axis is
// the one along which the two frames do not overlap; on the other axis the
// node is centered on the midpoint of their centers.
func (p *Placer) Between(a, b *Node) *Placer {
	return p.add("between", func(c *placeCtx) {
		ra, rb := c.frameOf(0), c.frameOf(1)
		axis := gapAxis(ra, rb)
		lo, hi := ra, rb
		if rb.start(axis) < ra.start(axis) {
			lo, hi = rb, ra
		}
		ca, cb := ra.Center(), rb.Center()
		mid := Point{(ca.X + cb.X) / 2, (ca.Y + cb.Y) / 2}
		if axis == Horizontal {
			c.setCenter(Horizontal, (lo.MaxX()+hi.X)/2)
			c.setCenter(Vertical, mid.Y)
		} else {
			c.setCenter(Vertical, (lo.MaxY()+hi.Y)/2)
			c.setCenter(Horizontal, mid.X)
		}
	}, a, b)
}

// BetweenSuper centers the node in the gap between other and the given edge
// of the parent.
func (p *Placer) BetweenSuper(other *Node, edge Anchor) *Placer {
	return p.add("between super", func(c *placeCtx) {
		r := c.frameOf(0)
		center := r.Center()
		switch edge {
		case AnchorTop:
			c.setCenter(Vertical, r.Y/2)
			c.setCenter(Horizontal, center.X)
		case AnchorBottom:
			c.setCenter(Vertical, (r.MaxY()+c.super.Height)/2)
			c.setCenter(Horizontal, center.X)
		case AnchorLeft:
			c.setCenter(Horizontal, r.X/2)
			c.setCenter(Vertical, center.Y)
		case AnchorRight:
			c.setCenter(Horizontal, (r.MaxX()+c.super.Width)/2)
			c.setCenter(Vertical, center.Y)
		}
	}, other)
}

// --- Stacking ---

// Distribute lays the given nodes out one after another along axis inside
// this node's frame, each taking an equal share of the length minus spacing
// and the full cross length. With no nodes listed, every visible child is
// distributed. Children still run their own rules afterwards.
func (p *Placer) Distribute(axis Axis, spacing float64, nodes ...*Node) *Placer {
	explicit := len(nodes) > 0
	return p.add("distribute", func(c *placeCtx) {
		var targets []*Node
		if explicit {
			for _, r := range c.refs {
				targets = append(targets, r.Node())
			}
		} else {
			for _, ch := range c.node.Children() {
				if ch.Visible {
					targets = append(targets, ch)
				}
			}
		}
		if len(targets) == 0 {
			return
		}
		total := c.frame.length(axis)
		each := (total - spacing*float64(len(targets)-1)) / float64(len(targets))
		if each < 0 {
			each = 0
		}
		cross := axis.Cross()
		for i, t := range targets {
			var f Rect
			f.setStart(axis, float64(i)*(each+spacing))
			f.setLength(axis, each)
			f.setLength(cross, c.frame.length(cross))
			t.Frame = f
		}
	}, nodes...)
}

// SubviewsVertically stacks the visible children top to bottom.
func (p *Placer) SubviewsVertically() *Placer {
	return p.Distribute(Vertical, 0)
}

// SubviewsHorizontally stacks the visible children left to right.
func (p *Placer) SubviewsHorizontally() *Placer {
	return p.Distribute(Horizontal, 0)
}

// Custom appends a rule computed by fn from the current frame and the
// parent's size.
func (p *Placer) Custom(name string, fn func(frame Rect, parent Size) Rect) *Placer {
	return p.add(name, func(c *placeCtx) {
		c.frame = fn(c.frame, c.super)
		c.axes = [2]axisAnchor{}
	})
}

// apply runs every rule against the parent's size and stores the result in
// the node's Frame.
func (p *Placer) apply(super Size) {
	c := placeCtx{frame: p.node.Frame, super: super, node: p.node}
	for i := range p.rules {
		r := &p.rules[i]
		if !c.bind(r) {
			p.node.ui.structural("placer: rule %q on %q references a destroyed node", r.name, p.node.Name)
			continue
		}
		r.apply(&c)
	}
	p.node.Frame = c.frame
}

// dependencies returns the live nodes referenced by the rules.
func (p *Placer) dependencies() []*Node {
	var out []*Node
	for _, r := range p.rules {
		for _, ref := range r.refs {
			if n := ref.Node(); n != nil {
				out = append(out, n)
			}
		}
	}
	return out
}

// --- Placement context ---

type axisMode uint8

const (
	modeFree   axisMode = iota
	modeStart           // start edge pinned
	modeEnd             // end edge pinned
	modeCenter          // midpoint pinned
	modeBoth            // both edges pinned, length derived
)

// axisAnchor remembers which edge of an axis the rules pinned so a later size
// rule keeps that edge in place.
type axisAnchor struct {
	mode       axisMode
	start, end float64
	center     float64
}

type placeCtx struct {
	frame Rect
	super Size
	axes  [2]axisAnchor
	node  *Node
	refs  []Ref
}

func (c *placeCtx) bind(r *rule) bool {
	for _, ref := range r.refs {
		if !ref.Alive() {
			return false
		}
	}
	c.refs = r.refs
	return true
}

// setEdge pins one edge at coord (parent coordinates). If the opposite edge
// is already pinned, the length stretches between them.
func (c *placeCtx) setEdge(axis Axis, isStart bool, coord float64) {
	a := &c.axes[axis]
	if isStart {
		a.start = coord
		if a.mode == modeEnd || a.mode == modeBoth {
			a.mode = modeBoth
			c.frame.setStart(axis, coord)
			c.frame.setLength(axis, nonNegative(a.end-coord))
			return
		}
		a.mode = modeStart
		c.frame.setStart(axis, coord)
		return
	}
	a.end = coord
	if a.mode == modeStart || a.mode == modeBoth {
		a.mode = modeBoth
		c.frame.setLength(axis, nonNegative(coord-a.start))
		return
	}
	a.mode = modeEnd
	c.frame.setStart(axis, coord-c.frame.length(axis))
}

// setLength writes the size on one axis and re-derives the origin from
// whichever edge is pinned. An explicit length overrides a stretch; the start
// edge is kept.
func (c *placeCtx) setLength(axis Axis, length float64) {
	a := &c.axes[axis]
	c.frame.setLength(axis, length)
	switch a.mode {
	case modeStart:
		c.frame.setStart(axis, a.start)
	case modeEnd:
		c.frame.setStart(axis, a.end-length)
	case modeCenter:
		c.frame.setStart(axis, a.center-length/2)
	case modeBoth:
		a.mode = modeStart
		c.frame.setStart(axis, a.start)
	}
}

func (c *placeCtx) setCenter(axis Axis, center float64) {
	a := &c.axes[axis]
	a.mode = modeCenter
	a.center = center
	c.frame.setStart(axis, center-c.frame.length(axis)/2)
}

// frameOf returns the i-th referenced node's frame in this node's parent
// coordinate space.
func (c *placeCtx) frameOf(i int) Rect {
	other := c.refs[i].Node()
	parent := c.node.Parent()
	switch {
	case parent == nil:
		return other.absoluteFrame
	case other.Parent() == parent:
		return other.Frame
	case other == parent:
		return Rect{Width: parent.Frame.Width, Height: parent.Frame.Height}
	default:
		return other.absoluteFrame.Offset(Point{-parent.absoluteFrame.X, -parent.absoluteFrame.Y})
	}
}

// gapAxis picks the axis along which a and b are separated.
func gapAxis(a, b Rect) Axis {
	if a.MaxX() <= b.X || b.MaxX() <= a.X {
		return Horizontal
	}
	if a.MaxY() <= b.Y || b.MaxY() <= a.Y {
		return Vertical
	}
	dx := a.Center().X - b.Center().X
	dy := a.Center().Y - b.Center().Y
	if dx*dx >= dy*dy {
		return Horizontal
	}
	return Vertical
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
