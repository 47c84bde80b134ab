package canopy

// Capability interfaces a Node's View may implement. Each is optional; the
// engine checks for them with a type assertion at the matching phase.
type (
	// Setuper runs once, immediately after the node is first inserted.
	Setuper interface{ Setup(n *Node) }
	// Layouter runs after the node's placer rules, before its children.
	Layouter interface{ Layout(n *Node) }
	// Updater runs once per frame, parent before children.
	Updater interface{ Update(n *Node, dt float64) }
	// Toucher receives every touch phase routed to the node.
	Toucher interface{ Touch(n *Node, t Touch) }
	// Teardowner runs while the node's subtree is being destroyed.
	Teardowner interface{ Teardown(n *Node) }
)

// Node is a single view in the tree. A Node exclusively owns its children;
// its link to the parent is a non-owning Ref that resolves to nil once the
// parent is destroyed.
type Node struct {
	// Identity
	Name     string
	UserData any
	EntityID uint32
	View     any

	// Geometry (Frame is in the parent's coordinate space)
	Frame Rect

	// Appearance
	Priority     int64
	Visible      bool
	Color        Color
	Image        ImageHandle
	CornerRadius float64
	BorderColor  Color
	Paths        []any

	// Interaction
	TouchEnabled     bool
	TouchPriorityLow bool

	// Per-node callbacks (nil by default)
	OnSetup            func(n *Node)
	OnUpdate           func(dt float64)
	OnTouch            func(t Touch)
	OnSelectionChanged func(selected bool)

	ui       *UI
	ref      Ref
	parent   Ref
	children []Ref

	absoluteFrame Rect
	laidOutFrame  uint64
	selected      bool
	place         *Placer
	subs          []unsubscriber
	setupDone     bool
	touchSeen     bool
	disposing     bool
	disposed      bool
}

// NewNode allocates a detached node owned by ui. The node joins the tree
// (and runs its setup) when passed to AddChild. view may be nil or a value
// implementing any of the capability interfaces.
func (ui *UI) NewNode(name string, view any) *Node {
	n := &Node{
		Name:    name,
		View:    view,
		Visible: true,
		ui:      ui,
	}
	n.ref = ui.arena.alloc(n)
	return n
}

// UI returns the context that owns the node.
func (n *Node) UI() *UI {
	return n.ui
}

// Ref returns a generation-checked handle to the node.
func (n *Node) Ref() Ref {
	return n.ref
}

// Parent resolves the back-reference. Returns nil for the root, for detached
// nodes, and when the parent has been destroyed.
func (n *Node) Parent() *Node {
	return n.parent.Node()
}

// --- Tree manipulation ---

// AddChild appends child to this node's children, sets the child's
// back-reference and runs its setup if this is its first insertion.
// If child already has a parent it is moved without being torn down.
// Returns child, or nil if the insertion was rejected.
func (n *Node) AddChild(child *Node) *Node {
	return n.insertChild(child, -1, "AddChild")
}

// AddChildAt inserts child at the given index.
// Same reparenting and setup behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) *Node {
	return n.insertChild(child, index, "AddChildAt")
}

func (n *Node) insertChild(child *Node, index int, op string) *Node {
	switch {
	case child == nil:
		n.ui.structural("%s: nil child on %q", op, n.Name)
		return nil
	case n.disposed || n.disposing:
		n.ui.structural("%s: parent %q is destroyed", op, n.Name)
		return nil
	case child.disposed || child.disposing:
		n.ui.structural("%s: child %q is destroyed", op, child.Name)
		return nil
	case child.ui != n.ui:
		n.ui.structural("%s: child %q belongs to another UI", op, child.Name)
		return nil
	case isAncestor(child, n):
		n.ui.structural("%s: adding %q to %q would create a cycle", op, child.Name, n.Name)
		return nil
	}
	if p := child.Parent(); p != nil {
		p.removeChildRef(child.ref)
	}
	if index < 0 || index > len(n.children) {
		index = len(n.children)
	}
	n.children = append(n.children, Ref{})
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child.ref
	child.parent = n.ref

	if n.ui.debug {
		n.ui.debugCheckTree(child)
	}
	if child.TouchEnabled && !child.touchSeen {
		n.ui.touches.Register(child)
	}
	if !child.setupDone {
		child.setupDone = true
		n.ui.runSetup(child)
	}
	return child
}

// RemoveFromParent detaches the node and destroys it together with its
// subtree: every event subscription the subtree owns is cancelled, touch
// registrations are dropped and arena slots are released. Safe to call on
// an already-removed node, including from the node's own teardown.
func (n *Node) RemoveFromParent() {
	if n.disposed || n.disposing {
		return
	}
	if n == n.ui.root {
		n.ui.structural("RemoveFromParent: cannot remove the root node")
		return
	}
	if p := n.Parent(); p != nil {
		p.removeChildRef(n.ref)
	}
	n.teardown()
}

// Dispose is an alias of RemoveFromParent; it also destroys nodes that were
// never inserted.
func (n *Node) Dispose() {
	n.RemoveFromParent()
}

// RemoveChildren destroys every child of this node.
func (n *Node) RemoveChildren() {
	for _, c := range n.Children() {
		c.RemoveFromParent()
	}
}

// IsDisposed reports whether the node has been destroyed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// Children returns the live children in registration order. The slice is a
// fresh copy.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, r := range n.children {
		if c := r.Node(); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index, or nil if out of range.
func (n *Node) ChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index].Node()
}

// Depth returns the number of ancestors.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return d
}

// Walk visits n and its descendants depth-first in registration order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// FindByName returns the first node in the subtree with the given name.
func (n *Node) FindByName(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// --- State ---

// AbsoluteFrame returns the frame in root coordinates as of the last
// traversal.
func (n *Node) AbsoluteFrame() Rect {
	return n.absoluteFrame
}

// IsHidden reports whether the node itself is hidden.
func (n *Node) IsHidden() bool {
	return !n.Visible
}

// SetHidden shows or hides the node and its subtree.
func (n *Node) SetHidden(hidden bool) *Node {
	n.Visible = !hidden
	return n
}

// EffectivelyVisible reports whether the node and all its ancestors are
// visible.
func (n *Node) EffectivelyVisible() bool {
	for p := n; p != nil; p = p.Parent() {
		if !p.Visible {
			return false
		}
	}
	return true
}

// IsSelected reports the node's selection flag.
func (n *Node) IsSelected() bool {
	return n.selected
}

// SetSelected updates the selection flag and fires OnSelectionChanged when
// it changes. Selection is local to the node; exclusivity between siblings is
// left to the caller.
func (n *Node) SetSelected(selected bool) {
	if n.selected == selected {
		return
	}
	n.selected = selected
	if n.OnSelectionChanged != nil {
		n.ui.guard(n, "selection", func() { n.OnSelectionChanged(selected) })
	}
}

// EnableTouch marks the node touch-enabled and registers it in the topmost
// touch layer. Setting TouchEnabled directly has the same effect once the
// node is inserted or next laid out.
func (n *Node) EnableTouch() *Node {
	n.TouchEnabled = true
	if !n.disposed {
		n.ui.touches.Register(n)
	}
	return n
}

// DisableTouch stops the node from claiming new touches. Touches it already
// captured keep being delivered.
func (n *Node) DisableTouch() *Node {
	n.TouchEnabled = false
	return n
}

// --- Teardown ---

func (n *Node) teardown() {
	if n.disposed || n.disposing {
		return
	}
	n.disposing = true
	// Teardown callbacks may remove siblings, so iterate over a copy.
	for _, c := range n.Children() {
		c.teardown()
	}
	if t, ok := n.View.(Teardowner); ok {
		n.ui.guard(n, "teardown", func() { t.Teardown(n) })
	}
	for _, s := range n.subs {
		s.UnsubscribeAll(n)
	}
	n.ui.touches.Unregister(n)
	n.ui.arena.release(n.ref)

	n.disposing = false
	n.disposed = true
	n.children = nil
	n.parent = Ref{}
	n.subs = nil
	n.place = nil
	n.UserData = nil
	n.OnSetup = nil
	n.OnUpdate = nil
	n.OnTouch = nil
	n.OnSelectionChanged = nil
}

// trackSubscription remembers a bus this node subscribed to so teardown can
// cancel it.
func (n *Node) trackSubscription(u unsubscriber) {
	for _, s := range n.subs {
		if s == u {
			return
		}
	}
	n.subs = append(n.subs, u)
}

// --- Helpers ---

// attached reports whether n is connected to its UI's root.
func (n *Node) attached() bool {
	p := n
	for q := p.Parent(); q != nil; q = q.Parent() {
		p = q
	}
	return p == n.ui.root
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent() {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildRef removes r from n.children without touching the child.
func (n *Node) removeChildRef(r Ref) {
	for i, c := range n.children {
		if c == r {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = Ref{}
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
