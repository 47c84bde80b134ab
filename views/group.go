package views

import "github.com/phanxgames/canopy"

// Group keeps at most one of its member nodes selected.
type Group struct {
	// Changed fires with the newly selected node, or nil when the selection
	// is cleared.
	Changed canopy.Event[*canopy.Node]

	members []canopy.Ref
}

// Add makes n a member. Destroyed members drop out automatically.
func (g *Group) Add(nodes ...*canopy.Node) {
	for _, n := range nodes {
		g.members = append(g.members, n.Ref())
	}
}

// Select selects n and clears every other member. n must be a member or nil;
// nil clears the selection.
func (g *Group) Select(n *canopy.Node) {
	prev := g.Selected()
	if prev == n {
		return
	}
	for _, m := range g.Members() {
		if m != n {
			m.SetSelected(false)
		}
	}
	if n != nil {
		n.SetSelected(true)
	}
	g.Changed.Trigger(n)
}

// Selected returns the selected member, or nil.
func (g *Group) Selected() *canopy.Node {
	for _, m := range g.Members() {
		if m.IsSelected() {
			return m
		}
	}
	return nil
}

// Members returns the live members in insertion order and forgets
// destroyed ones.
func (g *Group) Members() []*canopy.Node {
	out := make([]*canopy.Node, 0, len(g.members))
	kept := g.members[:0]
	for _, r := range g.members {
		if n := r.Node(); n != nil {
			out = append(out, n)
			kept = append(kept, r)
		}
	}
	clear(g.members[len(kept):])
	g.members = kept
	return out
}
