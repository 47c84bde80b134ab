package canopy

// Ref is a generation-checked handle to a Node. A Ref never keeps its node
// alive: once the node is torn down its slot generation changes and the Ref
// resolves to nil. The zero Ref is always dead.
type Ref struct {
	a     *arena
	index uint32
	gen   uint32
}

// Node returns the referenced node, or nil if it has been destroyed.
func (r Ref) Node() *Node {
	if r.a == nil || int(r.index) >= len(r.a.slots) {
		return nil
	}
	s := &r.a.slots[r.index]
	if s.gen != r.gen {
		return nil
	}
	return s.node
}

// Alive reports whether the referenced node still exists.
func (r Ref) Alive() bool {
	return r.Node() != nil
}

// IsZero reports whether r was never assigned.
func (r Ref) IsZero() bool {
	return r.a == nil
}

type slot struct {
	gen  uint32
	node *Node
}

// arena owns every node of a UI. Freed slots are recycled with a bumped
// generation.
type arena struct {
	slots []slot
	free  []uint32
	live  int
}

func (a *arena) alloc(n *Node) Ref {
	var idx uint32
	if k := len(a.free); k > 0 {
		idx = a.free[k-1]
		a.free = a.free[:k-1]
	} else {
		a.slots = append(a.slots, slot{gen: 1})
		idx = uint32(len(a.slots) - 1)
	}
	a.slots[idx].node = n
	a.live++
	return Ref{a: a, index: idx, gen: a.slots[idx].gen}
}

// release frees the slot behind r. Returns false if r was already dead.
func (a *arena) release(r Ref) bool {
	if r.a != a || r.Node() == nil {
		return false
	}
	s := &a.slots[r.index]
	s.node = nil
	s.gen++
	a.free = append(a.free, r.index)
	a.live--
	return true
}
