package canopy

import (
	"fmt"
	"sort"
)

// Phase is the stage of a touch contact.
type Phase uint8

const (
	Began     Phase = iota // contact started
	Moved                  // contact moved while down
	Ended                  // contact lifted
	Cancelled              // contact aborted by the platform or the engine
)

func (p Phase) String() string {
	switch p {
	case Began:
		return "began"
	case Moved:
		return "moved"
	case Ended:
		return "ended"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// ParsePhase accepts the full phase name or its first letter.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "b", "began", "Began":
		return Began, nil
	case "m", "moved", "Moved":
		return Moved, nil
	case "e", "ended", "Ended":
		return Ended, nil
	case "c", "cancelled", "Cancelled":
		return Cancelled, nil
	}
	return 0, fmt.Errorf("unknown touch phase %q", s)
}

// IsFinal reports whether the phase ends the contact.
func (p Phase) IsFinal() bool {
	return p == Ended || p == Cancelled
}

// Touch is one input event for a single contact. ID is assigned by the
// device and stays the same from Began to Ended/Cancelled.
type Touch struct {
	ID       uint64
	Position Point
	Phase    Phase
}

func (t Touch) String() string {
	return fmt.Sprintf("touch %d %s at %v", t.ID, t.Phase, t.Position)
}

// EntityStore receives every dispatched touch that landed on a node with a
// non-zero EntityID. See package ecs for a Donburi-backed implementation.
type EntityStore interface {
	EmitEvent(event TouchEvent)
}

// TouchEvent carries a dispatched touch for the ECS bridge.
type TouchEvent struct {
	Touch    Touch
	EntityID uint32
	Node     Ref
	Local    Point
}

// --- Layers ---

// TouchLayer is an ordered group of hit-testable nodes. Only the topmost
// layer receives new touches.
type TouchLayer struct {
	name    string
	entries []layerEntry
}

type layerEntry struct {
	ref Ref
	seq uint64
}

// Name returns the label the layer was pushed with.
func (l *TouchLayer) Name() string {
	return l.name
}

// Len returns the number of live registrations.
func (l *TouchLayer) Len() int {
	n := 0
	for _, e := range l.entries {
		if e.ref.Alive() {
			n++
		}
	}
	return n
}

// --- Stack ---

// TouchStack routes touches to nodes. It keeps a stack of layers for modal
// overlays and remembers, for every active contact, the node that captured
// it on Began.
type TouchStack struct {
	ui      *UI
	layers  []*TouchLayer
	active  map[uint64]Ref
	seq     uint64
	hitBuf  []layerEntry
	lowBuf  []layerEntry
	nodeBuf []*Node
}

func newTouchStack(ui *UI, rootName string) *TouchStack {
	return &TouchStack{
		ui:     ui,
		layers: []*TouchLayer{{name: rootName}},
		active: make(map[uint64]Ref),
	}
}

// PushLayer stacks a new layer above the current one. Nodes in lower layers
// stop receiving new touches until the layer is removed; contacts they already
// captured keep being delivered.
func (s *TouchStack) PushLayer(name string) *TouchLayer {
	l := &TouchLayer{name: name}
	s.layers = append(s.layers, l)
	s.ui.logger.Debug("touch layer pushed", "layer", name, "depth", len(s.layers))
	return l
}

// PopLayer removes the topmost layer. The root layer cannot be popped.
func (s *TouchStack) PopLayer() {
	if len(s.layers) <= 1 {
		s.ui.structural("PopLayer: cannot pop the root touch layer")
		return
	}
	top := s.layers[len(s.layers)-1]
	s.layers[len(s.layers)-1] = nil
	s.layers = s.layers[:len(s.layers)-1]
	s.ui.logger.Debug("touch layer popped", "layer", top.name, "depth", len(s.layers))
}

// RemoveLayer removes l wherever it sits in the stack. No-op if l is not on
// the stack.
func (s *TouchStack) RemoveLayer(l *TouchLayer) {
	for i := 1; i < len(s.layers); i++ {
		if s.layers[i] == l {
			copy(s.layers[i:], s.layers[i+1:])
			s.layers[len(s.layers)-1] = nil
			s.layers = s.layers[:len(s.layers)-1]
			return
		}
	}
}

// Top returns the layer currently receiving new touches.
func (s *TouchStack) Top() *TouchLayer {
	return s.layers[len(s.layers)-1]
}

// Depth returns the number of layers, root included.
func (s *TouchStack) Depth() int {
	return len(s.layers)
}

// Register adds n to the topmost layer. A node already registered in any
// layer keeps its original registration.
func (s *TouchStack) Register(n *Node) {
	if n == nil || n.disposed || n.disposing {
		return
	}
	if s.layerOf(n.ref) != nil {
		return
	}
	n.touchSeen = true
	s.seq++
	top := s.Top()
	top.entries = append(top.entries, layerEntry{ref: n.ref, seq: s.seq})
}

// Unregister removes n from whichever layer holds it.
func (s *TouchStack) Unregister(n *Node) {
	for _, l := range s.layers {
		for i, e := range l.entries {
			if e.ref == n.ref {
				copy(l.entries[i:], l.entries[i+1:])
				l.entries = l.entries[:len(l.entries)-1]
				return
			}
		}
	}
}

// Captured returns the node holding contact id, or nil.
func (s *TouchStack) Captured(id uint64) *Node {
	return s.active[id].Node()
}

// ActiveTouches returns the number of tracked contacts.
func (s *TouchStack) ActiveTouches() int {
	return len(s.active)
}

// Dump lists the layers from bottom to top; each layer is its name followed
// by its live nodes, most recently registered first.
func (s *TouchStack) Dump() [][]string {
	out := make([][]string, 0, len(s.layers))
	for _, l := range s.layers {
		lines := []string{"Layer: " + l.name}
		for i := len(l.entries) - 1; i >= 0; i-- {
			if n := l.entries[i].ref.Node(); n != nil {
				lines = append(lines, "View: "+n.Name)
			}
		}
		out = append(out, lines)
	}
	return out
}

func (s *TouchStack) layerOf(r Ref) *TouchLayer {
	for _, l := range s.layers {
		for _, e := range l.entries {
			if e.ref == r {
				return l
			}
		}
	}
	return nil
}

// --- Dispatch ---

// Dispatch routes one touch. It returns the node the touch was delivered to,
// or nil when nothing received it.
func (s *TouchStack) Dispatch(t Touch) *Node {
	if t.Phase == Began {
		if prev, ok := s.active[t.ID]; ok {
			s.ui.logger.Warn("touch began while already active; cancelling previous",
				"id", t.ID, "position", t.Position)
			delete(s.active, t.ID)
			if n := prev.Node(); n != nil {
				s.deliver(n, Touch{ID: t.ID, Position: t.Position, Phase: Cancelled})
			}
		}
		target := s.HitTest(t.Position)
		if target == nil {
			s.active[t.ID] = Ref{}
			return nil
		}
		s.active[t.ID] = target.ref
		s.deliver(target, t)
		return target
	}

	ref, ok := s.active[t.ID]
	if !ok {
		s.ui.logger.Debug("touch phase for unknown id dropped", "id", t.ID, "phase", t.Phase)
		return nil
	}
	target := ref.Node()
	if t.Phase.IsFinal() || target == nil {
		delete(s.active, t.ID)
	}
	if target == nil {
		return nil
	}
	s.deliver(target, t)
	return target
}

// HitTest returns the node in the topmost layer that would capture a new
// touch at p. Candidates are ordered by descending priority, then by most
// recent registration. A TouchPriorityLow node only wins when no regular node
// contains the point.
func (s *TouchStack) HitTest(p Point) *Node {
	top := s.Top()
	s.hitBuf = s.hitBuf[:0]
	s.lowBuf = s.lowBuf[:0]
	live := top.entries[:0]
	for _, e := range top.entries {
		n := e.ref.Node()
		if n == nil {
			continue
		}
		live = append(live, e)
		if !hittable(n, p) {
			continue
		}
		if n.TouchPriorityLow {
			s.lowBuf = append(s.lowBuf, e)
		} else {
			s.hitBuf = append(s.hitBuf, e)
		}
	}
	clear(top.entries[len(live):])
	top.entries = live

	if n := s.best(s.hitBuf); n != nil {
		return n
	}
	return s.best(s.lowBuf)
}

// Candidates returns every node in the topmost layer containing p, in hit
// order (ignoring the low-priority rule).
func (s *TouchStack) Candidates(p Point) []*Node {
	var entries []layerEntry
	for _, e := range s.Top().entries {
		n := e.ref.Node()
		if n != nil && hittable(n, p) {
			entries = append(entries, e)
		}
	}
	sortHitOrder(entries)
	out := make([]*Node, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ref.Node())
	}
	return out
}

// hittable reports whether n can claim a new touch at p. Detached nodes never
// can, whatever their last absolute frame was.
func hittable(n *Node, p Point) bool {
	return n.TouchEnabled && n.absoluteFrame.Contains(p) && n.EffectivelyVisible() && n.attached()
}

func (s *TouchStack) best(entries []layerEntry) *Node {
	if len(entries) == 0 {
		return nil
	}
	sortHitOrder(entries)
	return entries[0].ref.Node()
}

func sortHitOrder(entries []layerEntry) {
	sort.Slice(entries, func(i, j int) bool {
		pi, pj := entries[i].ref.Node().Priority, entries[j].ref.Node().Priority
		if pi != pj {
			return pi > pj
		}
		return entries[i].seq > entries[j].seq
	})
}

func (s *TouchStack) deliver(n *Node, t Touch) {
	ui := s.ui
	if n.OnTouch != nil {
		ui.guard(n, "touch", func() { n.OnTouch(t) })
	}
	if !n.disposed {
		if h, ok := n.View.(Toucher); ok {
			ui.guard(n, "touch", func() { h.Touch(n, t) })
		}
	}
	if ui.store != nil && n.EntityID != 0 {
		ui.store.EmitEvent(TouchEvent{
			Touch:    t,
			EntityID: n.EntityID,
			Node:     n.ref,
			Local:    t.Position.Sub(n.absoluteFrame.Origin()),
		})
	}
}
