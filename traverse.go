package canopy

import (
	"sort"
	"time"
)

// Tick runs one frame:
//
//  1. queued OnMain / After callbacks and the script runner step
//  2. layout, parent before children, visible nodes only
//  3. animation commit
//  4. absolute frames, top-down
//  5. update callbacks, parent before children
//  6. draw list, handed to the renderer
//  7. AfterFrame callbacks
//
// Hidden subtrees are skipped by steps 2-6. A panic inside one node's
// callback is logged and the traversal continues with its siblings.
func (ui *UI) Tick(dt float64) {
	ui.drainMain()
	if ui.runner != nil {
		ui.runner.step(ui)
	}

	var stats debugStats
	var t0 time.Time
	if ui.debug {
		t0 = time.Now()
	}

	ui.layout(ui.root)

	if ui.debug {
		stats.layoutTime = time.Since(t0)
		stats.animations = len(ui.animations)
		t0 = time.Now()
	}

	ui.commitAnimations(dt)

	if ui.debug {
		stats.animateTime = time.Since(t0)
		t0 = time.Now()
	}

	ui.updateAbsolute(ui.root, Point{})
	ui.update(ui.root, dt)

	if ui.debug {
		stats.updateTime = time.Since(t0)
		t0 = time.Now()
	}

	clear(ui.drawList)
	ui.drawList = ui.drawList[:0]
	ui.emitDrawList(ui.root, 0)
	if ui.renderer != nil {
		ui.renderer.Render(ui.drawList)
	}

	if ui.debug {
		stats.drawTime = time.Since(t0)
		stats.nodeCount = ui.arena.live
		stats.commandCount = len(ui.drawList)
		ui.debugLog(stats)
	}

	ui.frame++
	ui.drainAfterFrame()
}

// layout applies placer rules and Layouter views top-down.
func (ui *UI) layout(n *Node) {
	if !n.Visible || n.disposed {
		return
	}
	if n != ui.root {
		if parent := n.Parent(); parent != nil {
			ui.guard(n, "layout", func() {
				if n.place != nil {
					n.place.apply(parent.Frame.Size())
				}
				if l, ok := n.View.(Layouter); ok {
					l.Layout(n)
				}
			})
		}
	}
	n.laidOutFrame = ui.frame + 1
	for _, c := range ui.layoutOrder(n) {
		ui.layout(c)
	}
}

// layoutSubtree lays out n and refreshes the absolute frames below it.
func (ui *UI) layoutSubtree(n *Node) {
	ui.layout(n)
	var origin Point
	if p := n.Parent(); p != nil {
		origin = p.absoluteFrame.Origin()
	}
	ui.updateAbsolute(n, origin)
}

// updateAbsolute sets each visible node's absolute frame to its local frame
// offset by the parent's absolute origin. Nodes whose TouchEnabled field was
// set after insertion are registered here.
func (ui *UI) updateAbsolute(n *Node, origin Point) {
	if !n.Visible {
		return
	}
	if n.TouchEnabled && !n.touchSeen {
		ui.touches.Register(n)
	}
	n.absoluteFrame = n.Frame.Offset(origin)
	o := n.absoluteFrame.Origin()
	for _, r := range n.children {
		if c := r.Node(); c != nil {
			ui.updateAbsolute(c, o)
		}
	}
}

// update invokes per-node update callbacks, parent before children.
func (ui *UI) update(n *Node, dt float64) {
	if !n.Visible {
		return
	}
	if n.OnUpdate != nil {
		ui.guard(n, "update", func() { n.OnUpdate(dt) })
	}
	if u, ok := n.View.(Updater); ok && !n.disposed {
		ui.guard(n, "update", func() { u.Update(n, dt) })
	}
	if n.disposed {
		return
	}
	// Children() copies, so callbacks may add or remove siblings.
	for _, c := range n.Children() {
		if !c.disposed {
			ui.update(c, dt)
		}
	}
}

// runSetup invokes the node's setup callbacks right after its first insertion.
func (ui *UI) runSetup(n *Node) {
	if n.OnSetup != nil {
		ui.guard(n, "setup", func() { n.OnSetup(n) })
	}
	if s, ok := n.View.(Setuper); ok && !n.disposed {
		ui.guard(n, "setup", func() { s.Setup(n) })
	}
}

// layoutOrder returns the children of n in the order the layout pass places
// them.
func (ui *UI) layoutOrder(n *Node) []*Node {
	kids := n.Children()
	if ui.order != LayoutDependencyOrder || len(kids) < 2 {
		return kids
	}
	return ui.dependencyOrder(n, kids)
}

// dependencyOrder sorts siblings so that a node referenced by another
// sibling's placer rules is placed first. Ties keep registration order.
func (ui *UI) dependencyOrder(parent *Node, kids []*Node) []*Node {
	index := make(map[*Node]int, len(kids))
	for i, k := range kids {
		index[k] = i
	}
	indeg := make([]int, len(kids))
	dependents := make([][]int, len(kids))
	for i, k := range kids {
		if k.place == nil {
			continue
		}
		seen := make(map[int]bool)
		for _, d := range k.place.dependencies() {
			j, ok := index[d]
			if !ok || j == i || seen[j] {
				continue
			}
			seen[j] = true
			indeg[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	out := make([]*Node, 0, len(kids))
	done := make([]bool, len(kids))
	for len(out) < len(kids) {
		next := -1
		for i := range kids {
			if !done[i] && indeg[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			ui.logger.Warn("layout dependency cycle, using registration order", "parent", parent.Name)
			for i := range kids {
				if !done[i] {
					done[i] = true
					out = append(out, kids[i])
				}
			}
			break
		}
		done[next] = true
		out = append(out, kids[next])
		for _, j := range dependents[next] {
			indeg[j]--
		}
	}
	return out
}

// sortByPriority orders nodes by ascending priority, keeping the existing
// order for equal priorities.
func sortByPriority(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Priority < nodes[j].Priority
	})
}
