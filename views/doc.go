// Package views provides ready-made canopy views built from plain nodes.
//
// Every constructor is a factory: it creates a node, attaches the view as the
// node's View and inserts it under the given parent, which runs the view's
// Setup. The returned value keeps a handle to its node.
//
//	b := views.NewButton(ui.Root(), "Play")
//	b.Node().Place().Size(120, 40).Center()
//	b.OnTap.Sub(b.Node(), startGame)
package views
