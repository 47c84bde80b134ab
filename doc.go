// Package canopy is a retained-mode view tree for touch-driven 2D
// interfaces on [Ebitengine].
//
// Canopy provides the node hierarchy, declarative placement, touch routing
// with modal layers, typed events, tweens and a per-frame draw list that
// every non-trivial game menu or tool overlay needs. Rendering and input are
// pluggable; package ebitenui connects both to Ebitengine.
//
// # Quick start
//
// The simplest way to get started is [ebitenui.Run], which creates a window
// and frame loop for you:
//
//	ui := canopy.NewUI(canopy.Size{Width: 640, Height: 480})
//	// ... add nodes ...
//	ebitenui.Run(ui, ebitenui.RunConfig{
//		Title: "My Tool", Width: 640, Height: 480,
//	})
//
// For full control, drive the UI yourself: inject touches with [UI.Inject],
// call [UI.Tick] once per frame and consume the draw list through a
// [Renderer].
//
// # View tree
//
// Every element is a [Node] owned by a [UI]. Nodes form a tree rooted at
// [UI.Root]; a node's Frame is relative to its parent. Removing a node
// destroys its whole subtree, cancels the subtree's event subscriptions and
// invalidates every [Ref] to it.
//
//	panel := ui.NewNode("panel", nil)
//	panel.Color = canopy.ColorLightGray
//	ui.Root().AddChild(panel)
//
// Behavior attaches either through per-node callbacks (OnSetup, OnUpdate,
// OnTouch) or through a View value implementing [Setuper], [Layouter],
// [Updater], [Toucher] or [Teardowner].
//
// # Placement
//
// [Node.Place] returns the node's [Placer]. Rules are re-applied every frame
// in the order they were added, so later rules win:
//
//	header.Place().Top(0).Left(0).Right(0).Height(60)
//	body.Place().Below(header, 8).Left(8).Right(8).Bottom(8)
//
// # Touches
//
// [TouchStack] routes each contact to the node that captured it on Began.
// [TouchStack.PushLayer] suspends new touches to everything below the new
// layer, which is how views.Modal blocks the screen behind it.
//
// # Debug mode
//
// With [WithDebug], structural errors (destroyed nodes, cycles, popping the
// root touch layer) panic with an [AssertionError]; otherwise they are
// logged and ignored. Debug mode also logs per-frame timings.
//
// Tweens use [gween]; package ecs bridges touches into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package canopy
