// Package ecs provides ECS adapters for canopy's touch dispatch.
//
// The primary adapter is [NewDonburiStore], which bridges touches delivered
// to nodes with a non-zero EntityID into a [Donburi] world as typed events.
// Subscribe to [TouchEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	ui.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
