/*
Package nodewire manages the link and reroute topology of node graphs.

# Overview

nodewire is a Go library for the wiring layer of node-graph editors:
links connecting output slots to input slots, reroutes (draggable
waypoints links travel through), and floating links whose detached end
dangles from a waypoint. It owns the bookkeeping that keeps those three
collections consistent through connects, disconnects, and waypoint
edits, and leaves rendering and node execution to the host.

Features:
  - Reroute chains with cycle-safe traversal
  - Floating links that preserve a chain as a visual anchor
  - Snapshot persistence with revision history (SQLite or in-memory)
  - Mutation events for undo stacks and canvas repaints
  - OpenTelemetry integration for observability

# Basic Usage

Create a network, register nodes, and wire slots together:

	net := nodewire.NewNetwork()
	net.AddNode(&nodewire.BasicNode{
	    ID:      1,
	    Outputs: []nodewire.OutputSlot{{Name: "value", Type: "number"}},
	})
	net.AddNode(&nodewire.BasicNode{
	    ID:     2,
	    Inputs: []nodewire.InputSlot{{Name: "in", Type: "number"}},
	})

	link, err := net.Connect(1, 0, 2, 0, "number", 0)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(link.ID) // 1

# Reroutes

Insert a waypoint on a link, then route the link through it:

	r := net.CreateReroute([2]float32{120, 80}, link)
	chain, _ := link.Reroutes(net) // [r]

Chains are singly linked toward the origin. Traversal helpers return a
three-way result: the entity, nil for "not found", or ErrCycleDetected
when the chain is corrupt.

# Disconnecting

Disconnect removes a link and garbage-collects reroutes that no longer
serve any link. Pass a keep side to preserve the chain as a floating
anchor instead:

	// Keep the chain dangling from the origin side.
	err = net.RemoveLink(link.ID, nodewire.SideOutput)

# Persistence

Snapshots capture the full topology and round-trip through the store
subpackage:

	st, _ := store.NewSQLiteStore("./graphs.db")
	rev, _ := net.SaveSnapshot(st, "patch-01")
	_, _ = net.LoadSnapshot(st, "patch-01")

# Observability

Logging, metrics, and tracing are opt-in:

	net := nodewire.NewNetwork(
	    nodewire.WithLogger(slog.Default()),
	    nodewire.WithMetrics(true),
	    nodewire.WithTracing(true),
	)

Metrics and spans use the global OpenTelemetry providers.

# Concurrency

Network is not safe for concurrent use; drive it from one goroutine.
The event bus and the snapshot stores are safe for concurrent use.
*/
package nodewire
