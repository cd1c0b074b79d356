package nodewire

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/nodewire/pkg/nodewire/event"
)

// TestNewNetwork verifies empty construction.
func TestNewNetwork(t *testing.T) {
	net := NewNetwork()

	assert.Zero(t, net.LinkCount())
	assert.Zero(t, net.RerouteCount())
	assert.Zero(t, net.FloatingLinkCount())
}

// TestNetwork_Connect verifies registration and sequential id assignment.
func TestNetwork_Connect(t *testing.T) {
	net := twoNodeNetwork()

	l1, err := net.Connect(10, 0, 20, 0, "number", 0)
	require.NoError(t, err)
	l2, err := net.Connect(10, 0, 20, 1, "number", 0)
	require.NoError(t, err)

	assert.Equal(t, int64(1), l1.ID)
	assert.Equal(t, int64(2), l2.ID)
	assert.Same(t, l1, net.GetLink(1))
	assert.Same(t, l2, net.GetLink(2))
}

// TestNetwork_Connect_ThroughChain verifies the new link joins every
// reroute on the chain it is parented on.
func TestNetwork_Connect_ThroughChain(t *testing.T) {
	net := twoNodeNetwork()
	l1 := connectedLink(net)
	created := chainOf(net, l1, 2)

	l2, err := net.Connect(10, 0, 20, 1, "number", created[1].ID)
	require.NoError(t, err)

	assert.Contains(t, created[0].LinkIDs, l2.ID)
	assert.Contains(t, created[1].LinkIDs, l2.ID)
}

// TestNetwork_Connect_Cycle verifies nothing is registered when the
// parent chain is corrupt.
func TestNetwork_Connect_Cycle(t *testing.T) {
	net := twoNodeNetwork()
	corruptChain(net)
	before := net.LinkCount()

	l, err := net.Connect(10, 0, 20, 1, "number", 102)
	assert.Nil(t, l)
	assert.ErrorIs(t, err, ErrCycleDetected)
	assert.Equal(t, before, net.LinkCount())
}

// TestNetwork_ConnectRefs verifies the direction-checked connect.
func TestNetwork_ConnectRefs(t *testing.T) {
	net := twoNodeNetwork()

	l, err := net.ConnectRefs(
		SlotRef{NodeID: 10, Slot: 0, Side: SideOutput},
		SlotRef{NodeID: 20, Slot: 1, Side: SideInput},
		"number",
	)
	require.NoError(t, err)
	assert.True(t, l.HasOrigin(10, 0))
	assert.True(t, l.HasTarget(20, 1))
}

// TestNetwork_ConnectRefs_WrongSides_Panics verifies invalid connection
// shapes fail loudly.
func TestNetwork_ConnectRefs_WrongSides_Panics(t *testing.T) {
	net := twoNodeNetwork()
	out := SlotRef{NodeID: 10, Slot: 0, Side: SideOutput}
	in := SlotRef{NodeID: 20, Slot: 0, Side: SideInput}

	assert.PanicsWithValue(t, "nodewire: cannot connect an output to another output", func() {
		_, _ = net.ConnectRefs(out, out, "number")
	})
	assert.PanicsWithValue(t, "nodewire: connect origin must be an output slot", func() {
		_, _ = net.ConnectRefs(in, in, "number")
	})
}

// TestNetwork_Lookups verifies nil-for-missing semantics.
func TestNetwork_Lookups(t *testing.T) {
	net := twoNodeNetwork()

	assert.Nil(t, net.GetLink(999))
	assert.Nil(t, net.GetReroute(0))
	assert.Nil(t, net.GetReroute(999))
	assert.Nil(t, net.GetFloatingLink(999))
	assert.Nil(t, net.GetNodeByID(NoID))
	assert.Nil(t, net.GetNodeByID(999))

	n := net.GetNodeByID(10)
	require.NotNil(t, n)
	assert.Equal(t, int64(10), n.NodeID())
}

// TestNetwork_ExternalResolver verifies resolver precedence over the
// built-in registry.
func TestNetwork_ExternalResolver(t *testing.T) {
	external := &BasicNode{ID: 42}
	resolver := resolverFunc(func(id int64) Node {
		if id == 42 {
			return external
		}
		return nil
	})

	net := NewNetwork(WithNodeResolver(resolver))
	net.AddNode(&BasicNode{ID: 10})

	assert.Same(t, external, net.GetNodeByID(42))
	assert.Nil(t, net.GetNodeByID(10), "built-in registry is bypassed")
}

// resolverFunc adapts a function to NodeResolver.
type resolverFunc func(id int64) Node

func (f resolverFunc) GetNodeByID(id int64) Node { return f(id) }

// TestNetwork_AddFloatingLink verifies id assignment and anchor
// registration.
func TestNetwork_AddFloatingLink(t *testing.T) {
	net := twoNodeNetwork()
	l := connectedLink(net)
	r := net.CreateReroute([2]float32{40, 0}, l)

	fl := net.AddFloatingLink(l.AsFloating(SideInput, r.ID))

	assert.Equal(t, int64(1), fl.ID)
	assert.Same(t, fl, net.GetFloatingLink(1))
	assert.Contains(t, r.FloatingLinkIDs, fl.ID)

	fl2 := net.AddFloatingLink(l.AsFloating(SideInput, r.ID))
	assert.Equal(t, int64(2), fl2.ID)
}

// TestNetwork_RemoveFloatingLink verifies anchor release and GC of an
// otherwise unused anchor.
func TestNetwork_RemoveFloatingLink(t *testing.T) {
	net := twoNodeNetwork()
	l := connectedLink(net)
	chain := chainOf(net, l, 1)
	last := chain[0]

	require.NoError(t, l.Disconnect(net, SideOutput))
	fl := net.GetFloatingLink(1)
	require.NotNil(t, fl)

	net.RemoveFloatingLink(fl)

	assert.Zero(t, net.FloatingLinkCount())
	assert.Nil(t, net.GetReroute(last.ID), "empty anchor is collected")
}

// TestNetwork_CreateReroute_OnLink verifies waypoint insertion between a
// link and its previous parent.
func TestNetwork_CreateReroute_OnLink(t *testing.T) {
	net := twoNodeNetwork()
	l := connectedLink(net)

	r1 := net.CreateReroute([2]float32{40, 0}, l)
	assert.Equal(t, r1.ID, l.ParentID)
	assert.Zero(t, r1.ParentID)
	assert.Contains(t, r1.LinkIDs, l.ID)

	r2 := net.CreateReroute([2]float32{80, 0}, l)
	assert.Equal(t, r2.ID, l.ParentID)
	assert.Equal(t, r1.ID, r2.ParentID)
	assert.Contains(t, r2.LinkIDs, l.ID)
}

// TestNetwork_CreateReroute_OnReroute verifies insertion upstream of an
// existing waypoint copies its link membership.
func TestNetwork_CreateReroute_OnReroute(t *testing.T) {
	net := twoNodeNetwork()
	l := connectedLink(net)
	r1 := net.CreateReroute([2]float32{40, 0}, l)

	r2 := net.CreateReroute([2]float32{20, 0}, r1)

	assert.Equal(t, r2.ID, r1.ParentID)
	assert.Zero(t, r2.ParentID)
	assert.Contains(t, r2.LinkIDs, l.ID)
	assert.Equal(t, r1.ID, l.ParentID, "the link still parents on the downstream reroute")
}

// TestNetwork_CreateReroute_OnFloatingLink verifies the anchor and the
// floating marker move to the new waypoint.
func TestNetwork_CreateReroute_OnFloatingLink(t *testing.T) {
	net := twoNodeNetwork()
	l := connectedLink(net)
	chain := chainOf(net, l, 1)
	anchor := chain[0]

	require.NoError(t, l.Disconnect(net, SideOutput))
	fl := net.GetFloatingLink(1)
	require.NotNil(t, fl)

	r := net.CreateReroute([2]float32{60, 0}, fl)

	assert.Equal(t, r.ID, fl.ParentID)
	assert.Equal(t, anchor.ID, r.ParentID)
	assert.Contains(t, r.FloatingLinkIDs, fl.ID)
	assert.NotContains(t, anchor.FloatingLinkIDs, fl.ID)

	require.NotNil(t, r.Floating)
	assert.Equal(t, SideOutput, r.Floating.Side)
	assert.Nil(t, anchor.Floating)
}

// TestNetwork_RemoveReroute_Splices verifies links, child reroutes, and
// floating links re-parent onto the removed reroute's parent.
func TestNetwork_RemoveReroute_Splices(t *testing.T) {
	net := twoNodeNetwork()
	l := connectedLink(net)
	created := chainOf(net, l, 3)

	net.RemoveReroute(created[2].ID)

	assert.Equal(t, created[1].ID, l.ParentID)
	assert.Equal(t, 2, net.RerouteCount())

	net.RemoveReroute(created[0].ID)

	assert.Zero(t, created[1].ParentID)
	assert.Equal(t, 1, net.RerouteCount())
}

// TestNetwork_RemoveReroute_OrphanedFloating verifies a floating link
// whose only anchor is removed goes away with it.
func TestNetwork_RemoveReroute_OrphanedFloating(t *testing.T) {
	net := twoNodeNetwork()
	l := connectedLink(net)
	chain := chainOf(net, l, 1)

	require.NoError(t, l.Disconnect(net, SideOutput))
	require.Equal(t, 1, net.FloatingLinkCount())

	net.RemoveReroute(chain[0].ID)

	assert.Zero(t, net.FloatingLinkCount())
	assert.Zero(t, net.RerouteCount())
}

// TestNetwork_RemoveReroute_FloatingReanchors verifies a floating link
// moves to the upstream reroute when one exists.
func TestNetwork_RemoveReroute_FloatingReanchors(t *testing.T) {
	net := twoNodeNetwork()
	l := connectedLink(net)
	chain := chainOf(net, l, 2)

	require.NoError(t, l.Disconnect(net, SideOutput))
	fl := net.GetFloatingLink(1)
	require.NotNil(t, fl)
	require.Equal(t, chain[1].ID, fl.ParentID)

	net.RemoveReroute(chain[1].ID)

	assert.Equal(t, chain[0].ID, fl.ParentID)
	assert.Contains(t, chain[0].FloatingLinkIDs, fl.ID)
	require.NotNil(t, chain[0].Floating)
	assert.Equal(t, SideOutput, chain[0].Floating.Side)
	assert.Equal(t, 1, net.FloatingLinkCount())
}

// TestNetwork_RemoveReroute_Unknown verifies unknown ids are a no-op.
func TestNetwork_RemoveReroute_Unknown(t *testing.T) {
	net := twoNodeNetwork()
	assert.NotPanics(t, func() { net.RemoveReroute(999) })
}

// TestNetwork_RemoveLink verifies the wrapper, including the unknown-id
// no-op.
func TestNetwork_RemoveLink(t *testing.T) {
	net := twoNodeNetwork()
	l := connectedLink(net)

	require.NoError(t, net.RemoveLink(999, SideKeepNone))
	assert.Equal(t, 1, net.LinkCount())

	require.NoError(t, net.RemoveLink(l.ID, SideKeepNone))
	assert.Zero(t, net.LinkCount())
}

// TestNetwork_ConcreteScenario walks the R1 -> R2 -> L1 sequence
// end to end.
func TestNetwork_ConcreteScenario(t *testing.T) {
	net := twoNodeNetwork()
	l1 := connectedLink(net)
	created := chainOf(net, l1, 2)
	r1, r2 := created[0], created[1]

	chain, err := l1.Reroutes(net)
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Same(t, r1, chain[0])
	assert.Same(t, r2, chain[1])

	require.NoError(t, l1.Disconnect(net, SideKeepNone))

	assert.Zero(t, net.LinkCount())
	assert.Zero(t, net.RerouteCount())
	assert.Zero(t, net.FloatingLinkCount())
}

// TestNetwork_Events verifies mutation events reach a subscribed bus.
func TestNetwork_Events(t *testing.T) {
	bus := event.NewBus(event.DefaultBusConfig)
	defer bus.Close()

	received := make(chan event.Event, 16)
	bus.SubscribeAll(event.HandlerFunc(func(_ context.Context, evt event.Event) error {
		received <- evt
		return nil
	}))

	net := twoNodeNetwork(
		WithLogger(slog.Default()),
		WithPublisher(bus),
	)

	l := connectedLink(net)
	require.NoError(t, net.RemoveLink(l.ID, SideKeepNone))

	types := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		select {
		case evt := <-received:
			types = append(types, evt.Type())
			assert.Equal(t, "nodewire", evt.Source())
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for events")
		}
	}
	assert.Equal(t, []string{EventLinkConnected, EventLinkDisconnected}, types)
}

// TestNetwork_Events_Payload verifies the connected payload carries the
// link snapshot.
func TestNetwork_Events_Payload(t *testing.T) {
	bus := event.NewBus(event.DefaultBusConfig)
	defer bus.Close()

	received := make(chan event.Event, 1)
	bus.Subscribe([]string{EventLinkConnected}, event.HandlerFunc(func(_ context.Context, evt event.Event) error {
		received <- evt
		return nil
	}))

	net := twoNodeNetwork(WithPublisher(bus))
	l := connectedLink(net)

	select {
	case evt := <-received:
		change, ok := evt.Data().(LinkChange)
		require.True(t, ok)
		assert.Equal(t, l.ID, change.LinkID)
		assert.Equal(t, int64(10), change.OriginID)
		assert.Equal(t, int64(20), change.TargetID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}
