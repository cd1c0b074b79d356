package nodewire

// Test fixtures used across tests.

// twoNodeNetwork returns a network with node 10 (one number output) and
// node 20 (two number inputs).
func twoNodeNetwork(opts ...Option) *Network {
	net := NewNetwork(opts...)
	net.AddNode(&BasicNode{
		ID:      10,
		Title:   "source",
		Outputs: []OutputSlot{{Name: "value", Type: "number"}},
	})
	net.AddNode(&BasicNode{
		ID:    20,
		Title: "sink",
		Inputs: []InputSlot{
			{Name: "a", Type: "number"},
			{Name: "b", Type: "number"},
		},
	})
	return net
}

// connectedLink wires node 10 output 0 to node 20 input 0.
func connectedLink(net *Network) *Link {
	l, err := net.Connect(10, 0, 20, 0, "number", 0)
	if err != nil {
		panic(err)
	}
	return l
}

// chainOf inserts n reroutes on the link, returning them origin-nearest
// first.
func chainOf(net *Network, l *Link, n int) []*Reroute {
	chain := make([]*Reroute, 0, n)
	for i := 0; i < n; i++ {
		chain = append(chain, net.CreateReroute([2]float32{float32(i) * 40, 0}, l))
	}
	return chain
}

// corruptChain builds two reroutes whose parent ids form a loop and a
// link parented on the loop. It bypasses the public API since no
// operation can produce this state.
func corruptChain(net *Network) *Link {
	r1 := NewReroute(101, [2]float32{}, 102)
	r2 := NewReroute(102, [2]float32{}, 101)
	net.reroutes[r1.ID] = r1
	net.reroutes[r2.ID] = r2

	l := &Link{
		ID: 900, Type: "number",
		OriginID: 10, OriginSlot: 0,
		TargetID: 20, TargetSlot: 0,
		ParentID: r2.ID,
	}
	net.links[l.ID] = l
	r1.AddLink(l.ID)
	r2.AddLink(l.ID)
	return l
}
