package nodewire

// Link is a directed edge from an output slot to an input slot, optionally
// routed through a chain of reroutes. One endpoint may be intentionally
// detached ("floating"), in which case the link is anchored at a reroute
// instead of a slot.
//
// A link is identified by ID within its network. ID is NoID for links not
// yet registered, such as a floating replacement produced by AsFloating
// before AddFloatingLink assigns it an id.
type Link struct {
	ID   int64
	Type string

	// Origin is the output side: node id plus output slot index.
	// Both are NoID/NoSlot when the output end is detached.
	OriginID   int64
	OriginSlot int

	// Target is the input side: node id plus input slot index.
	// Both are NoID/NoSlot when the input end is detached.
	TargetID   int64
	TargetSlot int

	// ParentID is the nearest upstream reroute, zero when the link
	// attaches directly to its origin slot.
	ParentID int64
}

// NewLink builds a Link from a record. No validation is performed beyond
// structural shape; slot-type compatibility is the caller's concern.
func NewLink(rec LinkRecord) *Link {
	l := &Link{}
	l.Configure(rec)
	return l
}

// Configure overwrites every field from the record. It does not merge:
// fields absent from the record reset to their zero values.
func (l *Link) Configure(rec LinkRecord) {
	l.ID = rec.ID
	l.Type = rec.Type
	l.OriginID = rec.OriginID
	l.OriginSlot = rec.OriginSlot
	l.TargetID = rec.TargetID
	l.TargetSlot = rec.TargetSlot
	l.ParentID = rec.ParentID
}

// SegmentID implements Segment.
func (l *Link) SegmentID() int64 { return l.ID }

// ParentRerouteID implements Segment.
func (l *Link) ParentRerouteID() int64 { return l.ParentID }

// HasOrigin reports whether the link starts at the given output slot.
func (l *Link) HasOrigin(nodeID int64, outputIndex int) bool {
	return l.OriginID == nodeID && l.OriginSlot == outputIndex
}

// HasTarget reports whether the link ends at the given input slot.
func (l *Link) HasTarget(nodeID int64, inputIndex int) bool {
	return l.TargetID == nodeID && l.TargetSlot == inputIndex
}

// IsFloatingOutput reports whether the output (origin) end is detached.
func (l *Link) IsFloatingOutput() bool {
	return l.OriginID == NoID && l.OriginSlot == NoSlot
}

// IsFloatingInput reports whether the input (target) end is detached.
func (l *Link) IsFloatingInput() bool {
	return l.TargetID == NoID && l.TargetSlot == NoSlot
}

// IsFloating reports whether either end is detached. A link detached on
// both ends is meaningless; callers must not construct one.
func (l *Link) IsFloating() bool {
	return l.IsFloatingOutput() || l.IsFloatingInput()
}

// Reroutes returns the link's reroute chain, origin-nearest first, up to
// and including the reroute the link is parented on. Empty when the link
// attaches directly to its origin slot.
func (l *Link) Reroutes(net *Network) ([]*Reroute, error) {
	return RerouteChain(net, l)
}

// FirstReroute returns the origin-nearest reroute of the chain, or nil.
func (l *Link) FirstReroute(net *Network) (*Reroute, error) {
	chain, err := l.Reroutes(net)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, nil
	}
	return chain[0], nil
}

// OriginNode resolves the node at the output end, or nil when the link is
// floating on that side or the node is unknown.
func (l *Link) OriginNode(net *Network) Node {
	if l.OriginID == NoID {
		return nil
	}
	return net.GetNodeByID(l.OriginID)
}

// TargetNode resolves the node at the input end, or nil when the link is
// floating on that side or the node is unknown.
func (l *Link) TargetNode(net *Network) Node {
	if l.TargetID == NoID {
		return nil
	}
	return net.GetNodeByID(l.TargetID)
}

// AsFloating returns a copy of the link with the named side erased and the
// given reroute as its new anchor. The copy has ID NoID until registered
// via Network.AddFloatingLink.
//
// detach names the side that is removed: SideOutput erases the origin,
// SideInput erases the target. Panics on any other value.
func (l *Link) AsFloating(detach SlotSide, parentID int64) *Link {
	fl := *l
	fl.ID = NoID
	fl.ParentID = parentID

	switch detach {
	case SideOutput:
		fl.OriginID = NoID
		fl.OriginSlot = NoSlot
	case SideInput:
		fl.TargetID = NoID
		fl.TargetSlot = NoSlot
	default:
		panic("nodewire: invalid slot side: " + string(detach))
	}
	return &fl
}

// Disconnect removes the link from the network and releases its reroute
// chain.
//
// keep controls what happens to the chain:
//   - SideKeepNone: every reroute that ends up with no links is deleted.
//   - SideOutput: the chain is preserved. If its last reroute carried only
//     this link, a floating replacement keeping the origin end is
//     registered and the reroute is marked floating on the output side.
//   - SideInput: the chain is preserved and a floating replacement keeping
//     the target end is registered on the last reroute, which is marked
//     floating on the input side.
//
// When the chain walk detects a cycle, Disconnect returns the error
// before mutating anything.
func (l *Link) Disconnect(net *Network, keep SlotSide) error {
	if keep != SideKeepNone && !keep.valid() {
		panic("nodewire: invalid slot side: " + string(keep))
	}

	chain, err := l.Reroutes(net)
	if err != nil {
		return err
	}

	var last *Reroute
	if len(chain) > 0 {
		last = chain[len(chain)-1]
	}

	var floating *Link
	switch {
	case keep == SideOutput && last != nil &&
		len(last.LinkIDs) == 1 && len(last.FloatingLinkIDs) == 0:
		// A 1:1 tail: keep the chain as a dangling anchor off the origin.
		floating = l.AsFloating(SideInput, last.ID)
		last.Floating = &FloatingMark{Side: SideOutput}
	case keep == SideInput && last != nil:
		floating = l.AsFloating(SideOutput, last.ID)
		last.Floating = &FloatingMark{Side: SideInput}
	}
	if floating != nil {
		net.AddFloatingLink(floating)
	}

	for _, r := range chain {
		r.RemoveLink(l.ID)
		if r.TotalLinks() == 0 && keep == SideKeepNone {
			net.dropReroute(r.ID)
		}
	}

	net.removeLinkEntry(l)
	return nil
}

// SideKeepNone requests no chain preservation on disconnect.
const SideKeepNone SlotSide = ""
