package nodewire

// Sentinel values for "no such endpoint". A link with an erased endpoint
// carries NoID/NoSlot on that side.
const (
	// NoID marks a missing node, link, or reroute identifier.
	NoID int64 = -1

	// NoSlot marks a missing slot index.
	NoSlot = -1
)

// Reroute identifiers are strictly positive. A parent reroute id of zero
// means "anchored directly at the origin slot", and is omitted from
// serialized records.
const noParent int64 = 0

// SlotSide identifies one end of a link.
type SlotSide string

const (
	// SideInput is the target (input-slot) end of a link.
	SideInput SlotSide = "input"

	// SideOutput is the origin (output-slot) end of a link.
	SideOutput SlotSide = "output"
)

// valid reports whether s is one of the two defined sides.
func (s SlotSide) valid() bool {
	return s == SideInput || s == SideOutput
}

// Opposite returns the other side.
func (s SlotSide) Opposite() SlotSide {
	if s == SideInput {
		return SideOutput
	}
	return SideInput
}

// FloatingMark records which side of a reroute's terminating link is
// detached. It is set on the last reroute of a chain when a disconnect
// preserves the chain as a dangling anchor.
type FloatingMark struct {
	Side SlotSide `json:"slotType"`
}
