package nodewire

// Segment is anything that can sit on a reroute chain: a link or a
// reroute. Both expose an identifier and the id of the nearest upstream
// reroute (zero when anchored directly at the origin slot).
//
// Segment is a structural capability, not a hierarchy: Link and Reroute
// implement it independently so chain traversal can treat them uniformly.
type Segment interface {
	// SegmentID returns the entity's own identifier.
	SegmentID() int64

	// ParentRerouteID returns the id of the nearest upstream reroute,
	// or zero when the segment attaches directly to the origin.
	ParentRerouteID() int64
}

// RerouteChain returns the ordered reroute sequence between the origin and
// the given segment: origin-nearest first, segment-nearest last. The chain
// includes the reroute the segment is parented on; it is empty when the
// segment has no parent.
//
// A corrupt chain (a reroute whose ancestry loops back on itself) yields a
// ChainError wrapping ErrCycleDetected. A dangling parent id ends the walk
// without error.
func RerouteChain(net *Network, segment Segment) ([]*Reroute, error) {
	id := segment.ParentRerouteID()
	if id == noParent {
		return nil, nil
	}

	visited := make(map[int64]struct{})
	var chain []*Reroute
	for id != noParent {
		if _, seen := visited[id]; seen {
			return nil, &ChainError{SegmentID: id}
		}
		visited[id] = struct{}{}

		r := net.GetReroute(id)
		if r == nil {
			break
		}
		chain = append(chain, r)
		id = r.ParentID
	}

	// Walked target-to-origin; callers want origin-first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// FindReroute walks the chain upstream of segment looking for the reroute
// with the given id. The three outcomes are distinct:
//
//	(r, nil)                 found
//	(nil, nil)               chain ends without reaching targetID
//	(nil, ErrCycleDetected)  the chain loops; corruption, not absence
//
// Collapsing the last two would hide real graph corruption from callers.
func FindReroute(net *Network, segment Segment, targetID int64) (*Reroute, error) {
	visited := make(map[int64]struct{})
	for id := segment.ParentRerouteID(); id != noParent; {
		if _, seen := visited[id]; seen {
			return nil, &ChainError{SegmentID: id}
		}
		visited[id] = struct{}{}

		r := net.GetReroute(id)
		if r == nil {
			return nil, nil
		}
		if r.ID == targetID {
			return r, nil
		}
		id = r.ParentID
	}
	return nil, nil
}
