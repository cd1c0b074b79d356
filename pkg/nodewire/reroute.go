package nodewire

// Reroute is a named waypoint on one or more link paths. Reroutes form a
// singly-linked chain back toward a link's origin via ParentID, and track
// which links and floating links currently pass through or terminate at
// them.
//
// A reroute whose TotalLinks reaches zero has no reason to exist and is
// garbage-collected during disconnects unless the caller asked for the
// chain to be preserved.
type Reroute struct {
	ID int64

	// ParentID is the upstream reroute, zero when this reroute attaches
	// directly to the origin slot.
	ParentID int64

	// Pos is the canvas position of the waypoint. It is a render concern:
	// the topology core stores it but never interprets it, and it is not
	// part of the reroute's wire record.
	Pos [2]float32

	// LinkIDs holds the ids of links routed through this waypoint.
	LinkIDs map[int64]struct{}

	// FloatingLinkIDs holds the ids of floating links terminating here.
	FloatingLinkIDs map[int64]struct{}

	// Floating records which side of the terminating floating link is
	// detached, nil when no floating link ends here.
	Floating *FloatingMark
}

// NewReroute creates a reroute at the given position, parented on
// parentID (zero for "attached directly to the origin").
func NewReroute(id int64, pos [2]float32, parentID int64) *Reroute {
	return &Reroute{
		ID:              id,
		ParentID:        parentID,
		Pos:             pos,
		LinkIDs:         make(map[int64]struct{}),
		FloatingLinkIDs: make(map[int64]struct{}),
	}
}

// SegmentID implements Segment.
func (r *Reroute) SegmentID() int64 { return r.ID }

// ParentRerouteID implements Segment.
func (r *Reroute) ParentRerouteID() int64 { return r.ParentID }

// TotalLinks returns the number of links and floating links this reroute
// serves.
func (r *Reroute) TotalLinks() int {
	return len(r.LinkIDs) + len(r.FloatingLinkIDs)
}

// AddLink records a link as passing through this waypoint.
func (r *Reroute) AddLink(linkID int64) {
	if r.LinkIDs == nil {
		r.LinkIDs = make(map[int64]struct{})
	}
	r.LinkIDs[linkID] = struct{}{}
}

// RemoveLink forgets a link. Removing an unknown id is a no-op.
func (r *Reroute) RemoveLink(linkID int64) {
	delete(r.LinkIDs, linkID)
}

// AddFloatingLink records a floating link as terminating at this waypoint.
func (r *Reroute) AddFloatingLink(linkID int64) {
	if r.FloatingLinkIDs == nil {
		r.FloatingLinkIDs = make(map[int64]struct{})
	}
	r.FloatingLinkIDs[linkID] = struct{}{}
}

// RemoveFloatingLink forgets a floating link. When the last one goes, the
// floating marker is cleared as well.
func (r *Reroute) RemoveFloatingLink(linkID int64) {
	delete(r.FloatingLinkIDs, linkID)
	if len(r.FloatingLinkIDs) == 0 {
		r.Floating = nil
	}
}

// RemoveAllFloatingLinks deregisters every floating link terminating at
// this reroute from the network.
func (r *Reroute) RemoveAllFloatingLinks(net *Network) {
	ids := make([]int64, 0, len(r.FloatingLinkIDs))
	for id := range r.FloatingLinkIDs {
		ids = append(ids, id)
	}
	for _, id := range ids {
		if fl := net.GetFloatingLink(id); fl != nil {
			net.RemoveFloatingLink(fl)
		} else {
			r.RemoveFloatingLink(id)
		}
	}
}

// Reroutes returns this reroute's own chain, origin-nearest first and
// ending with the reroute itself.
func (r *Reroute) Reroutes(net *Network) ([]*Reroute, error) {
	chain, err := RerouteChain(net, r)
	if err != nil {
		return nil, err
	}
	return append(chain, r), nil
}

// FindNextReroute searches this reroute's upstream chain for the reroute
// with the given id. See FindReroute for the three-way result contract.
func (r *Reroute) FindNextReroute(net *Network, targetID int64) (*Reroute, error) {
	return FindReroute(net, r, targetID)
}

// Remove deregisters the reroute from the network, splicing the chain so
// downstream segments re-parent onto this reroute's own parent.
func (r *Reroute) Remove(net *Network) {
	net.RemoveReroute(r.ID)
}
