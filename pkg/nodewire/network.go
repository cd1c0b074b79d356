package nodewire

import (
	"context"
	"errors"

	"github.com/randalmurphal/nodewire/pkg/nodewire/observability"
)

// Network is the single source of truth for the link, reroute, and
// floating-link collections of one graph, and arbitrates every operation
// that touches more than one entity.
//
// Network is NOT safe for concurrent use. Editors drive it from a single
// goroutine (one user gesture produces one short, deterministic sequence
// of calls); no operation suspends mid-mutation, so each call is atomic
// with respect to the others.
//
// Entities must always be obtained through the network's lookups. A link
// or reroute removed from its collection must not be mutated further by a
// caller still holding a reference.
type Network struct {
	links         map[int64]*Link
	reroutes      map[int64]*Reroute
	floatingLinks map[int64]*Link

	// nodes backs GetNodeByID when no external resolver is configured.
	nodes    map[int64]Node
	resolver NodeResolver

	lastLinkID         int64
	lastRerouteID      int64
	lastFloatingLinkID int64

	cfg networkConfig
}

// NewNetwork creates an empty network.
func NewNetwork(opts ...Option) *Network {
	n := &Network{
		links:         make(map[int64]*Link),
		reroutes:      make(map[int64]*Reroute),
		floatingLinks: make(map[int64]*Link),
		nodes:         make(map[int64]Node),
		cfg:           defaultNetworkConfig(),
	}
	for _, opt := range opts {
		opt(&n.cfg)
	}
	n.resolver = n.cfg.resolver
	return n
}

// AddNode registers a node with the network's built-in resolver. It is a
// no-op for nil nodes. Networks configured with an external NodeResolver
// ignore the built-in registry.
func (n *Network) AddNode(node Node) {
	if node == nil {
		return
	}
	n.nodes[node.NodeID()] = node
}

// GetNodeByID resolves a node id, returning nil for NoID and unknown ids.
func (n *Network) GetNodeByID(id int64) Node {
	if id == NoID {
		return nil
	}
	if n.resolver != nil {
		return n.resolver.GetNodeByID(id)
	}
	return n.nodes[id]
}

// GetLink returns the link with the given id, or nil.
func (n *Network) GetLink(id int64) *Link {
	return n.links[id]
}

// GetReroute returns the reroute with the given id. Zero and unknown ids
// yield nil; the call never panics, so callers may pass a segment's
// parent id without checking it first.
func (n *Network) GetReroute(id int64) *Reroute {
	if id == noParent {
		return nil
	}
	return n.reroutes[id]
}

// GetFloatingLink returns the floating link with the given id, or nil.
func (n *Network) GetFloatingLink(id int64) *Link {
	return n.floatingLinks[id]
}

// LinkCount returns the number of registered links.
func (n *Network) LinkCount() int { return len(n.links) }

// RerouteCount returns the number of registered reroutes.
func (n *Network) RerouteCount() int { return len(n.reroutes) }

// FloatingLinkCount returns the number of registered floating links.
func (n *Network) FloatingLinkCount() int { return len(n.floatingLinks) }

// Connect creates a link from an output slot to an input slot and
// registers it, threading it through the reroute chain ending at parentID
// (zero for a direct attachment). Both endpoints must be known; use
// AddFloatingLink for dangling links.
//
// Slot compatibility and node-slot bookkeeping (writing the link id into
// the input slot, appending to the output slot's link list) are the
// caller's responsibility.
//
// Connect returns ErrCycleDetected without mutating anything when the
// reroute chain at parentID is corrupt.
func (n *Network) Connect(originID int64, originSlot int, targetID int64, targetSlot int, linkType string, parentID int64) (*Link, error) {
	ctx, span := n.cfg.spans.StartConnectSpan(context.Background(), originID, targetID)

	l := &Link{
		ID:         n.lastLinkID + 1,
		Type:       linkType,
		OriginID:   originID,
		OriginSlot: originSlot,
		TargetID:   targetID,
		TargetSlot: targetSlot,
		ParentID:   parentID,
	}

	chain, err := RerouteChain(n, l)
	if err != nil {
		n.logChainError(err)
		n.cfg.spans.EndSpanWithError(span, err)
		return nil, err
	}

	n.lastLinkID++
	n.links[l.ID] = l
	for _, r := range chain {
		r.AddLink(l.ID)
	}
	n.cfg.spans.EndSpanWithError(span, nil)

	observability.LogLinkConnected(n.cfg.logger, l.ID, l.OriginID, l.OriginSlot, l.TargetID, l.TargetSlot)
	n.cfg.metrics.RecordLinkConnected(ctx, len(chain))
	n.emit(EventLinkConnected, linkChange(l))
	return l, nil
}

// ConnectRefs is the direction-checked form of Connect. It panics when
// the refs cannot describe a valid connection shape: the origin must be
// an output slot and the target an input slot. These are caller logic
// defects, not runtime conditions, so they fail loudly.
func (n *Network) ConnectRefs(from, to SlotRef, linkType string) (*Link, error) {
	if from.Side != SideOutput {
		panic("nodewire: connect origin must be an output slot")
	}
	if to.Side != SideInput {
		panic("nodewire: cannot connect an output to another output")
	}
	return n.Connect(from.NodeID, from.Slot, to.NodeID, to.Slot, linkType, noParent)
}

// RemoveLink disconnects and removes the link with the given id. Unknown
// ids are a no-op. See Link.Disconnect for the keep semantics.
func (n *Network) RemoveLink(id int64, keep SlotSide) error {
	l := n.links[id]
	if l == nil {
		return nil
	}
	_, span := n.cfg.spans.StartDisconnectSpan(context.Background(), id)
	err := l.Disconnect(n, keep)
	if err != nil {
		n.logChainError(err)
	}
	n.cfg.spans.EndSpanWithError(span, err)
	return err
}

// logChainError reports a traversal failure through the configured logger.
func (n *Network) logChainError(err error) {
	var chainErr *ChainError
	if errors.As(err, &chainErr) {
		observability.LogChainCycle(n.cfg.logger, chainErr.SegmentID)
	}
}

// AddFloatingLink registers a link whose detached end is anchored at a
// reroute. Links with ID NoID are assigned the next floating-link id.
// Returns the registered link.
//
// The link must actually be floating; registering a fully attached link
// is a caller contract violation and is not defended against here.
func (n *Network) AddFloatingLink(l *Link) *Link {
	if l.ID == NoID {
		n.lastFloatingLinkID++
		l.ID = n.lastFloatingLinkID
	} else if l.ID > n.lastFloatingLinkID {
		n.lastFloatingLinkID = l.ID
	}
	n.floatingLinks[l.ID] = l

	if r := n.GetReroute(l.ParentID); r != nil {
		r.AddFloatingLink(l.ID)
	}

	observability.LogFloatingLinkCreated(n.cfg.logger, l.ID, l.ParentID)
	n.cfg.metrics.RecordFloatingLink(context.Background())
	n.emit(EventFloatingLinkCreated, linkChange(l))
	return l
}

// RemoveFloatingLink deregisters a floating link and releases its anchor
// reroute, garbage-collecting the reroute when nothing else uses it.
func (n *Network) RemoveFloatingLink(l *Link) {
	if l == nil {
		return
	}
	delete(n.floatingLinks, l.ID)

	if r := n.GetReroute(l.ParentID); r != nil {
		r.RemoveFloatingLink(l.ID)
		if r.TotalLinks() == 0 {
			n.dropReroute(r.ID)
		}
	}
	n.emit(EventFloatingLinkRemoved, linkChange(l))
}

// CreateReroute inserts a new waypoint on the given segment. The reroute
// takes over the segment's parent, the segment re-parents onto it, and
// every link traveling through the segment inherits membership.
func (n *Network) CreateReroute(pos [2]float32, before Segment) *Reroute {
	n.lastRerouteID++
	r := NewReroute(n.lastRerouteID, pos, before.ParentRerouteID())
	n.reroutes[r.ID] = r

	switch s := before.(type) {
	case *Link:
		if n.floatingLinks[s.ID] == s {
			// The dangling end now terminates at the new waypoint.
			r.AddFloatingLink(s.ID)
			if anchor := n.GetReroute(s.ParentID); anchor != nil {
				r.Floating = anchor.Floating
				anchor.RemoveFloatingLink(s.ID)
			}
		} else {
			r.AddLink(s.ID)
		}
		s.ParentID = r.ID
	case *Reroute:
		for id := range s.LinkIDs {
			r.AddLink(id)
		}
		s.ParentID = r.ID
	}

	observability.LogRerouteCreated(n.cfg.logger, r.ID, r.ParentID)
	n.cfg.metrics.RecordRerouteCreated(context.Background())
	n.emit(EventRerouteCreated, rerouteChange(r))
	return r
}

// RemoveReroute deletes a reroute and splices the chain: every link,
// floating link, and reroute parented on it re-parents onto its own
// parent. Floating links left without any anchor are removed outright,
// since a floating link exists only to dangle from a waypoint. Unknown
// ids are a no-op.
func (n *Network) RemoveReroute(id int64) {
	r := n.reroutes[id]
	if r == nil {
		return
	}
	parentID := r.ParentID

	for _, l := range n.links {
		if l.ParentID == id {
			l.ParentID = parentID
		}
	}
	for _, rr := range n.reroutes {
		if rr.ID != id && rr.ParentID == id {
			rr.ParentID = parentID
		}
	}

	var orphaned []*Link
	for _, fl := range n.floatingLinks {
		if fl.ParentID != id {
			continue
		}
		fl.ParentID = parentID
		if parentID == noParent {
			orphaned = append(orphaned, fl)
		} else if anchor := n.GetReroute(parentID); anchor != nil {
			anchor.AddFloatingLink(fl.ID)
			if anchor.Floating == nil {
				anchor.Floating = r.Floating
			}
		}
	}

	n.dropReroute(id)
	for _, fl := range orphaned {
		n.RemoveFloatingLink(fl)
	}
}

// dropReroute deletes the map entry and reports the removal. It performs
// no splicing; RemoveReroute is the public, chain-preserving form.
func (n *Network) dropReroute(id int64) {
	r := n.reroutes[id]
	if r == nil {
		return
	}
	delete(n.reroutes, id)

	observability.LogRerouteRemoved(n.cfg.logger, id)
	n.cfg.metrics.RecordRerouteRemoved(context.Background())
	n.emit(EventRerouteRemoved, rerouteChange(r))
}

// removeLinkEntry finalizes a disconnect: the link leaves the collection
// and the removal is reported.
func (n *Network) removeLinkEntry(l *Link) {
	delete(n.links, l.ID)

	observability.LogLinkDisconnected(n.cfg.logger, l.ID)
	n.cfg.metrics.RecordLinkDisconnected(context.Background())
	n.emit(EventLinkDisconnected, linkChange(l))
}
