package nodewire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// LinkRecord is the wire shape of a link. It marshals as a named-field
// object and unmarshals from either that object form or the legacy
// positional array
//
//	[id, originId, originSlot, targetId, targetSlot, type]
//
// ParentID is zero when the link attaches directly to its origin slot,
// and is omitted from the object form in that case.
type LinkRecord struct {
	ID         int64  `json:"id"`
	Type       string `json:"type,omitempty"`
	OriginID   int64  `json:"originId"`
	OriginSlot int    `json:"originSlot"`
	TargetID   int64  `json:"targetId"`
	TargetSlot int    `json:"targetSlot"`
	ParentID   int64  `json:"parentId,omitempty"`
}

// linkRecordJSON mirrors LinkRecord without methods, so object-form
// decoding does not recurse into UnmarshalJSON.
type linkRecordJSON struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	OriginID   int64  `json:"originId"`
	OriginSlot int    `json:"originSlot"`
	TargetID   int64  `json:"targetId"`
	TargetSlot int    `json:"targetSlot"`
	ParentID   int64  `json:"parentId"`
}

// UnmarshalJSON accepts both record forms. Legacy arrays have no parentId
// slot, so links decoded from them always attach directly to the origin.
func (r *LinkRecord) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return r.unmarshalLegacy(trimmed)
	}

	var obj linkRecordJSON
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return err
	}
	*r = LinkRecord(obj)
	return nil
}

func (r *LinkRecord) unmarshalLegacy(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 6 {
		return fmt.Errorf("legacy link record: want 6 elements, got %d", len(raw))
	}

	var rec LinkRecord
	ints := []struct {
		idx int
		dst any
	}{
		{0, &rec.ID},
		{1, &rec.OriginID},
		{2, &rec.OriginSlot},
		{3, &rec.TargetID},
		{4, &rec.TargetSlot},
	}
	for _, f := range ints {
		if err := json.Unmarshal(raw[f.idx], f.dst); err != nil {
			return fmt.Errorf("legacy link record element %d: %w", f.idx, err)
		}
	}

	// The type tag is usually a string but older serializers wrote slot
	// type enums as numbers. Preserve those as their literal text.
	if err := json.Unmarshal(raw[5], &rec.Type); err != nil {
		rec.Type = string(bytes.TrimSpace(raw[5]))
		if rec.Type == "null" {
			rec.Type = ""
		}
	}

	*r = rec
	return nil
}

// Record returns the link's wire record.
func (l *Link) Record() LinkRecord {
	return LinkRecord{
		ID:         l.ID,
		Type:       l.Type,
		OriginID:   l.OriginID,
		OriginSlot: l.OriginSlot,
		TargetID:   l.TargetID,
		TargetSlot: l.TargetSlot,
		ParentID:   l.ParentID,
	}
}

// Legacy returns the link in the positional array shape used by older
// serializations. The parent reroute id does not survive this form.
func (l *Link) Legacy() [6]any {
	return [6]any{l.ID, l.OriginID, l.OriginSlot, l.TargetID, l.TargetSlot, l.Type}
}

// RerouteRecord is the wire shape of a reroute. Link id sets serialize as
// sorted slices so records are deterministic. Position is a render
// concern and is not part of the record.
type RerouteRecord struct {
	ID              int64         `json:"id"`
	ParentID        int64         `json:"parentId,omitempty"`
	LinkIDs         []int64       `json:"linkIds"`
	FloatingLinkIDs []int64       `json:"floatingLinkIds,omitempty"`
	Floating        *FloatingMark `json:"floating,omitempty"`
}

// Record returns the reroute's wire record.
func (r *Reroute) Record() RerouteRecord {
	rec := RerouteRecord{
		ID:       r.ID,
		ParentID: r.ParentID,
		LinkIDs:  sortedIDs(r.LinkIDs),
	}
	if len(r.FloatingLinkIDs) > 0 {
		rec.FloatingLinkIDs = sortedIDs(r.FloatingLinkIDs)
	}
	if r.Floating != nil {
		mark := *r.Floating
		rec.Floating = &mark
	}
	return rec
}

// RerouteFromRecord rebuilds a reroute from its wire record. The position
// is not recorded, so it comes back zero; the render layer restores it
// from its own state.
func RerouteFromRecord(rec RerouteRecord) *Reroute {
	r := NewReroute(rec.ID, [2]float32{}, rec.ParentID)
	for _, id := range rec.LinkIDs {
		r.AddLink(id)
	}
	for _, id := range rec.FloatingLinkIDs {
		r.AddFloatingLink(id)
	}
	if rec.Floating != nil {
		mark := *rec.Floating
		r.Floating = &mark
	}
	return r
}

func sortedIDs(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Snapshot is a serializable copy of a network's topology. Entities are
// sorted by id so equal networks produce equal snapshots.
type Snapshot struct {
	Links         []LinkRecord    `json:"links"`
	FloatingLinks []LinkRecord    `json:"floatingLinks,omitempty"`
	Reroutes      []RerouteRecord `json:"reroutes,omitempty"`
}

// Snapshot captures the network's current topology.
func (n *Network) Snapshot() Snapshot {
	snap := Snapshot{
		Links: make([]LinkRecord, 0, len(n.links)),
	}
	for _, l := range n.links {
		snap.Links = append(snap.Links, l.Record())
	}
	for _, l := range n.floatingLinks {
		snap.FloatingLinks = append(snap.FloatingLinks, l.Record())
	}
	for _, r := range n.reroutes {
		snap.Reroutes = append(snap.Reroutes, r.Record())
	}

	sort.Slice(snap.Links, func(i, j int) bool { return snap.Links[i].ID < snap.Links[j].ID })
	sort.Slice(snap.FloatingLinks, func(i, j int) bool { return snap.FloatingLinks[i].ID < snap.FloatingLinks[j].ID })
	sort.Slice(snap.Reroutes, func(i, j int) bool { return snap.Reroutes[i].ID < snap.Reroutes[j].ID })
	return snap
}

// Restore replaces the network's topology with the snapshot's. Id
// counters advance past the highest restored ids so future entities do
// not collide. Node registrations and configuration are untouched.
//
// Restore fails without partial effects when a restored reroute chain is
// cyclic.
func (n *Network) Restore(snap Snapshot) error {
	links := make(map[int64]*Link, len(snap.Links))
	floating := make(map[int64]*Link, len(snap.FloatingLinks))
	reroutes := make(map[int64]*Reroute, len(snap.Reroutes))

	staging := &Network{
		links:         links,
		reroutes:      reroutes,
		floatingLinks: floating,
	}

	var lastLink, lastReroute, lastFloating int64
	for _, rec := range snap.Reroutes {
		reroutes[rec.ID] = RerouteFromRecord(rec)
		if rec.ID > lastReroute {
			lastReroute = rec.ID
		}
	}
	for _, rec := range snap.Links {
		links[rec.ID] = NewLink(rec)
		if rec.ID > lastLink {
			lastLink = rec.ID
		}
	}
	for _, rec := range snap.FloatingLinks {
		floating[rec.ID] = NewLink(rec)
		if rec.ID > lastFloating {
			lastFloating = rec.ID
		}
	}

	for _, l := range links {
		if _, err := RerouteChain(staging, l); err != nil {
			return err
		}
	}
	for _, l := range floating {
		if _, err := RerouteChain(staging, l); err != nil {
			return err
		}
	}

	n.links = links
	n.floatingLinks = floating
	n.reroutes = reroutes
	if lastLink > n.lastLinkID {
		n.lastLinkID = lastLink
	}
	if lastReroute > n.lastRerouteID {
		n.lastRerouteID = lastReroute
	}
	if lastFloating > n.lastFloatingLinkID {
		n.lastFloatingLinkID = lastFloating
	}
	return nil
}
