package nodewire

import (
	"context"

	"github.com/randalmurphal/nodewire/pkg/nodewire/event"
)

// Event types published by a network configured with a publisher.
const (
	EventLinkConnected       = "link.connected"
	EventLinkDisconnected    = "link.disconnected"
	EventFloatingLinkCreated = "link.floating.created"
	EventFloatingLinkRemoved = "link.floating.removed"
	EventRerouteCreated      = "reroute.created"
	EventRerouteRemoved      = "reroute.removed"
)

// LinkChange is the payload of link events. It carries a snapshot of the
// link's endpoints at the time of the mutation, not a live reference.
type LinkChange struct {
	LinkID     int64  `json:"linkId"`
	Type       string `json:"type,omitempty"`
	OriginID   int64  `json:"originId"`
	OriginSlot int    `json:"originSlot"`
	TargetID   int64  `json:"targetId"`
	TargetSlot int    `json:"targetSlot"`
	ParentID   int64  `json:"parentId,omitempty"`
}

// RerouteChange is the payload of reroute events.
type RerouteChange struct {
	RerouteID int64 `json:"rerouteId"`
	ParentID  int64 `json:"parentId,omitempty"`
	Links     int   `json:"links"`
}

func linkChange(l *Link) LinkChange {
	return LinkChange{
		LinkID:     l.ID,
		Type:       l.Type,
		OriginID:   l.OriginID,
		OriginSlot: l.OriginSlot,
		TargetID:   l.TargetID,
		TargetSlot: l.TargetSlot,
		ParentID:   l.ParentID,
	}
}

func rerouteChange(r *Reroute) RerouteChange {
	return RerouteChange{
		RerouteID: r.ID,
		ParentID:  r.ParentID,
		Links:     r.TotalLinks(),
	}
}

// emit publishes a mutation event when a publisher is configured.
// Publish failures are logged and swallowed; topology mutations never
// fail because a subscriber did.
func (n *Network) emit(eventType string, payload any) {
	if n.cfg.publisher == nil {
		return
	}
	evt := event.New(eventType, "nodewire", payload)
	if err := n.cfg.publisher.Publish(context.Background(), evt); err != nil && n.cfg.logger != nil {
		n.cfg.logger.Warn("event publish failed",
			"event_type", eventType,
			"error", err)
	}
}
