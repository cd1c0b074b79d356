package nodewire

import (
	"encoding/json"
	"fmt"

	"github.com/randalmurphal/nodewire/pkg/nodewire/store"
)

// SaveSnapshot serializes the network's topology and saves it under
// graphID, returning the new revision.
func (n *Network) SaveSnapshot(st store.Store, graphID string) (int64, error) {
	data, err := json.Marshal(n.Snapshot())
	if err != nil {
		return 0, fmt.Errorf("marshal snapshot: %w", err)
	}

	rev, err := st.Save(graphID, data)
	if err != nil {
		return 0, fmt.Errorf("save snapshot: %w", err)
	}
	return rev, nil
}

// LoadSnapshot restores the network from the newest saved revision of
// graphID, returning the revision loaded. The network is unchanged on
// error. Returns store.ErrNotFound when the graph has no snapshots.
func (n *Network) LoadSnapshot(st store.Store, graphID string) (int64, error) {
	data, rev, err := st.LoadLatest(graphID)
	if err != nil {
		return 0, err
	}
	return rev, n.restoreData(data)
}

// LoadSnapshotRevision restores the network from a specific revision.
func (n *Network) LoadSnapshotRevision(st store.Store, graphID string, revision int64) error {
	data, err := st.Load(graphID, revision)
	if err != nil {
		return err
	}
	return n.restoreData(data)
}

func (n *Network) restoreData(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if err := n.Restore(snap); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	return nil
}
