package nodewire

// Node is the collaborator contract the topology core needs from graph
// nodes: an identity and bounds-checked access to slot collections. Slot
// index validation is the node's concern, not the network's.
//
// The core never mutates node slots. Writing a link id into an input slot
// (or appending to an output slot's link list) is done by the higher-level
// connect routine that drives the network.
type Node interface {
	// NodeID returns the node's identifier within its network.
	NodeID() int64

	// InputSlot returns the input at index i, or nil when out of range.
	InputSlot(i int) *InputSlot

	// OutputSlot returns the output at index i, or nil when out of range.
	OutputSlot(i int) *OutputSlot

	// InputCount returns the number of input slots.
	InputCount() int

	// OutputCount returns the number of output slots.
	OutputCount() int
}

// NodeResolver resolves node ids for origin/target lookups.
type NodeResolver interface {
	// GetNodeByID returns the node, or nil for unknown ids.
	GetNodeByID(id int64) Node
}

// InputSlot is an input connection point. An input accepts at most one
// link; LinkID is zero when nothing is connected.
type InputSlot struct {
	Name   string
	Type   string
	LinkID int64
}

// OutputSlot is an output connection point. An output fans out to any
// number of links.
type OutputSlot struct {
	Name    string
	Type    string
	LinkIDs []int64
}

// SlotRef names one slot on one node, including which side it sits on.
// It is the argument shape for direction-checked connects.
type SlotRef struct {
	NodeID int64
	Slot   int
	Side   SlotSide
}

// BasicNode is a minimal Node implementation for embedders that need no
// custom node type, and for tests and examples.
type BasicNode struct {
	ID      int64
	Title   string
	Inputs  []InputSlot
	Outputs []OutputSlot
}

// NodeID implements Node.
func (n *BasicNode) NodeID() int64 { return n.ID }

// InputSlot implements Node.
func (n *BasicNode) InputSlot(i int) *InputSlot {
	if i < 0 || i >= len(n.Inputs) {
		return nil
	}
	return &n.Inputs[i]
}

// OutputSlot implements Node.
func (n *BasicNode) OutputSlot(i int) *OutputSlot {
	if i < 0 || i >= len(n.Outputs) {
		return nil
	}
	return &n.Outputs[i]
}

// InputCount implements Node.
func (n *BasicNode) InputCount() int { return len(n.Inputs) }

// OutputCount implements Node.
func (n *BasicNode) OutputCount() int { return len(n.Outputs) }
