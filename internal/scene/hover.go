package scene

// HoverState records which node, if any, is under the pointer.
type HoverState struct {
	index int
	set   bool
}

// NoHover is the state with nothing hovered.
var NoHover = HoverState{}

// Hovering returns the state for node idx. Negative indices mean none.
func Hovering(idx int) HoverState {
	if idx < 0 {
		return NoHover
	}
	return HoverState{index: idx, set: true}
}

// Index returns the hovered node and whether there is one.
func (h HoverState) Index() (int, bool) { return h.index, h.set }

// Active reports whether a node is hovered.
func (h HoverState) Active() bool { return h.set }

// Is reports whether idx is the hovered node.
func (h HoverState) Is(idx int) bool { return h.set && h.index == idx }
