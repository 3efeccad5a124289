// Package scene holds the node cloud owned by the frame driver.
//
// A [Scene] is built once from a fixed payload list and a sampled layout:
//
//   - [Node]: logical position, proxy position, neighbour list, payload
//   - [Payload]: validated content descriptor attached to a node
//   - [HoverState]: the node currently under the pointer, if any
//
// # Ownership
//
// A Scene is not safe for concurrent use. The driver mutates it once per
// tick and pointer handlers read it between ticks on the same goroutine.
package scene
