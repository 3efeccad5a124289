// Package viz is the terminal host for the node cloud.
//
// It supplies what a frame.Driver needs from a display:
//
//   - [TermBackend]: a render.Backend that rasterizes onto a braille [Canvas]
//   - [Host]: the scheduler, input surface and backend for one driver
//   - [Model]: the Bubble Tea program that fires frames on a tea.Tick and
//     turns mouse, keyboard and resize messages into driver input
//   - [Picker]: a preset menu shown before the live view
//
// # Key Bindings
//
//	Space  - Pause/Resume
//	Arrows - Orbit the camera
//	+/-    - Dolly in and out
//	G      - Toggle the globe panel
//	S      - Save an SVG snapshot
//	T      - Cycle color themes
//	?      - Show help overlay
//
// The canvas works in braille sub-pixels, two per cell across and four
// down. Pointer positions and the camera aspect use the same units.
package viz
