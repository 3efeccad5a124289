// Package frame runs the per-refresh update-and-draw loop.
//
// The [Driver] owns a scene and, once started, re-registers itself with a
// [Scheduler] on every tick:
//
//	request next frame → orbit update → billboard → drift → rebuild → draw
//
// The loop never blocks and is single-threaded: schedulers deliver ticks and
// surfaces deliver pointer and resize events on the same goroutine, so
// handlers always observe a fully settled scene.
//
// # Teardown
//
// [Driver.Teardown] cancels the pending frame, removes every listener it
// registered and releases the backend and scene. A tick delivered after
// teardown panics with [ErrTornDown].
package frame
