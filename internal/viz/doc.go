// Package viz renders a gear assembly live in the terminal.
//
// The package implements a Bubble Tea program:
//
//   - [Model]: drives the assembly from frame ticks and mouse motion
//   - [Canvas]: Braille-based pixel canvas the gears are drawn on
//   - [View]: maps scene coordinates to canvas sub-pixels and back
//
// # Key Bindings
//
//	Space - Pause/Resume the clock
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
//
// Moving the mouse across a gear drags the whole train with it.
package viz
