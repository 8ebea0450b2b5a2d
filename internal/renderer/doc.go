// Package renderer turns an engine snapshot into a frame.
//
// A frame is the visible window of the buffer clipped to the viewport,
// with every row padded to the window width and missing rows filled with
// spaces, plus the cursor position relative to the viewport and the
// cursor style of the current mode.
//
// Rendering is a pure function of the snapshot, so it runs without any
// lock held:
//
//	snap, dirty := eng.TakeSnapshot()
//	if dirty {
//		frame := renderer.Render(snap)
//		_, err := frame.WriteTo(os.Stdout)
//	}
//
// The byte form of a frame (Frame.Bytes) sets the cursor shape, hides the
// cursor, homes it, writes the grid rows joined by CRLF, moves the cursor
// to its position and shows it again. It never clears the screen: every
// cell of the window is overwritten on each frame.
package renderer
