// Package engine provides the editor state machine for modal.
//
// An Engine aggregates the buffer set, the cursor, the scroll offset, the
// window size, the current mode and the dirty flag, and turns key and
// resize events into state transitions.
//
// # Modes
//
// Normal mode: Esc stops the editor, i enters Insert at the cursor, a
// enters Insert one column to the right, h/j/k/l (and the arrow keys)
// move the cursor.
//
// Insert mode: Esc returns to Normal and narrows the column to the
// Normal bound, Enter splits the row, Backspace removes the character
// before the cursor, printable characters are inserted.
//
// # Scrolling
//
// Every transition that moves the cursor re-applies the scroll policy
// from the viewport package, so the cursor is always inside the window.
//
// # Dirty Flag
//
// Transitions that change what a frame would show mark the engine dirty.
// Keys with no binding also mark it dirty unless the engine is created
// with WithUnknownKeysDirty(false). TakeSnapshot copies the state and
// clears the flag in one step.
//
// # Thread Safety
//
// Engine methods are not synchronized, except for the dirty flag which is
// atomic. The owner guards the engine with a sync.RWMutex: transitions
// under the write lock, Dirty, Snapshot and TakeSnapshot under the read
// lock. Clearing the flag under a read lock is safe because no
// transition can run until the lock is released.
package engine
