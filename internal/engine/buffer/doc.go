// Package buffer provides the text buffer edited by the modal engine.
//
// A Buffer owns a single UTF-8 string interpreted as a sequence of rows
// split on '\n'. Rows and columns are addressed in characters (Unicode
// scalar values), never bytes, so an offset computed from a (col, row)
// pair always lands on a rune boundary.
//
// Basic usage:
//
//	buf := buffer.New("ab\ncd")
//	buf.NumRows()      // 2
//	buf.RowLen(1)      // 2
//	buf.Insert(1, 1, 'X')  // "ab\ncXd"
//	buf.Remove(2, 1)       // "ab\ncd"
//
// Preconditions:
//
// Callers are expected to pass only valid coordinates. A row outside
// [0, NumRows()) or a column beyond the end of its row is a programming
// error and panics with a *PreconditionError describing the call.
//
// Thread Safety:
//
// Buffer is not safe for concurrent use. The engine that owns it
// serializes access, and readers that need a stable view take a Clone.
package buffer
