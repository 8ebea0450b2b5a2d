// Package mode provides the editing modes of the modal editor.
//
// There are two modes. Normal mode interprets keys as commands and keeps
// the cursor on an existing character. Insert mode inserts typed
// characters and allows the cursor one position past the end of a row.
//
// MaxCol is the single place that encodes this difference; the engine
// and the cursor model ask it for the column bound of a row instead of
// repeating the arithmetic.
package mode
