// Package key provides the logical key identities the editor reacts to.
//
// Terminal backends translate their native events into key.Event values:
// special keys carry a Key constant, characters use KeyRune with the
// character in Event.Rune.
package key
