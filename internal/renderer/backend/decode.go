package backend

import (
	"bytes"
	"strconv"
	"unicode/utf8"

	"github.com/dshills/modal/internal/input/key"
)

// maxSequence bounds the length of an escape sequence. Longer input
// without a final byte is discarded.
const maxSequence = 32

// decode splits raw terminal input into events. Bytes that may begin an
// unfinished sequence or character are returned as rest so the caller
// can prepend them to the next read. An ESC that does not start a CSI or
// SS3 sequence is the Escape key, and the bytes after it decode as keys
// of their own: "\x1bj" is Escape then j, never Alt+j.
func decode(p []byte) (events []Event, rest []byte) {
	for len(p) > 0 {
		ev, n := decodeOne(p)
		if n == 0 {
			break
		}
		if ev.Type != EventNone {
			events = append(events, ev)
		}
		p = p[n:]
	}
	return events, p
}

// decodeOne decodes the first event in p and returns the number of bytes
// it used, or 0 if p ends before the event does.
func decodeOne(p []byte) (Event, int) {
	b := p[0]
	switch {
	case b == 0x1b:
		return decodeEscape(p)
	case b == '\r' || b == '\n':
		return KeyEvent(key.KeyEnter, 0, ModNone), 1
	case b == '\t':
		return KeyEvent(key.KeyTab, 0, ModNone), 1
	case b == 0x7f || b == 0x08:
		return KeyEvent(key.KeyBackspace, 0, ModNone), 1
	case b == 0:
		return Event{}, 1
	case b <= 0x1a:
		return KeyEvent(key.KeyRune, 'a'+rune(b-1), ModCtrl), 1
	case b < 0x20:
		return Event{}, 1
	case b < utf8.RuneSelf:
		return RuneEvent(rune(b)), 1
	}

	if !utf8.FullRune(p) {
		return Event{}, 0
	}
	r, size := utf8.DecodeRune(p)
	if r == utf8.RuneError && size == 1 {
		return Event{}, 1
	}
	return RuneEvent(r), size
}

func decodeEscape(p []byte) (Event, int) {
	if len(p) == 1 {
		return KeyEvent(key.KeyEscape, 0, ModNone), 1
	}

	switch p[1] {
	case '[':
		return decodeCSI(p)
	case 'O':
		if len(p) < 3 {
			return Event{}, 0
		}
		if k, ok := arrowKey(p[2]); ok {
			return KeyEvent(k, 0, ModNone), 3
		}
		return Event{}, 3
	}
	return KeyEvent(key.KeyEscape, 0, ModNone), 1
}

// decodeCSI decodes "ESC [ params final".
func decodeCSI(p []byte) (Event, int) {
	end := -1
	for i := 2; i < len(p) && i < maxSequence; i++ {
		if p[i] >= 0x40 && p[i] <= 0x7e {
			end = i
			break
		}
	}
	if end < 0 {
		if len(p) >= maxSequence {
			return Event{}, maxSequence
		}
		return Event{}, 0
	}

	params := bytes.Split(p[2:end], []byte{';'})
	final := p[end]
	n := end + 1

	if k, ok := arrowKey(final); ok {
		return KeyEvent(k, 0, csiModifiers(params)), n
	}
	if final == '~' && len(params) > 0 && string(params[0]) == "3" {
		return KeyEvent(key.KeyDelete, 0, csiModifiers(params)), n
	}
	return Event{}, n
}

// csiModifiers reads the xterm modifier parameter, "1;5A" for Ctrl+Up.
func csiModifiers(params [][]byte) ModMask {
	if len(params) < 2 {
		return ModNone
	}
	v, err := strconv.Atoi(string(params[1]))
	if err != nil || v < 2 {
		return ModNone
	}
	bits := v - 1
	var mod ModMask
	if bits&1 != 0 {
		mod |= ModShift
	}
	if bits&2 != 0 {
		mod |= ModAlt
	}
	if bits&4 != 0 {
		mod |= ModCtrl
	}
	if bits&8 != 0 {
		mod |= ModMeta
	}
	return mod
}

func arrowKey(b byte) (key.Key, bool) {
	switch b {
	case 'A':
		return key.KeyUp, true
	case 'B':
		return key.KeyDown, true
	case 'C':
		return key.KeyRight, true
	case 'D':
		return key.KeyLeft, true
	default:
		return key.KeyNone, false
	}
}
