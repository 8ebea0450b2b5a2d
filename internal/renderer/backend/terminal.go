package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modal/internal/input/key"
)

// Terminal implements Backend using tcell for terminal input.
type Terminal struct {
	screen   tcell.Screen
	mu       sync.Mutex
	started  bool
	finished bool
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen creates a terminal backend on an existing screen,
// such as a tcell simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.started = true
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started || t.finished {
		return
	}
	t.finished = true
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// Screen returns the underlying tcell screen so a ScreenSink can draw on
// the same terminal.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// PollEvent returns the next key or resize event. Mouse, paste and focus
// events are skipped. Returns EventClosed once the screen is finalized.
func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{Type: EventClosed}
		}
		if out := convertEvent(ev); out.Type != EventNone {
			return out
		}
	}
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, r, mod := convertKey(e.Key(), e.Rune(), e.Modifiers())
		return KeyEvent(k, r, mod)

	case *tcell.EventResize:
		w, h := e.Size()
		return ResizeEvent(w, h)

	default:
		return Event{Type: EventNone}
	}
}

// convertKey converts a tcell key to our key, rune and modifiers.
// Control characters tcell reports as their own keys come back as the
// matching letter with ModCtrl.
func convertKey(k tcell.Key, r rune, m tcell.ModMask) (key.Key, rune, ModMask) {
	mod := convertMod(m)
	switch k {
	case tcell.KeyRune:
		return key.KeyRune, r, mod
	case tcell.KeyEscape:
		return key.KeyEscape, 0, mod
	case tcell.KeyEnter:
		return key.KeyEnter, 0, mod
	case tcell.KeyTab:
		return key.KeyTab, 0, mod
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.KeyBackspace, 0, mod
	case tcell.KeyDelete:
		return key.KeyDelete, 0, mod
	case tcell.KeyUp:
		return key.KeyUp, 0, mod
	case tcell.KeyDown:
		return key.KeyDown, 0, mod
	case tcell.KeyLeft:
		return key.KeyLeft, 0, mod
	case tcell.KeyRight:
		return key.KeyRight, 0, mod
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.KeyRune, 'a' + rune(k-tcell.KeyCtrlA), mod | ModCtrl
	}
	return key.KeyNone, 0, mod
}

// convertMod converts tcell modifier mask to our ModMask.
func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}
