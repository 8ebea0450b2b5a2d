//go:build unix

package backend

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// watchResize posts a resize event on every SIGWINCH until the backend
// shuts down. The returned function stops signal delivery.
func (a *ANSI) watchResize() func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)
	go func() {
		for {
			select {
			case <-ch:
				w, h := a.Size()
				if !a.post(ResizeEvent(w, h)) {
					return
				}
			case <-a.done:
				return
			}
		}
	}()
	return func() { signal.Stop(ch) }
}
