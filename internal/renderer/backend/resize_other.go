//go:build !unix

package backend

// watchResize is a no-op where SIGWINCH does not exist.
func (a *ANSI) watchResize() func() {
	return func() {}
}
