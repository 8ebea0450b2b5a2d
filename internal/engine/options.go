package engine

// Option configures an Engine during creation.
type Option func(*Engine)

// WithUnknownKeysDirty sets whether keys with no binding mark the screen
// dirty. The default is true.
func WithUnknownKeysDirty(dirty bool) Option {
	return func(e *Engine) {
		e.unknownKeysDirty = dirty
	}
}
