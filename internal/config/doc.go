// Package config provides the configuration system for modal.
//
// Settings come from three sources, later ones overriding earlier ones:
//
//	┌─────────────────────────────┐
//	│  3. Command Line Flags      │  ← Highest priority (applied by main)
//	├─────────────────────────────┤
//	│  2. Environment Variables   │  ← MODAL_LOG_LEVEL, MODAL_BACKEND, ...
//	├─────────────────────────────┤
//	│  1. Config File (TOML)      │
//	├─────────────────────────────┤
//	│  0. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A config file looks like:
//
//	[editor]
//	render_delay = "50ms"
//	unknown_keys_dirty = true
//
//	[terminal]
//	backend = "tcell"
//
//	[log]
//	level = "info"
//	file = ""
//
// A missing file is not an error; the defaults apply. Unknown keys are
// rejected so that typos do not pass silently.
//
// # Live Reload
//
// Watcher reloads the file when it is written or replaced and passes the
// new configuration to a callback:
//
//	w, err := config.NewWatcher(path, func(cfg *config.Config) {
//		app.ApplyConfig(cfg)
//	})
//	defer w.Close()
package config
