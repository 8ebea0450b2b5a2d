package config

// EnvPrefix is the prefix shared by all environment overrides.
const EnvPrefix = "MODAL_"

// defaultEnvMapping returns the environment variable to setting path
// mappings.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"MODAL_RENDER_DELAY":       "editor.render_delay",
		"MODAL_UNKNOWN_KEYS_DIRTY": "editor.unknown_keys_dirty",
		"MODAL_BACKEND":            "terminal.backend",
		"MODAL_LOG_LEVEL":          "log.level",
		"MODAL_LOG_FILE":           "log.file",
	}
}

// EnvVars returns the recognized environment variable names.
func EnvVars() []string {
	mapping := defaultEnvMapping()
	names := make([]string, 0, len(mapping))
	for name := range mapping {
		names = append(names, name)
	}
	return names
}

// ApplyEnv overrides settings from environment variables. lookup has the
// signature of os.LookupEnv. An empty value counts as set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for env, path := range defaultEnvMapping() {
		val, ok := lookup(env)
		if !ok {
			continue
		}
		if err := c.Set(path, val); err != nil {
			return err
		}
	}
	return nil
}
