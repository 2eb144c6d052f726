package config

// ApplyEnv overlays cfg with environment values obtained through lookup
// (usually os.LookupEnv).
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		cfg.BaseURL = v
	}
}
