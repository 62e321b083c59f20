package env

import "os"

// Get reads an environment variable, falling back when unset or empty.
// Platform-injected variables (PORT, DYNO) go through here; configuration
// owned by the service uses envconfig instead.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
