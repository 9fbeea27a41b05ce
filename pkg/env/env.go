// Package env reads process environment values with fallbacks, for the few
// knobs that live outside the envconfig-managed Config.
package env

import "os"

// Get returns the named variable's value, or fallback when it is unset or
// empty.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
