package catalog

import "time"

// Upstream serves opening hours as "HH:mm:ss.SSS'Z'"; clients render "HH.mm".
const (
	clockInputLayout   = "15:04:05.000Z07:00"
	clockDisplayLayout = "15.04"
)

// Display fallbacks when the upstream value cannot be parsed.
const (
	FallbackOpening = "0.00"
	FallbackClosing = "24.00"
)

// FormatClock renders an upstream UTC clock value as "HH.mm", or fallback
// when the value is empty or malformed. The output is locale-fixed.
func FormatClock(value, fallback string) string {
	if value == "" {
		return fallback
	}
	t, err := time.Parse(clockInputLayout, value)
	if err != nil {
		return fallback
	}
	return t.UTC().Format(clockDisplayLayout)
}
