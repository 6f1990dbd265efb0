package engine

import "fmt"

// FormatDuration renders a seconds count as the dashboard's "XhYm"
// display string. Aggregation always works on integer seconds; this is
// presentation only and its output is never parsed back.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%dm", h, m)
}
