// Package timefmt renders tracked durations.
package timefmt

import "fmt"

// Format renders seconds as "Xh Ym Zs". The hour unit is left out when it
// is zero, so 0 renders as "0m 0s". Negative input renders as zero.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}
