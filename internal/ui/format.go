package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/bamsammich/lovepack/internal/stats"
)

// FormatCount groups the digits of n in threes: 1204 -> "1,204".
func FormatCount(n int64) string {
	digits := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range len(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return sign + string(out)
}

// FormatBytes is stats.FormatBytes, re-exported for presenters.
func FormatBytes(b int64) string { return stats.FormatBytes(b) }

// FormatDuration rounds d to whole seconds: "0s", "1m30s", "1h2m3s".
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}
	return d.Round(time.Second).String()
}

// FormatETA is FormatDuration prefixed with "~", or "--" while the
// remaining time is unknown.
func FormatETA(d time.Duration) string {
	if d <= 0 {
		return "--"
	}
	return "~" + FormatDuration(d)
}

// ProgressBar draws fraction pct of width cells as a block bar.
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(max(0, min(pct, 1)) * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
