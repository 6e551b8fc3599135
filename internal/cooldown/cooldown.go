package cooldown

import (
	"fmt"
	"strings"
	"time"
)

// Reward and action kinds with enforced cooldown windows
const (
	KindDaily    = "daily"
	KindWeekly   = "weekly"
	KindMonthly  = "monthly"
	KindYearly   = "yearly"
	KindWork     = "work"
	KindOvertime = "overtime"
	KindSpin     = "spin"
	KindVote     = "vote"
)

// windows maps a kind to its minimum elapsed time between uses. A kind
// missing from this table has no cooldown (fail-open).
var windows = map[string]time.Duration{
	KindDaily:    24 * time.Hour,
	KindWeekly:   7 * 24 * time.Hour,
	KindMonthly:  30 * 24 * time.Hour,
	KindYearly:   365 * 24 * time.Hour,
	KindWork:     time.Hour,
	KindOvertime: 2 * time.Hour,
	KindSpin:     5 * time.Minute,
	KindVote:     12 * time.Hour,
}

// Window returns the cooldown window for a kind, or zero if the kind has
// no enforced cooldown.
func Window(kind string) time.Duration {
	return windows[kind]
}

// Remaining reports how long until lastUsed+window elapses. Zero means
// eligible now; a zero-valued lastUsed is always eligible.
func Remaining(lastUsed time.Time, window time.Duration, now time.Time) time.Duration {
	if lastUsed.IsZero() || window <= 0 {
		return 0
	}

	end := lastUsed.Add(window)
	if !now.Before(end) {
		return 0
	}
	return end.Sub(now)
}

// RemainingFor is Remaining with the window looked up by kind. Unknown
// kinds are always eligible.
func RemainingFor(lastUsed time.Time, kind string, now time.Time) time.Duration {
	return Remaining(lastUsed, windows[kind], now)
}

// MarkUsed returns the timestamp to store as the new last-used value.
func MarkUsed(now time.Time) time.Time {
	return now
}

// FormatDuration renders a wait as the largest applicable units, omitting
// zero components. Seconds are suppressed once a day component is present.
func FormatDuration(d time.Duration) string {
	total := int64(d.Seconds())
	if total < 0 {
		total = 0
	}

	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 && days == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}

	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}
