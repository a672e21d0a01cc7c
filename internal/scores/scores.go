// Package scores holds the pure display math for score values. Everything
// here is deterministic and side-effect free; persistence and recalculation
// live in the service layer.
package scores

import (
	"math"
	"time"
)

// Percentage returns score as a percentage of max, or 0 when max is not
// positive. Divisions never see a zero max.
func Percentage(score, max int) float64 {
	if max <= 0 {
		return 0
	}
	return float64(score) / float64(max) * 100
}

// Normalized maps a score pair onto the display scale: days with a max of
// at least 100 render as a percentage, smaller days render on a 0-10 scale.
// The result is rounded to one decimal place.
func Normalized(score, max int) float64 {
	if max <= 0 {
		return 0
	}
	pct := Percentage(score, max)
	if max >= 100 {
		return Round1(pct)
	}
	return Round1(pct / 10)
}

// Delta returns the percentage-point movement between two score pairs, or
// nil when either side has no positive max to compare against.
func Delta(score, max, prevScore, prevMax int) *float64 {
	if max <= 0 || prevMax <= 0 {
		return nil
	}
	d := Round1(Percentage(score, max) - Percentage(prevScore, prevMax))
	return &d
}

// ActiveHours derives the waking span of a day from its recorded times.
// With both times set the span wraps past midnight when sleep reads earlier
// than wake. With only a wake time the span runs up to now, and only for
// the current day; past days with no sleep time yield nothing.
func ActiveHours(wake, sleep *time.Time, isToday bool, now time.Time) *float64 {
	if wake == nil {
		return nil
	}
	if sleep != nil {
		d := clockOf(*sleep) - clockOf(*wake)
		if d < 0 {
			d += 24 * time.Hour
		}
		h := Round1(d.Hours())
		return &h
	}
	if !isToday {
		return nil
	}
	h := Round1((clockOf(now) - clockOf(*wake)).Hours())
	return &h
}

func clockOf(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}

// Round1 rounds to one decimal place, the precision every derived view
// reports.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}
