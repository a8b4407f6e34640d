package streak

import (
	"math"
	"time"

	"github.com/adilhasan/mufradat/period"
)

const (
	// Growth is the multiplier applied for each consecutive period check-in.
	Growth = 1.2
	// Cap is the maximum multiplier a user can reach.
	Cap = 15.0
)

// Result is the outcome of a streak transition.
type Result struct {
	Streak     int
	Multiplier float64
}

// Advance computes the new streak and multiplier for a check-in happening in
// the current period, given the user's previous check-in instant and the
// bounds of the period immediately preceding the current one.
//
// A first-ever check-in or a missed period both yield {1, 1}; a check-in
// that landed inside the previous period extends the streak and grows the
// multiplier geometrically up to the cap. The caller is responsible for
// rejecting duplicates within the current period before invoking this.
func Advance(last *time.Time, current int, multiplier float64, prev period.Occurrence) Result {
	if last == nil {
		return Result{Streak: 1, Multiplier: 1}
	}
	if prev.Contains(*last) {
		m := Round3(multiplier * Growth)
		if m > Cap {
			m = Cap
		}
		return Result{Streak: current + 1, Multiplier: m}
	}
	return Result{Streak: 1, Multiplier: 1}
}

// Round3 rounds to 3 decimal places. All points and multiplier arithmetic
// passes through here right after computation to avoid floating drift
// accumulating over many check-ins.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
