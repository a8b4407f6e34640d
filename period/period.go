package period

import "time"

// ID identifies one of the three fixed daily check-in windows.
type ID string

const (
	Night     ID = "night"
	Morning   ID = "morning"
	Afternoon ID = "afternoon"
)

// Window boundaries in local wall-clock hours. The three windows partition the
// full day: night [20, 06), morning [06, 15), afternoon [15, 20).
const (
	morningStartHour   = 6
	afternoonStartHour = 15
	nightStartHour     = 20
)

// Occurrence is one concrete run of a period: its identifier plus the UTC
// instants bounding it, with Start <= t < End for every instant t inside.
type Occurrence struct {
	ID    ID
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the occurrence window.
func (o Occurrence) Contains(t time.Time) bool {
	return !t.Before(o.Start) && t.Before(o.End)
}

// Clock maps instants to period occurrences using a fixed UTC offset
// convention. The offset is applied arithmetically; there is no DST handling.
type Clock struct {
	offset time.Duration
}

// NewClock creates a Clock for the given fixed UTC offset in hours
// (e.g. -5 for the original CDT convention).
func NewClock(offsetHours int) Clock {
	return Clock{offset: time.Duration(offsetHours) * time.Hour}
}

// At returns the occurrence containing now. Current and Bounds both derive
// from this single computation so the two can never disagree on a boundary.
func (c Clock) At(now time.Time) Occurrence {
	local := now.UTC().Add(c.offset)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	var id ID
	var start, end time.Time
	switch h := local.Hour(); {
	case h < morningStartHour:
		// tail of the night window that began the previous day
		id = Night
		start = midnight.Add((nightStartHour - 24) * time.Hour)
		end = midnight.Add(morningStartHour * time.Hour)
	case h < afternoonStartHour:
		id = Morning
		start = midnight.Add(morningStartHour * time.Hour)
		end = midnight.Add(afternoonStartHour * time.Hour)
	case h < nightStartHour:
		id = Afternoon
		start = midnight.Add(afternoonStartHour * time.Hour)
		end = midnight.Add(nightStartHour * time.Hour)
	default:
		id = Night
		start = midnight.Add(nightStartHour * time.Hour)
		end = midnight.Add((24 + morningStartHour) * time.Hour)
	}

	// shift boundaries back from the offset frame to UTC instants
	return Occurrence{ID: id, Start: start.Add(-c.offset), End: end.Add(-c.offset)}
}

// Current returns the identifier of the period containing now.
func (c Clock) Current(now time.Time) ID {
	return c.At(now).ID
}

// Bounds returns the current occurrence of the given period relative to now:
// the occurrence containing now when id matches, otherwise the most recent
// occurrence of id whose window has already ended.
func (c Clock) Bounds(id ID, now time.Time) (time.Time, time.Time) {
	occ := c.At(now)
	for i := 0; i < 3; i++ {
		if occ.ID == id {
			return occ.Start, occ.End
		}
		occ = c.Previous(occ)
	}
	return occ.Start, occ.End
}

// Previous returns the occurrence chronologically immediately preceding occ.
func (c Clock) Previous(occ Occurrence) Occurrence {
	return c.At(occ.Start.Add(-time.Second))
}
