package period

import (
	"testing"
	"time"
)

func TestPartitionCoversFullDay(t *testing.T) {
	clock := NewClock(-5)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	counts := map[ID]int{}
	for minute := 0; minute < 24*60; minute++ {
		now := day.Add(time.Duration(minute) * time.Minute)
		occ := clock.At(now)

		if !occ.Contains(now) {
			t.Fatalf("at %v: occurrence %s [%v, %v) does not contain now", now, occ.ID, occ.Start, occ.End)
		}
		if got := clock.Current(now); got != occ.ID {
			t.Fatalf("at %v: Current returned %s but At returned %s", now, got, occ.ID)
		}
		start, end := clock.Bounds(occ.ID, now)
		if !start.Equal(occ.Start) || !end.Equal(occ.End) {
			t.Fatalf("at %v: Bounds(%s) = [%v, %v), At = [%v, %v)", now, occ.ID, start, end, occ.Start, occ.End)
		}
		counts[occ.ID]++
	}

	// night 10h, morning 9h, afternoon 5h
	want := map[ID]int{Night: 10 * 60, Morning: 9 * 60, Afternoon: 5 * 60}
	for id, minutes := range want {
		if counts[id] != minutes {
			t.Errorf("period %s covers %d minutes, want %d", id, counts[id], minutes)
		}
	}
}

func TestWindowLengths(t *testing.T) {
	clock := NewClock(-5)
	lengths := map[ID]time.Duration{
		Night:     10 * time.Hour,
		Morning:   9 * time.Hour,
		Afternoon: 5 * time.Hour,
	}
	day := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	for minute := 0; minute < 24*60; minute += 17 {
		occ := clock.At(day.Add(time.Duration(minute) * time.Minute))
		if got := occ.End.Sub(occ.Start); got != lengths[occ.ID] {
			t.Fatalf("period %s has length %v, want %v", occ.ID, got, lengths[occ.ID])
		}
	}
}

func TestNightSpansMidnight(t *testing.T) {
	clock := NewClock(-5)

	// 02:00 local = 07:00 UTC
	early := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	occ := clock.At(early)
	if occ.ID != Night {
		t.Fatalf("expected night at 02:00 local, got %s", occ.ID)
	}
	// started the previous local day at 20:00 local = 01:00 UTC same calendar day
	wantStart := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)
	if !occ.Start.Equal(wantStart) {
		t.Errorf("night start = %v, want %v", occ.Start, wantStart)
	}
	wantEnd := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC) // 06:00 local
	if !occ.End.Equal(wantEnd) {
		t.Errorf("night end = %v, want %v", occ.End, wantEnd)
	}

	// 21:00 local = 02:00 UTC next day
	late := time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC)
	occ = clock.At(late)
	if occ.ID != Night {
		t.Fatalf("expected night at 21:00 local, got %s", occ.ID)
	}
	if !occ.Start.Equal(time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC)) {
		t.Errorf("night start = %v, want 01:00 UTC", occ.Start)
	}
	if !occ.End.Equal(time.Date(2025, 3, 11, 11, 0, 0, 0, time.UTC)) {
		t.Errorf("night end = %v, want 11:00 UTC next morning boundary", occ.End)
	}
}

func TestPreviousChainsThroughCycle(t *testing.T) {
	clock := NewClock(-5)

	// noon local = morning
	now := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	morning := clock.At(now)
	if morning.ID != Morning {
		t.Fatalf("expected morning, got %s", morning.ID)
	}

	night := clock.Previous(morning)
	if night.ID != Night {
		t.Fatalf("previous of morning should be night, got %s", night.ID)
	}
	if !night.End.Equal(morning.Start) {
		t.Errorf("night end %v should equal morning start %v", night.End, morning.Start)
	}

	afternoon := clock.Previous(night)
	if afternoon.ID != Afternoon {
		t.Fatalf("previous of night should be afternoon, got %s", afternoon.ID)
	}

	// full cycle: three steps back lands on the same period one day earlier
	prevMorning := clock.Previous(afternoon)
	if prevMorning.ID != Morning {
		t.Fatalf("expected morning after full cycle, got %s", prevMorning.ID)
	}
	if got := morning.Start.Sub(prevMorning.Start); got != 24*time.Hour {
		t.Errorf("cycle length = %v, want 24h", got)
	}
}

func TestBoundsForNonCurrentPeriod(t *testing.T) {
	clock := NewClock(-5)

	// during the morning, afternoon bounds should be yesterday's afternoon
	now := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC) // 08:00 local
	start, end := clock.Bounds(Afternoon, now)
	if !end.Before(now) && !end.Equal(now) {
		t.Errorf("afternoon occurrence [%v, %v) should have ended before %v", start, end, now)
	}
	if got := end.Sub(start); got != 5*time.Hour {
		t.Errorf("afternoon length = %v, want 5h", got)
	}
}
