package clock

import (
	"testing"
	"time"
)

func TestFakeClock_Advance(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	c := Fake(start)

	if !c.Now().Equal(start) {
		t.Fatalf("expected %v, got %v", start, c.Now())
	}

	c.Advance(90 * time.Minute)
	if want := start.Add(90 * time.Minute); !c.Now().Equal(want) {
		t.Errorf("expected %v after advance, got %v", want, c.Now())
	}

	later := start.AddDate(0, 1, 0)
	c.Set(later)
	if !c.Now().Equal(later) {
		t.Errorf("expected %v after set, got %v", later, c.Now())
	}
}

func TestRealClock_Moves(t *testing.T) {
	c := Real()
	a := c.Now()
	b := c.Now()
	if b.Before(a) {
		t.Error("real clock went backwards")
	}
}

func TestStartAndEndOfDay(t *testing.T) {
	loc := time.FixedZone("test", -5*3600)
	t0 := time.Date(2025, 3, 10, 17, 45, 12, 99, loc)

	sod := StartOfDay(t0)
	if want := time.Date(2025, 3, 10, 0, 0, 0, 0, loc); !sod.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", sod, want)
	}

	eod := EndOfDay(t0)
	if !eod.Before(sod.AddDate(0, 0, 1)) || eod.Day() != 10 {
		t.Errorf("EndOfDay = %v, expected last instant of the 10th", eod)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := DaysBetween(a, a.Add(36*time.Hour)); got != 1.5 {
		t.Errorf("expected 1.5 days, got %v", got)
	}
}
