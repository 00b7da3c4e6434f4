// Package timeslot provides time-of-day arithmetic for the reservation
// system: dining-hours lookup per weekday, discrete slot enumeration and
// half-open window overlap.  Everything here is pure computation; dates
// never carry a timezone and windows never cross midnight.
package timeslot

import (
	"fmt"
	"time"
)

// TimeOfDay is a clock time expressed as minutes since midnight.
// The value 24*60 is a valid exclusive window end (midnight of the
// next day) but never a valid start.
type TimeOfDay int

// EndOfDay is the exclusive upper bound for any window end.
const EndOfDay TimeOfDay = 24 * 60

// Parse converts an "HH:MM" string into a TimeOfDay.  Seconds are not
// accepted; the original system stores reservation times with minute
// precision only.
func Parse(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// String renders the time back as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Add returns the time shifted forward by the given number of minutes.
// The result may exceed EndOfDay; callers decide whether that is legal.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// Window is a half-open interval [Start, End) on a single calendar day.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// NewWindow builds the window [start, start+durationMinutes).
func NewWindow(start TimeOfDay, durationMinutes int) Window {
	return Window{Start: start, End: start.Add(durationMinutes)}
}

// Overlaps reports whether two half-open windows on the same day share
// any instant: a.Start < b.End && b.Start < a.End.  Touching windows
// (a.End == b.Start) do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start < o.End && o.Start < w.End
}

// Span is an open/close pair for one day of the week.
type Span struct {
	Open  TimeOfDay
	Close TimeOfDay
}

// Hours maps each weekday to its dining span.  A zero Span (Open ==
// Close) means closed that day.  The table is explicit configuration so
// locations can override it instead of relying on baked-in constants.
type Hours struct {
	ByWeekday [7]Span // indexed by time.Weekday (Sunday == 0)
}

// DefaultHours returns the standard dining schedule: Tuesday through
// Saturday 17:00–23:00, Sunday and Monday 17:00–21:00.
func DefaultHours() Hours {
	var h Hours
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		span := Span{Open: 17 * 60, Close: 21 * 60}
		if wd >= time.Tuesday && wd <= time.Saturday {
			span.Close = 23 * 60
		}
		h.ByWeekday[wd] = span
	}
	return h
}

// DiningHours returns the open and close times for the given date.
func (h Hours) DiningHours(date time.Time) (TimeOfDay, TimeOfDay) {
	span := h.ByWeekday[date.Weekday()]
	return span.Open, span.Close
}

// GenerateSlots enumerates bookable times for the date at a fixed
// interval, from opening up to but excluding closing.  The result is
// ordered and empty when the location is closed or the interval is not
// positive.
func (h Hours) GenerateSlots(date time.Time, intervalMinutes int) []TimeOfDay {
	open, close := h.DiningHours(date)
	if intervalMinutes <= 0 || open >= close {
		return nil
	}
	slots := make([]TimeOfDay, 0, int(close-open)/intervalMinutes)
	for t := open; t < close; t = t.Add(intervalMinutes) {
		slots = append(slots, t)
	}
	return slots
}

// IsValidBookingTime reports whether the "HH:MM" string falls within
// dining hours for the date (closing time exclusive).  A malformed time
// string yields false rather than an error.
func (h Hours) IsValidBookingTime(date time.Time, timeStr string) bool {
	t, err := Parse(timeStr)
	if err != nil {
		return false
	}
	open, close := h.DiningHours(date)
	return open <= t && t < close
}
