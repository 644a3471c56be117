package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"handyhub/models"
)

// Weekday returns the lowercase weekday key used in working-hours maps.
func Weekday(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// ParseClock converts an "HH:MM" string to minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed time %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("malformed hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("malformed minute in %q", s)
	}
	return h*60 + m, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DayWindow is a provider's declared window on a concrete day, resolved to
// minutes from midnight.
type DayWindow struct {
	Day   string
	Start int
	End   int
}

// WindowFor resolves the working-hours entry covering the instant t.
// The second return is false when the weekday is not marked available.
func WindowFor(hours models.WorkingHours, t time.Time) (DayWindow, bool, error) {
	day := Weekday(t)
	dh, ok := hours[day]
	if !ok || !dh.Available {
		return DayWindow{Day: day}, false, nil
	}
	start, err := ParseClock(dh.Start)
	if err != nil {
		return DayWindow{Day: day}, false, err
	}
	end, err := ParseClock(dh.End)
	if err != nil {
		return DayWindow{Day: day}, false, err
	}
	if end < start {
		return DayWindow{Day: day}, false, fmt.Errorf("window end %s before start %s", dh.End, dh.Start)
	}
	return DayWindow{Day: day, Start: start, End: end}, true, nil
}

// Contains reports whether the instant falls inside the window. Both
// boundaries are inclusive.
func (w DayWindow) Contains(t time.Time) bool {
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= w.Start && minutes <= w.End
}

// Slot is a bookable start/end pair in "HH:MM" local time.
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// GenerateSlots produces candidate slots of the given duration inside the
// window, starting at the window start and advancing in 1-hour steps until
// a slot would overrun the window end. Slots overlapping an existing
// active booking are excluded (open-interval overlap; bookings are assumed
// to occupy the same duration).
func GenerateSlots(window DayWindow, day time.Time, existing []models.Booking, duration time.Duration) []Slot {
	durMin := int(duration.Minutes())
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	slots := []Slot{}
	for cur := window.Start; cur+durMin <= window.End; cur += 60 {
		slotStart := midnight.Add(time.Duration(cur) * time.Minute)
		slotEnd := slotStart.Add(duration)

		conflict := false
		for _, b := range existing {
			bStart := b.ScheduledDateTime
			bEnd := bStart.Add(duration)
			if !(bEnd.Before(slotStart) || bEnd.Equal(slotStart) || bStart.After(slotEnd) || bStart.Equal(slotEnd)) {
				conflict = true
				break
			}
		}
		if !conflict {
			slots = append(slots, Slot{Start: formatClock(cur), End: formatClock(cur + durMin)})
		}
	}
	return slots
}
