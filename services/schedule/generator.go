package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"medicore/config"
	"medicore/models"
)

const (
	// WindowDays is the length of the rolling generation window in calendar days.
	WindowDays = 30
	// MinSlotMinutes is the floor applied to the computed slot duration. It
	// prevents degenerate zero or negative-length slots when slotsPerDay is
	// large relative to the working window.
	MinSlotMinutes = 15
	// MaxSlotsPerDay bounds the per-day target.
	MaxSlotsPerDay = 48
)

// windowDays returns the generation window from SLOT_WINDOW_DAYS, falling
// back to WindowDays when the key is unset.
func windowDays() int {
	if config.AppConfig.SlotWindowDays > 0 {
		return config.AppConfig.SlotWindowDays
	}
	return WindowDays
}

// ClampSlotsPerDay forces the per-day target into [1, MaxSlotsPerDay].
func ClampSlotsPerDay(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxSlotsPerDay {
		return MaxSlotsPerDay
	}
	return n
}

// parseClock converts an "HH:MM" string to minutes from midnight.
func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock value out of range in %q", s)
	}
	return hour*60 + minute, nil
}

// formatClock converts minutes from midnight to an "HH:MM:SS" string. The
// generator does not clamp slots to the end of the working day, so a value
// past midnight keeps counting hours rather than wrapping.
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// GenerateSlots expands a weekly availability template into concrete dated
// time slots for each of the next windowDays() calendar days starting at
// today (WindowDays unless SLOT_WINDOW_DAYS overrides it).
//
// For every available weekday the slot duration is the workable span
// ((end-start) minus the break span) divided by slotsPerDay, floored at
// MinSlotMinutes. A cursor walks forward from the day's start time; whenever
// it lands inside [breakStart, breakEnd) it jumps to breakEnd without
// emitting a slot. Exactly slotsPerDay slots are emitted per available day;
// the end of the working window is not enforced, so the last slots may run
// past it when slotsPerDay is large.
//
// The result is deterministic for a given today.
func GenerateSlots(doctorID string, weekly models.WeeklyAvailability, slotsPerDay int, today time.Time) []models.TimeSlot {
	slotsPerDay = ClampSlotsPerDay(slotsPerDay)

	var slots []models.TimeSlot
	window := windowDays()
	for i := 0; i < window; i++ {
		currentDate := today.AddDate(0, 0, i)
		day, ok := weekly[currentDate.Weekday().String()]
		if !ok || !day.Available {
			continue
		}

		start, err := parseClock(day.StartTime)
		if err != nil {
			continue
		}
		end, err := parseClock(day.EndTime)
		if err != nil {
			continue
		}

		// A missing or malformed break is treated as no break at all.
		breakStart, breakEnd := 0, 0
		if bs, err := parseClock(day.BreakStart); err == nil {
			if be, err := parseClock(day.BreakEnd); err == nil && be > bs {
				breakStart, breakEnd = bs, be
			}
		}

		workable := (end - start) - (breakEnd - breakStart)
		slotDuration := workable / slotsPerDay
		if slotDuration < MinSlotMinutes {
			slotDuration = MinSlotMinutes
		}

		dateStr := currentDate.Format("2006-01-02")
		cursor := start
		for emitted := 0; emitted < slotsPerDay; {
			if cursor >= breakStart && cursor < breakEnd {
				cursor = breakEnd
				continue
			}
			slots = append(slots, models.TimeSlot{
				DoctorID:        doctorID,
				Date:            dateStr,
				StartTime:       formatClock(cursor),
				EndTime:         formatClock(cursor + slotDuration),
				MaxAppointments: 1,
				IsAvailable:     true,
			})
			cursor += slotDuration
			emitted++
		}
	}
	return slots
}
