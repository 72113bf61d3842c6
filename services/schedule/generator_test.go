package schedule

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"medicore/config"
	"medicore/models"
)

// refDate is a fixed Monday used as the generation reference date.
var refDate = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

func mondayOnly(start, end, breakStart, breakEnd string) models.WeeklyAvailability {
	weekly := models.DefaultWeeklyAvailability()
	weekly["Monday"] = models.DayAvailability{
		Available:  true,
		StartTime:  start,
		EndTime:    end,
		BreakStart: breakStart,
		BreakEnd:   breakEnd,
	}
	return weekly
}

func clockToMinutes(t *testing.T, s string) int {
	t.Helper()
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		t.Fatalf("expected HH:MM:SS, got %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		t.Fatalf("bad hour in %q: %v", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		t.Fatalf("bad minute in %q: %v", s, err)
	}
	return hour*60 + minute
}

func TestGenerateSlotsPerDayCount(t *testing.T) {
	weekly := mondayOnly("09:00", "17:00", "12:00", "13:00")

	for _, n := range []int{1, 5, 10, 14, 48} {
		slots := GenerateSlots("doc-1", weekly, n, refDate)

		perDate := make(map[string]int)
		for _, s := range slots {
			perDate[s.Date] = perDate[s.Date] + 1
		}

		// A 30-day window starting on a Monday contains 5 Mondays.
		if len(perDate) != 5 {
			t.Fatalf("n=%d: expected 5 generated dates, got %d", n, len(perDate))
		}
		for date, count := range perDate {
			if count != n {
				t.Errorf("n=%d: date %s got %d slots, want %d", n, date, count, n)
			}
			day, err := time.Parse("2006-01-02", date)
			if err != nil {
				t.Fatalf("bad date %q: %v", date, err)
			}
			if day.Weekday() != time.Monday {
				t.Errorf("n=%d: slots generated on %s (%s), want Monday only", n, date, day.Weekday())
			}
		}
	}
}

func TestGenerateSlotsWindowOverride(t *testing.T) {
	prev := config.AppConfig.SlotWindowDays
	config.AppConfig.SlotWindowDays = 7
	t.Cleanup(func() { config.AppConfig.SlotWindowDays = prev })

	weekly := mondayOnly("09:00", "17:00", "12:00", "13:00")
	slots := GenerateSlots("doc-1", weekly, 5, refDate)

	// A 7-day window starting on a Monday contains exactly one Monday.
	perDate := make(map[string]int)
	for _, s := range slots {
		perDate[s.Date]++
	}
	if len(perDate) != 1 {
		t.Fatalf("expected 1 generated date in a 7-day window, got %d", len(perDate))
	}
	if perDate[refDate.Format("2006-01-02")] != 5 {
		t.Errorf("expected 5 slots on the reference Monday, got %d", perDate[refDate.Format("2006-01-02")])
	}
}

func TestGenerateSlotsWorkedExample(t *testing.T) {
	// 09:00-17:00 minus 12:00-13:00 leaves 420 workable minutes; with 14
	// slots per day each slot is 30 minutes.
	weekly := mondayOnly("09:00", "17:00", "12:00", "13:00")
	slots := GenerateSlots("doc-1", weekly, 14, refDate)

	var first []models.TimeSlot
	for _, s := range slots {
		if s.Date == "2025-06-02" {
			first = append(first, s)
		}
	}
	if len(first) != 14 {
		t.Fatalf("expected 14 slots on 2025-06-02, got %d", len(first))
	}
	if first[0].StartTime != "09:00:00" {
		t.Errorf("first slot starts at %s, want 09:00:00", first[0].StartTime)
	}
	for _, s := range first {
		start := clockToMinutes(t, s.StartTime)
		end := clockToMinutes(t, s.EndTime)
		if end-start != 30 {
			t.Errorf("slot %s-%s is %d minutes, want 30", s.StartTime, s.EndTime, end-start)
		}
		if start >= 12*60 && start < 13*60 {
			t.Errorf("slot starts inside the break: %s", s.StartTime)
		}
	}
	// The slot before the break must end exactly at 12:00 and the next one
	// must resume at 13:00.
	resumed := false
	for _, s := range first {
		if s.StartTime == "13:00:00" {
			resumed = true
		}
	}
	if !resumed {
		t.Error("no slot resumes at 13:00 after the break")
	}
}

func TestGenerateSlotsSingleSlotSpansBreak(t *testing.T) {
	// With one slot per day the whole 420-minute workable span becomes a
	// single slot starting at 09:00; the break is not subtracted from the
	// slot itself, so it ends at 16:00.
	weekly := mondayOnly("09:00", "17:00", "12:00", "13:00")
	slots := GenerateSlots("doc-1", weekly, 1, refDate)

	var first *models.TimeSlot
	for i := range slots {
		if slots[i].Date == "2025-06-02" {
			first = &slots[i]
			break
		}
	}
	if first == nil {
		t.Fatal("no slot generated for 2025-06-02")
	}
	if first.StartTime != "09:00:00" || first.EndTime != "16:00:00" {
		t.Errorf("got slot %s-%s, want 09:00:00-16:00:00", first.StartTime, first.EndTime)
	}
}

func TestGenerateSlotsMinimumDuration(t *testing.T) {
	// 60 workable minutes split 48 ways would be 1.25 minutes; the floor
	// forces every slot to 15 minutes.
	weekly := mondayOnly("09:00", "10:00", "", "")
	slots := GenerateSlots("doc-1", weekly, 48, refDate)

	for _, s := range slots {
		start := clockToMinutes(t, s.StartTime)
		end := clockToMinutes(t, s.EndTime)
		if end-start < MinSlotMinutes {
			t.Fatalf("slot %s-%s shorter than %d minutes", s.StartTime, s.EndTime, MinSlotMinutes)
		}
	}
}

func TestGenerateSlotsBreakExclusion(t *testing.T) {
	weekly := mondayOnly("08:00", "18:00", "12:30", "14:00")
	slots := GenerateSlots("doc-1", weekly, 20, refDate)

	if len(slots) == 0 {
		t.Fatal("no slots generated")
	}
	for _, s := range slots {
		start := clockToMinutes(t, s.StartTime)
		if start >= 12*60+30 && start < 14*60 {
			t.Errorf("slot starts inside the break window: %s", s.StartTime)
		}
	}
}

func TestGenerateSlotsNoAvailableDays(t *testing.T) {
	weekly := models.DefaultWeeklyAvailability()
	slots := GenerateSlots("doc-1", weekly, 10, refDate)
	if len(slots) != 0 {
		t.Fatalf("expected no slots for all-unavailable template, got %d", len(slots))
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	weekly := models.DefaultWeeklyAvailability()
	weekly["Monday"] = models.DayAvailability{Available: true, StartTime: "09:00", EndTime: "17:00", BreakStart: "12:00", BreakEnd: "13:00"}
	weekly["Wednesday"] = models.DayAvailability{Available: true, StartTime: "10:00", EndTime: "16:00", BreakStart: "13:00", BreakEnd: "13:30"}

	a := GenerateSlots("doc-1", weekly, 7, refDate)
	b := GenerateSlots("doc-1", weekly, 7, refDate)

	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Date != b[i].Date || a[i].StartTime != b[i].StartTime || a[i].EndTime != b[i].EndTime {
			t.Fatalf("run mismatch at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateSlotsClampsTarget(t *testing.T) {
	weekly := mondayOnly("09:00", "17:00", "", "")

	slots := GenerateSlots("doc-1", weekly, 0, refDate)
	perDate := make(map[string]int)
	for _, s := range slots {
		perDate[s.Date]++
	}
	for date, count := range perDate {
		if count != 1 {
			t.Errorf("slotsPerDay=0 should clamp to 1; date %s got %d", date, count)
		}
	}

	slots = GenerateSlots("doc-1", weekly, 1000, refDate)
	perDate = make(map[string]int)
	for _, s := range slots {
		perDate[s.Date]++
	}
	for date, count := range perDate {
		if count != MaxSlotsPerDay {
			t.Errorf("slotsPerDay=1000 should clamp to %d; date %s got %d", MaxSlotsPerDay, date, count)
		}
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
	}
	for _, tc := range cases {
		got, err := parseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseClock(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseClock(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
