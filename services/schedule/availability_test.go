package schedule

import (
	"encoding/json"
	"testing"

	"medicore/models"
)

func TestParseWeeklyAvailabilityFillsAllDays(t *testing.T) {
	raw := `{"Monday":{"available":true,"startTime":"09:00","endTime":"17:00","breakStart":"12:00","breakEnd":"13:00"}}`
	weekly, err := ParseWeeklyAvailability(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(weekly) != 7 {
		t.Fatalf("expected 7 weekdays, got %d", len(weekly))
	}
	if !weekly["Monday"].Available {
		t.Error("Monday should be available")
	}
	for _, day := range []string{"Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"} {
		if weekly[day].Available {
			t.Errorf("%s should default to unavailable", day)
		}
	}
}

func TestParseWeeklyAvailabilityMalformed(t *testing.T) {
	weekly, err := ParseWeeklyAvailability(`{"Monday": not-json`)
	if err == nil {
		t.Fatal("expected a parse error for malformed JSON")
	}
	// Malformed input degrades to the default template rather than failing hard.
	if len(weekly) != 7 {
		t.Fatalf("expected default 7-day template, got %d entries", len(weekly))
	}
	if weekly.HasAvailableDay() {
		t.Error("default template must have no available day")
	}
}

func TestParseWeeklyAvailabilityDoubleEncoded(t *testing.T) {
	inner := `{"Friday":{"available":true,"startTime":"08:00","endTime":"12:00","breakStart":"","breakEnd":""}}`
	outer, err := json.Marshal(inner)
	if err != nil {
		t.Fatal(err)
	}
	weekly, err := ParseWeeklyAvailability(string(outer))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !weekly["Friday"].Available {
		t.Error("Friday should be available after unwrapping the double-encoded value")
	}
}

func TestParseWeeklyAvailabilityEmpty(t *testing.T) {
	weekly, err := ParseWeeklyAvailability("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if weekly.HasAvailableDay() {
		t.Error("empty stored value should produce an all-unavailable template")
	}
}

func TestSerializeWeeklyAvailabilityRoundTrip(t *testing.T) {
	weekly := models.DefaultWeeklyAvailability()
	weekly["Tuesday"] = models.DayAvailability{
		Available: true, StartTime: "10:00", EndTime: "18:00",
		BreakStart: "13:00", BreakEnd: "14:00",
	}

	serialized, err := SerializeWeeklyAvailability(weekly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := ParseWeeklyAvailability(serialized)
	if err != nil {
		t.Fatalf("round-trip parse failed: %v", err)
	}
	if parsed["Tuesday"] != weekly["Tuesday"] {
		t.Errorf("round trip changed Tuesday: %+v vs %+v", parsed["Tuesday"], weekly["Tuesday"])
	}
}

func TestSerializeWeeklyAvailabilityRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		weekly models.WeeklyAvailability
	}{
		{
			"unknown weekday",
			models.WeeklyAvailability{"Funday": {Available: true, StartTime: "09:00", EndTime: "17:00"}},
		},
		{
			"start after end",
			models.WeeklyAvailability{"Monday": {Available: true, StartTime: "17:00", EndTime: "09:00"}},
		},
		{
			"bad clock value",
			models.WeeklyAvailability{"Monday": {Available: true, StartTime: "25:00", EndTime: "26:00"}},
		},
		{
			"break start after break end",
			models.WeeklyAvailability{"Monday": {Available: true, StartTime: "09:00", EndTime: "17:00", BreakStart: "14:00", BreakEnd: "12:00"}},
		},
	}
	for _, tc := range cases {
		if _, err := SerializeWeeklyAvailability(tc.weekly); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}
