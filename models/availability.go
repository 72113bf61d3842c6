package models

// DayAvailability is one weekday's working-hours configuration.
// All times are wall-clock "HH:MM" strings; no timezone handling is applied.
type DayAvailability struct {
	Available  bool   `bson:"available" json:"available"`
	StartTime  string `bson:"startTime" json:"startTime"`   // e.g., "09:00"
	EndTime    string `bson:"endTime" json:"endTime"`       // e.g., "17:00"
	BreakStart string `bson:"breakStart" json:"breakStart"` // e.g., "12:00"
	BreakEnd   string `bson:"breakEnd" json:"breakEnd"`     // e.g., "13:00"
}

// WeeklyAvailability maps weekday names (Monday..Sunday) to their configuration.
type WeeklyAvailability map[string]DayAvailability

// Weekdays lists the weekday names used as WeeklyAvailability keys, Monday first.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DefaultWeeklyAvailability returns a template with all seven weekdays present
// and marked unavailable.
func DefaultWeeklyAvailability() WeeklyAvailability {
	weekly := make(WeeklyAvailability, len(Weekdays))
	for _, day := range Weekdays {
		weekly[day] = DayAvailability{
			Available:  false,
			StartTime:  "09:00",
			EndTime:    "17:00",
			BreakStart: "12:00",
			BreakEnd:   "13:00",
		}
	}
	return weekly
}

// HasAvailableDay reports whether at least one weekday is marked available.
func (w WeeklyAvailability) HasAvailableDay() bool {
	for _, day := range w {
		if day.Available {
			return true
		}
	}
	return false
}
