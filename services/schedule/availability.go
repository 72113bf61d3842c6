package schedule

import (
	"encoding/json"
	"fmt"

	"medicore/models"
)

// ParseWeeklyAvailability decodes a doctor's stored availability JSON into a
// WeeklyAvailability with all seven weekdays present. Missing days default to
// unavailable. A malformed value is not fatal: the default all-unavailable
// template is returned together with the parse error so callers can surface a
// warning and keep going.
func ParseWeeklyAvailability(raw string) (models.WeeklyAvailability, error) {
	weekly := models.DefaultWeeklyAvailability()
	if raw == "" {
		return weekly, nil
	}

	var stored models.WeeklyAvailability
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		// Some clients double-encode the field; tolerate one extra layer.
		var nested string
		if err2 := json.Unmarshal([]byte(raw), &nested); err2 == nil {
			if err3 := json.Unmarshal([]byte(nested), &stored); err3 == nil {
				for day, cfg := range stored {
					weekly[day] = cfg
				}
				return weekly, nil
			}
		}
		return models.DefaultWeeklyAvailability(), fmt.Errorf("malformed availability: %w", err)
	}

	for day, cfg := range stored {
		weekly[day] = cfg
	}
	return weekly, nil
}

// SerializeWeeklyAvailability validates and re-encodes a weekly template for
// storage. Every available day must carry a coherent working window; break
// fields may be empty (no break).
func SerializeWeeklyAvailability(weekly models.WeeklyAvailability) (string, error) {
	full := models.DefaultWeeklyAvailability()
	for day, cfg := range weekly {
		valid := false
		for _, known := range models.Weekdays {
			if day == known {
				valid = true
				break
			}
		}
		if !valid {
			return "", fmt.Errorf("unknown weekday %q", day)
		}
		if cfg.Available {
			start, err := parseClock(cfg.StartTime)
			if err != nil {
				return "", fmt.Errorf("%s: invalid startTime: %w", day, err)
			}
			end, err := parseClock(cfg.EndTime)
			if err != nil {
				return "", fmt.Errorf("%s: invalid endTime: %w", day, err)
			}
			if start >= end {
				return "", fmt.Errorf("%s: startTime must be before endTime", day)
			}
			if cfg.BreakStart != "" || cfg.BreakEnd != "" {
				bs, err := parseClock(cfg.BreakStart)
				if err != nil {
					return "", fmt.Errorf("%s: invalid breakStart: %w", day, err)
				}
				be, err := parseClock(cfg.BreakEnd)
				if err != nil {
					return "", fmt.Errorf("%s: invalid breakEnd: %w", day, err)
				}
				if bs > be {
					return "", fmt.Errorf("%s: breakStart must not be after breakEnd", day)
				}
			}
		}
		full[day] = cfg
	}

	data, err := json.Marshal(full)
	if err != nil {
		return "", fmt.Errorf("failed to serialize availability: %w", err)
	}
	return string(data), nil
}
