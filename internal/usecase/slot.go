package usecase

import (
	"time"
)

// Slot labels are matched on their HH:MM prefix so that "09:00" and
// "09:00:00" (and a timestamp with seconds) all refer to the same slot.
const slotLayout = "15:04"

var slotLayouts = []string{"15:04", "15:04:05", "3:04PM", "3:04 PM"}

// parseSlotLabel normalizes an availability label to its canonical "HH:MM"
// key. ok is false when the label does not look like a time of day.
func parseSlotLabel(label string) (string, bool) {
	for _, layout := range slotLayouts {
		if t, err := time.Parse(layout, label); err == nil {
			return t.Format(slotLayout), true
		}
	}
	return "", false
}

// slotKey is the canonical "HH:MM" key of a booked appointment timestamp.
func slotKey(t time.Time) string {
	return t.Format(slotLayout)
}

// freeSlots subtracts booked appointment times from a doctor's availability
// labels, preserving the original label order. A label that does not parse
// is kept rather than dropped: an unparseable entry must not silently block
// the doctor's calendar. onUnparseable is invoked for each such label so the
// caller can surface the data-quality problem.
func freeSlots(labels []string, booked []time.Time, onUnparseable func(label string)) []string {
	bookedKeys := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		bookedKeys[slotKey(t)] = struct{}{}
	}

	free := make([]string, 0, len(labels))
	for _, label := range labels {
		key, ok := parseSlotLabel(label)
		if !ok {
			if onUnparseable != nil {
				onUnparseable(label)
			}
			free = append(free, label)
			continue
		}
		if _, taken := bookedKeys[key]; !taken {
			free = append(free, label)
		}
	}
	return free
}

// containsSlot reports whether the requested time of day matches one of the
// given labels on the HH:MM prefix.
func containsSlot(labels []string, requested time.Time) bool {
	want := slotKey(requested)
	for _, label := range labels {
		key, ok := parseSlotLabel(label)
		if !ok {
			continue
		}
		if key == want {
			return true
		}
	}
	return false
}

// Time-of-day periods for directory filtering
const (
	PeriodAM = "am"
	PeriodPM = "pm"
)

// labelPeriod classifies a label as AM or PM by its parsed hour (< 12 is AM).
// Labels that do not parse belong to neither period.
func labelPeriod(label string) (string, bool) {
	key, ok := parseSlotLabel(label)
	if !ok {
		return "", false
	}
	t, err := time.Parse(slotLayout, key)
	if err != nil {
		return "", false
	}
	if t.Hour() < 12 {
		return PeriodAM, true
	}
	return PeriodPM, true
}

// availableInPeriod reports whether any of the labels falls in the period.
func availableInPeriod(labels []string, period string) bool {
	for _, label := range labels {
		p, ok := labelPeriod(label)
		if ok && p == period {
			return true
		}
	}
	return false
}

// dayWindow returns the half-open [startOfDay, startOfNextDay) range that
// matches every timestamp on date's calendar day.
func dayWindow(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}
