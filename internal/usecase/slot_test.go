package usecase

import (
	"reflect"
	"testing"
	"time"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func TestParseSlotLabel(t *testing.T) {
	tests := []struct {
		label string
		want  string
		ok    bool
	}{
		{"09:00", "09:00", true},
		{"9:00", "09:00", true},
		{"14:30", "14:30", true},
		{"09:00:00", "09:00", true},
		{"2:30PM", "14:30", true},
		{"2:30 PM", "14:30", true},
		{"morning", "", false},
		{"", "", false},
		{"25:00", "", false},
	}

	for _, tt := range tests {
		got, ok := parseSlotLabel(tt.label)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseSlotLabel(%q) = (%q, %v), want (%q, %v)", tt.label, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFreeSlotsSubtractsBookedAndKeepsOrder(t *testing.T) {
	labels := []string{"09:00", "09:30", "10:00"}
	booked := []time.Time{mustTime(t, "2026-09-01T09:30:00Z")}

	got := freeSlots(labels, booked, nil)
	want := []string{"09:00", "10:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("freeSlots = %v, want %v", got, want)
	}
}

func TestFreeSlotsEmptyAvailability(t *testing.T) {
	got := freeSlots(nil, []time.Time{mustTime(t, "2026-09-01T09:00:00Z")}, nil)
	if len(got) != 0 {
		t.Errorf("freeSlots = %v, want empty", got)
	}
}

func TestFreeSlotsFullyBooked(t *testing.T) {
	labels := []string{"09:00", "09:30"}
	booked := []time.Time{
		mustTime(t, "2026-09-01T09:00:00Z"),
		mustTime(t, "2026-09-01T09:30:00Z"),
	}

	got := freeSlots(labels, booked, nil)
	if len(got) != 0 {
		t.Errorf("freeSlots = %v, want empty", got)
	}
}

func TestFreeSlotsKeepsUnparseableLabels(t *testing.T) {
	labels := []string{"09:00", "lunch break", "10:00"}
	booked := []time.Time{mustTime(t, "2026-09-01T10:00:00Z")}

	var reported []string
	got := freeSlots(labels, booked, func(label string) {
		reported = append(reported, label)
	})

	want := []string{"09:00", "lunch break"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("freeSlots = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(reported, []string{"lunch break"}) {
		t.Errorf("reported unparseable = %v, want [lunch break]", reported)
	}
}

func TestFreeSlotsMatchesSecondsVariantLabels(t *testing.T) {
	// "09:00" and "09:00:00" refer to the same slot as a timestamp at 09:00.
	labels := []string{"09:00:00", "09:30"}
	booked := []time.Time{mustTime(t, "2026-09-01T09:00:00Z")}

	got := freeSlots(labels, booked, nil)
	want := []string{"09:30"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("freeSlots = %v, want %v", got, want)
	}
}

func TestContainsSlot(t *testing.T) {
	labels := []string{"09:00", "14:30", "not a time"}

	tests := []struct {
		requested string
		want      bool
	}{
		{"2026-09-01T09:00:00Z", true},
		{"2026-09-01T14:30:00Z", true},
		{"2026-09-01T09:00:59Z", true}, // seconds ignored, HH:MM prefix match
		{"2026-09-01T09:15:00Z", false},
		{"2026-09-01T21:00:00Z", false},
	}

	for _, tt := range tests {
		if got := containsSlot(labels, mustTime(t, tt.requested)); got != tt.want {
			t.Errorf("containsSlot(%v) = %v, want %v", tt.requested, got, tt.want)
		}
	}
}

func TestLabelPeriod(t *testing.T) {
	tests := []struct {
		label  string
		period string
		ok     bool
	}{
		{"00:00", PeriodAM, true},
		{"09:00", PeriodAM, true},
		{"11:59", PeriodAM, true},
		{"12:00", PeriodPM, true},
		{"23:30", PeriodPM, true},
		{"2:30PM", PeriodPM, true},
		{"garbage", "", false},
	}

	for _, tt := range tests {
		period, ok := labelPeriod(tt.label)
		if period != tt.period || ok != tt.ok {
			t.Errorf("labelPeriod(%q) = (%q, %v), want (%q, %v)", tt.label, period, ok, tt.period, tt.ok)
		}
	}
}

func TestAvailableInPeriod(t *testing.T) {
	morningOnly := []string{"09:00", "10:30"}
	mixed := []string{"11:00", "15:00"}

	if !availableInPeriod(morningOnly, PeriodAM) {
		t.Error("expected morning availability")
	}
	if availableInPeriod(morningOnly, PeriodPM) {
		t.Error("did not expect afternoon availability")
	}
	if !availableInPeriod(mixed, PeriodAM) || !availableInPeriod(mixed, PeriodPM) {
		t.Error("expected availability in both periods")
	}
	if availableInPeriod([]string{"garbage"}, PeriodAM) {
		t.Error("unparseable labels belong to neither period")
	}
}

func TestDayWindow(t *testing.T) {
	date := mustTime(t, "2026-09-01T15:42:07Z")
	from, to := dayWindow(date)

	if !from.Equal(mustTime(t, "2026-09-01T00:00:00Z")) {
		t.Errorf("from = %v, want start of day", from)
	}
	if !to.Equal(mustTime(t, "2026-09-02T00:00:00Z")) {
		t.Errorf("to = %v, want start of next day", to)
	}

	// Half-open: 23:59:59 is inside, next midnight is not.
	lastMoment := mustTime(t, "2026-09-01T23:59:59Z")
	if lastMoment.Before(from) || !lastMoment.Before(to) {
		t.Error("23:59:59 should fall inside the window")
	}
	nextMidnight := mustTime(t, "2026-09-02T00:00:00Z")
	if nextMidnight.Before(to) {
		t.Error("next midnight should fall outside the half-open window")
	}
}
