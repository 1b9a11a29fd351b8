package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func newTestCache(t *testing.T) *AvailabilityCache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	return NewAvailabilityCache(client, logrus.New())
}

func TestAvailabilityCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	doctorID := uuid.New()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	if _, ok := cache.Get(ctx, doctorID, date); ok {
		t.Fatal("expected cache miss before Set")
	}

	slots := []string{"09:00", "10:00"}
	cache.Set(ctx, doctorID, date, slots)

	got, ok := cache.Get(ctx, doctorID, date)
	if !ok {
		t.Fatal("expected cache hit after Set")
	}
	if !reflect.DeepEqual(got, slots) {
		t.Errorf("cached slots = %v, want %v", got, slots)
	}
}

func TestAvailabilityCacheInvalidateDay(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	doctorID := uuid.New()
	day1 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	cache.Set(ctx, doctorID, day1, []string{"09:00"})
	cache.Set(ctx, doctorID, day2, []string{"10:00"})

	cache.Invalidate(ctx, doctorID, day1)

	if _, ok := cache.Get(ctx, doctorID, day1); ok {
		t.Error("invalidated day should be a miss")
	}
	if _, ok := cache.Get(ctx, doctorID, day2); !ok {
		t.Error("other day should still be cached")
	}
}

func TestAvailabilityCacheInvalidateDoctorDropsAllDays(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	doctorID := uuid.New()
	otherDoctorID := uuid.New()
	day1 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	cache.Set(ctx, doctorID, day1, []string{"09:00"})
	cache.Set(ctx, doctorID, day2, []string{"09:30"})
	cache.Set(ctx, otherDoctorID, day1, []string{"14:00"})

	cache.InvalidateDoctor(ctx, doctorID)

	if _, ok := cache.Get(ctx, doctorID, day1); ok {
		t.Error("day1 should have been invalidated")
	}
	if _, ok := cache.Get(ctx, doctorID, day2); ok {
		t.Error("day2 should have been invalidated")
	}
	if _, ok := cache.Get(ctx, otherDoctorID, day1); !ok {
		t.Error("other doctor's entry should survive")
	}
}

func TestAvailabilityDoctorPatternMatchesStoredKeys(t *testing.T) {
	// InvalidateDoctor scans with this pattern; it must cover every key
	// availabilityKey can produce for the doctor and no one else's.
	doctorID := uuid.New()
	otherID := uuid.New()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	pattern := availabilityDoctorPattern(doctorID)
	prefix := pattern[:len(pattern)-1]

	key := availabilityKey(doctorID, date)
	if len(key) <= len(prefix) || key[:len(prefix)] != prefix {
		t.Errorf("key %q not covered by pattern %q", key, pattern)
	}

	otherKey := availabilityKey(otherID, date)
	if otherKey[:len(prefix)] == prefix {
		t.Errorf("pattern %q wrongly covers %q", pattern, otherKey)
	}
}
