package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	availabilityKeyPrefix = "availability:"
	availabilityTTL       = 5 * time.Minute
)

// AvailabilityCache caches computed free-slot lists per (doctor, date) in
// Redis. The cache is never authoritative: every appointment mutation
// invalidates the affected day, and the booking path always recomputes
// against the database. Cache failures degrade to a recompute, never to an
// error for the caller.
type AvailabilityCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewAvailabilityCache(redisClient *redis.Client, log *logrus.Logger) *AvailabilityCache {
	return &AvailabilityCache{
		redisClient: redisClient,
		log:         log,
	}
}

func availabilityKey(doctorID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s%s:%s", availabilityKeyPrefix, doctorID.String(), date.Format("2006-01-02"))
}

func availabilityDoctorPattern(doctorID uuid.UUID) string {
	return fmt.Sprintf("%s%s:*", availabilityKeyPrefix, doctorID.String())
}

// Get returns the cached slot list and whether it was present.
func (c *AvailabilityCache) Get(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, bool) {
	raw, err := c.redisClient.Get(ctx, availabilityKey(doctorID, date)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warnf("Failed to read availability cache: %+v", err)
		}
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		c.log.Warnf("Failed to decode availability cache entry: %+v", err)
		return nil, false
	}
	return slots, true
}

// Set stores the slot list for the day.
func (c *AvailabilityCache) Set(ctx context.Context, doctorID uuid.UUID, date time.Time, slots []string) {
	raw, err := json.Marshal(slots)
	if err != nil {
		c.log.Warnf("Failed to encode availability cache entry: %+v", err)
		return
	}
	if err := c.redisClient.Set(ctx, availabilityKey(doctorID, date), raw, availabilityTTL).Err(); err != nil {
		c.log.Warnf("Failed to write availability cache: %+v", err)
	}
}

// Invalidate drops the cached day after an appointment mutation.
func (c *AvailabilityCache) Invalidate(ctx context.Context, doctorID uuid.UUID, date time.Time) {
	if err := c.redisClient.Del(ctx, availabilityKey(doctorID, date)).Err(); err != nil {
		c.log.Warnf("Failed to invalidate availability cache: %+v", err)
	}
}

// InvalidateDoctor drops every cached day for the doctor. Used when the
// doctor's availability labels change or the doctor is removed: any cached
// day may be stale, not just one.
func (c *AvailabilityCache) InvalidateDoctor(ctx context.Context, doctorID uuid.UUID) {
	pattern := availabilityDoctorPattern(doctorID)
	var cursor uint64
	for {
		keys, next, err := c.redisClient.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			c.log.Warnf("Failed to scan availability cache: %+v", err)
			return
		}
		if len(keys) > 0 {
			if err := c.redisClient.Del(ctx, keys...).Err(); err != nil {
				c.log.Warnf("Failed to invalidate availability cache: %+v", err)
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
