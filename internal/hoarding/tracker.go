package hoarding

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// StrikeThreshold abandonments within the streak window trip the penalty.
	StrikeThreshold = 3

	StreakWindow = time.Hour
	PenaltyTTL   = 30 * time.Minute
)

func streakKey(userID string) string  { return fmt.Sprintf("hoarding_streak:%s", userID) }
func penaltyKey(userID string) string { return fmt.Sprintf("hoarding_penalty:%s", userID) }

// Tracker keeps the per-user sliding abandonment counters in Redis. All
// read-modify-write goes through Redis primitives (INCR, SET EX), never
// read-then-write, so concurrent expirations for one user cannot undercount.
type Tracker struct {
	rdb *redis.Client
}

func NewTracker(rdb *redis.Client) *Tracker {
	return &Tracker{rdb: rdb}
}

// RecordAbandonment counts one unpaid expiration for the user. When the
// streak reaches the threshold it arms the penalty key, resets the streak and
// reports tripped=true — exactly once per cycle: INCR hands each caller a
// unique count, and only the caller that lands exactly on the threshold
// trips, so a concurrent strike racing in before the reset cannot trip again.
func (t *Tracker) RecordAbandonment(ctx context.Context, userID string) (tripped bool, streak int64, err error) {
	n, err := t.rdb.Incr(ctx, streakKey(userID)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("incr streak: %w", err)
	}
	if n == 1 {
		// first strike in the window starts the clock
		if err := t.rdb.Expire(ctx, streakKey(userID), StreakWindow).Err(); err != nil {
			return false, n, fmt.Errorf("expire streak: %w", err)
		}
	}
	if n != StrikeThreshold {
		return false, n, nil
	}

	if err := t.rdb.Set(ctx, penaltyKey(userID), "1", PenaltyTTL).Err(); err != nil {
		return false, n, fmt.Errorf("set penalty: %w", err)
	}
	if err := t.rdb.Del(ctx, streakKey(userID)).Err(); err != nil {
		return true, n, fmt.Errorf("reset streak: %w", err)
	}
	return true, n, nil
}

// IsPenalized reports whether the cool-down lock is active for the user.
func (t *Tracker) IsPenalized(ctx context.Context, userID string) (bool, error) {
	n, err := t.rdb.Exists(ctx, penaltyKey(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Streak reads the current counter; a missing key reads as 0.
func (t *Tracker) Streak(ctx context.Context, userID string) (int64, error) {
	n, err := t.rdb.Get(ctx, streakKey(userID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}
