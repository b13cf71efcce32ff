// Package presence tracks short-lived typing flags. Each (typer,
// counterpart) pair has at most one record, upserted on every keystroke
// burst; absence means "not typing". The record lives in Redis with an
// expiry of twice the typing window, so a crashed client cannot leave a
// counterpart stuck in "typing" for more than a few seconds, and reads
// apply the same staleness bound on the stored timestamp as a second guard.
package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Tracker is the typing-presence contract used by handlers and aggregation.
type Tracker interface {
	Indicate(ctx context.Context, typerID, counterpartID int) error
	Stop(ctx context.Context, typerID, counterpartID int) error
	Typing(ctx context.Context, typerID, counterpartID int) (bool, error)
}

// Service is the Redis-backed Tracker.
type Service struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// New connects to Redis and returns a Service with the given typing window.
func New(ctx context.Context, redisURL string, ttl time.Duration) (*Service, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Service{client: client, ttl: ttl, now: time.Now}, nil
}

// Close releases the Redis connection.
func (s *Service) Close() error {
	return s.client.Close()
}

// Ping checks the Redis connection.
func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func typingKey(typerID, counterpartID int) string {
	return fmt.Sprintf("typing:%d:%d", typerID, counterpartID)
}

// Indicate upserts the typing flag and restarts its expiry. Concurrent
// calls from the same typer serialize to last-write-wins on the single key.
func (s *Service) Indicate(ctx context.Context, typerID, counterpartID int) error {
	stamp := s.now().UTC().Format(time.RFC3339Nano)
	return s.client.Set(ctx, typingKey(typerID, counterpartID), stamp, 2*s.ttl).Err()
}

// Stop deletes the flag immediately; called on send and on input blur.
// Deleting an absent key is a no-op, so Stop is idempotent.
func (s *Service) Stop(ctx context.Context, typerID, counterpartID int) error {
	return s.client.Del(ctx, typingKey(typerID, counterpartID)).Err()
}

// Typing derives the observer-facing state from record presence plus the
// staleness bound. A missing key, an unparseable stamp or a stamp older
// than twice the window all resolve to "not typing".
func (s *Service) Typing(ctx context.Context, typerID, counterpartID int) (bool, error) {
	raw, err := s.client.Get(ctx, typingKey(typerID, counterpartID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return fresh(raw, s.now(), s.ttl), nil
}

// fresh reports whether a stored stamp is within the staleness bound.
func fresh(raw string, now time.Time, ttl time.Duration) bool {
	stamp, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return false
	}
	return now.Sub(stamp) <= 2*ttl
}
