package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	loginWindow      = 15 * time.Minute
	loginMaxAttempts = 10
)

// LoginThrottle limits login attempts per email with a fixed-window counter
// in Redis. Key format: login_attempts:<lowercased email>. The throttle
// fails open: if Redis is unreachable the attempt is allowed and the error
// is logged, so an outage of the throttle backend never locks users out.
type LoginThrottle struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client, log zerolog.Logger) *LoginThrottle {
	return &LoginThrottle{client: client, log: log}
}

// Allow records one attempt for the email and reports whether it stays
// within the window budget.
func (t *LoginThrottle) Allow(ctx context.Context, email string) (bool, error) {
	key := t.key(email)

	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		t.log.Warn().Err(err).Msg("login throttle unavailable, allowing attempt")
		return true, nil
	}
	if n == 1 {
		// First attempt in this window starts the clock.
		if err := t.client.Expire(ctx, key, loginWindow).Err(); err != nil {
			t.log.Warn().Err(err).Msg("login throttle expire failed")
		}
	}

	return n <= loginMaxAttempts, nil
}

func (t *LoginThrottle) key(email string) string {
	return fmt.Sprintf("login_attempts:%s", strings.ToLower(email))
}
