package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const keyBidSubmit = "bid:submit:%s"

// BidSubmitLimiter throttles bid submissions per freelancer. Disabled (nil)
// when rate limiting is off; a nil limiter allows everything.
type BidSubmitLimiter struct {
	enabled bool
	bucket  *TokenBucket
	rate    float64
	burst   int
}

func NewBidSubmitLimiter(cfg config.Config) (*BidSubmitLimiter, error) {
	limitCfg := cfg.BidRateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("bid rate limit requires redis addr")
	}
	if limitCfg.Rate <= 0 || limitCfg.Burst <= 0 {
		return nil, errors.New("bid rate limit rate and burst must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &BidSubmitLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		rate:    limitCfg.Rate,
		burst:   limitCfg.Burst,
	}, nil
}

func (l *BidSubmitLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *BidSubmitLimiter) Allow(ctx context.Context, freelancerID snowflake.ID) (Result, error) {
	if !l.Enabled() {
		return Result{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyBidSubmit, freelancerID.String()), l.rate, l.burst)
}
