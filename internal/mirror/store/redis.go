package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gigbridge/gigbridge/internal/mirror/domain"
	redis "github.com/redis/go-redis/v9"
)

const (
	keyProjectDoc = "mirror:project:%s"
	keyBidDoc     = "mirror:bid:%s"
)

type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) PutProject(ctx context.Context, doc domain.ProjectDoc) error {
	return s.put(ctx, fmt.Sprintf(keyProjectDoc, doc.ID), doc)
}

func (s *RedisStore) PutBid(ctx context.Context, doc domain.BidDoc) error {
	return s.put(ctx, fmt.Sprintf(keyBidDoc, doc.ID), doc)
}

func (s *RedisStore) put(ctx context.Context, key string, doc any) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, payload, 0).Err()
}
