// Package store holds the mirror's document store abstraction and its redis
// implementation. Documents are idempotent upserts keyed by source primary
// key, so re-syncing a row is always safe.
package store

import (
	"context"

	"github.com/gigbridge/gigbridge/internal/mirror/domain"
)

type DocStore interface {
	PutProject(ctx context.Context, doc domain.ProjectDoc) error
	PutBid(ctx context.Context, doc domain.BidDoc) error
}
