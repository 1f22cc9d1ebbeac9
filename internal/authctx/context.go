// Package authctx carries the authenticated actor through request contexts.
// Pipeline and domain services read the caller's identity from here instead
// of any ambient session state.
package authctx

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Actor identifies the authenticated caller.
type Actor struct {
	UserID snowflake.ID
	Role   string
}

type actorKey struct{}

// WithActor stores the actor in the context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor from context, if set.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	actor, ok := ctx.Value(actorKey{}).(Actor)
	if !ok || actor.UserID == 0 {
		return Actor{}, false
	}
	return actor, true
}
