package server

import (
	"github.com/gigbridge/gigbridge/internal/authctx"
	"github.com/gin-gonic/gin"
)

const contextUserIDKey = "user_id"

// AuthRequired resolves the session cookie to a user and stores the actor in
// the request context for downstream services.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.identitySvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			s.sessions.Clear(c)
			AbortWithError(c, err)
			return
		}

		actor := authctx.Actor{
			UserID: session.User.ID,
			Role:   session.User.Role,
		}
		c.Request = c.Request.WithContext(authctx.WithActor(c.Request.Context(), actor))
		c.Set(contextUserIDKey, session.User.ID.String())
		c.Next()
	}
}

// RequireRole gates a route to the given marketplace roles. Admins are not
// implicitly allowed; list them when they should pass.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := authctx.ActorFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		AbortWithError(c, ErrForbidden)
	}
}

// authorize consults the casbin enforcer for the (object, action) pair.
func (s *Server) authorize(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.authzSvc.Authorize(c.Request.Context(), object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}
