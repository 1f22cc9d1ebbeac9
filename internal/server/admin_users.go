package server

import (
	"net/http"
	"strings"

	identitydomain "github.com/gigbridge/gigbridge/internal/identity/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListUsers(c *gin.Context) {
	limit := 0
	if raw, err := parseOptionalInt64(c.Query("limit")); err == nil && raw != nil {
		limit = int(*raw)
	}

	users, err := s.identitySvc.ListUsers(c.Request.Context(), identitydomain.ListUsersRequest{
		Role:   strings.TrimSpace(c.Query("role")),
		Search: strings.TrimSpace(c.Query("q")),
		Limit:  limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

func (s *Server) SuspendUser(c *gin.Context) {
	user, err := s.identitySvc.SetSuspended(c.Request.Context(), strings.TrimSpace(c.Param("id")), true)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

func (s *Server) UnsuspendUser(c *gin.Context) {
	user, err := s.identitySvc.SetSuspended(c.Request.Context(), strings.TrimSpace(c.Param("id")), false)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}
