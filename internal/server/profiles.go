package server

import (
	"net/http"
	"strings"

	profiledomain "github.com/gigbridge/gigbridge/internal/profile/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) UpsertProfile(c *gin.Context) {
	var req profiledomain.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	prof, err := s.profileSvc.Upsert(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": prof})
}

func (s *Server) GetProfile(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	prof, err := s.profileSvc.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": prof})
}
