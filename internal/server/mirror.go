package server

import (
	"net/http"

	mirrordomain "github.com/gigbridge/gigbridge/internal/mirror/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) TriggerMirrorSync(c *gin.Context) {
	if s.mirrorSvc == nil {
		AbortWithError(c, mirrordomain.ErrDisabled)
		return
	}

	var req mirrordomain.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.Action == "" {
		req.Action = mirrordomain.ActionAll
	}

	result, err := s.mirrorSvc.Sync(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
