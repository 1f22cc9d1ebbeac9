package server

import (
	"net/http"
	"strings"

	messagedomain "github.com/gigbridge/gigbridge/internal/message/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) SendMessage(c *gin.Context) {
	var req messagedomain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	msg, err := s.messageSvc.Send(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

func (s *Server) ListThread(c *gin.Context) {
	msgs, err := s.messageSvc.ListThread(c.Request.Context(),
		strings.TrimSpace(c.Param("id")),
		strings.TrimSpace(c.Param("userId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (s *Server) MarkThreadRead(c *gin.Context) {
	err := s.messageSvc.MarkThreadRead(c.Request.Context(),
		strings.TrimSpace(c.Param("id")),
		strings.TrimSpace(c.Param("userId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
