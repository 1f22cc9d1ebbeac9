package server

import (
	"net/http"
	"strings"

	supportdomain "github.com/gigbridge/gigbridge/internal/support/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) OpenTicket(c *gin.Context) {
	var req supportdomain.OpenTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ticket, err := s.supportSvc.Open(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ticket": ticket})
}

func (s *Server) ListMyTickets(c *gin.Context) {
	tickets, err := s.supportSvc.ListMine(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

func (s *Server) ListTickets(c *gin.Context) {
	tickets, err := s.supportSvc.List(c.Request.Context(), strings.TrimSpace(c.Query("status")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

func (s *Server) SetTicketInReview(c *gin.Context) {
	ticket, err := s.supportSvc.SetInReview(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}

type resolveTicketBody struct {
	Resolution string `json:"resolution"`
}

func (s *Server) ResolveTicket(c *gin.Context) {
	var body resolveTicketBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ticket, err := s.supportSvc.Resolve(c.Request.Context(), strings.TrimSpace(c.Param("id")), body.Resolution)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}

func (s *Server) CloseTicket(c *gin.Context) {
	ticket, err := s.supportSvc.Close(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}
