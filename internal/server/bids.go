package server

import (
	"net/http"
	"strings"

	biddomain "github.com/gigbridge/gigbridge/internal/bid/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) SubmitBid(c *gin.Context) {
	var req biddomain.SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	bid, err := s.bidSvc.Submit(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bid": bid})
}

func (s *Server) GetBid(c *gin.Context) {
	bid, err := s.bidSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bid": bid})
}

func (s *Server) WithdrawBid(c *gin.Context) {
	if err := s.bidSvc.Withdraw(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "withdrawn"})
}

func (s *Server) ListMyBids(c *gin.Context) {
	bids, err := s.bidSvc.ListMine(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bids": bids})
}

func (s *Server) ListProjectBids(c *gin.Context) {
	bids, err := s.bidSvc.ListByProject(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bids": bids})
}
