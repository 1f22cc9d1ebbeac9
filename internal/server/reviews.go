package server

import (
	"net/http"
	"strings"

	reviewdomain "github.com/gigbridge/gigbridge/internal/review/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) SubmitReview(c *gin.Context) {
	var req reviewdomain.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rev, err := s.reviewSvc.Submit(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": rev})
}

func (s *Server) ListUserReviews(c *gin.Context) {
	reviews, err := s.reviewSvc.ListForUser(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (s *Server) ListPendingReviews(c *gin.Context) {
	reviews, err := s.reviewSvc.ListPending(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (s *Server) ApproveReview(c *gin.Context) {
	rev, err := s.reviewSvc.Approve(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": rev})
}

func (s *Server) RejectReview(c *gin.Context) {
	rev, err := s.reviewSvc.Reject(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": rev})
}
