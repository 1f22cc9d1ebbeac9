package server

import (
	"net/http"
	"strings"

	pipelinedomain "github.com/gigbridge/gigbridge/internal/pipeline/domain"
	"github.com/gin-gonic/gin"
)

type shortlistBody struct {
	BidID string `json:"bid_id"`
	Notes string `json:"notes"`
}

type candidateBody struct {
	FreelancerID string `json:"freelancer_id"`
	BidID        string `json:"bid_id"`
}

func (s *Server) MarkBidViewed(c *gin.Context) {
	bid, err := s.pipelineSvc.MarkViewed(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bid": bid})
}

func (s *Server) ShortlistCandidate(c *gin.Context) {
	var body shortlistBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entry, err := s.pipelineSvc.Shortlist(c.Request.Context(), pipelinedomain.ShortlistRequest{
		BidID: body.BidID,
		Notes: body.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shortlist": entry})
}

func (s *Server) HireCandidate(c *gin.Context) {
	var body candidateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	proj, err := s.pipelineSvc.Hire(c.Request.Context(), pipelinedomain.HireRequest{
		ProjectID:    strings.TrimSpace(c.Param("id")),
		FreelancerID: body.FreelancerID,
		BidID:        body.BidID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": proj})
}

func (s *Server) RejectCandidate(c *gin.Context) {
	var body candidateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.pipelineSvc.Reject(c.Request.Context(), pipelinedomain.RejectRequest{
		ProjectID:    strings.TrimSpace(c.Param("id")),
		FreelancerID: body.FreelancerID,
		BidID:        body.BidID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

func (s *Server) CompleteProject(c *gin.Context) {
	proj, err := s.pipelineSvc.Complete(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": proj})
}

func (s *Server) CancelProject(c *gin.Context) {
	proj, err := s.pipelineSvc.Cancel(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": proj})
}

type scheduleInterviewBody struct {
	FreelancerID string `json:"freelancer_id"`
	ScheduledAt  string `json:"scheduled_at"`
	MeetingLink  string `json:"meeting_link"`
	Notes        string `json:"notes"`
}

func (s *Server) ScheduleInterview(c *gin.Context) {
	var body scheduleInterviewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	scheduledAt, err := parseOptionalTime(body.ScheduledAt, false)
	if err != nil {
		AbortWithError(c, newValidationError("scheduled_at", "invalid_time", "invalid time"))
		return
	}

	interview, err := s.pipelineSvc.ScheduleInterview(c.Request.Context(), pipelinedomain.ScheduleInterviewRequest{
		ProjectID:    strings.TrimSpace(c.Param("id")),
		FreelancerID: body.FreelancerID,
		ScheduledAt:  scheduledAt,
		MeetingLink:  body.MeetingLink,
		Notes:        body.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"interview": interview})
}

func (s *Server) ListInterviews(c *gin.Context) {
	interviews, err := s.pipelineSvc.ListInterviews(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"interviews": interviews})
}
