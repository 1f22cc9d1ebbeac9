package server

import (
	"net/http"
	"strings"

	projectdomain "github.com/gigbridge/gigbridge/internal/project/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateProject(c *gin.Context) {
	var req projectdomain.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	proj, err := s.projectSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": proj})
}

func (s *Server) GetProject(c *gin.Context) {
	idOrSlug := strings.TrimSpace(c.Param("id"))
	if idOrSlug == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	proj, err := s.projectSvc.Get(c.Request.Context(), idOrSlug)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": proj})
}

func (s *Server) ListProjects(c *gin.Context) {
	var req projectdomain.ListProjectsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.projectSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
