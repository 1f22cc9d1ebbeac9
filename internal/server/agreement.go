package server

import (
	"fmt"
	"net/http"
	"strings"

	projectdomain "github.com/gigbridge/gigbridge/internal/project/domain"
	"github.com/gigbridge/gigbridge/internal/providers/pdf"
	"github.com/gin-gonic/gin"
)

// DownloadAgreement renders the hire agreement for a project that has an
// assigned freelancer. Visibility follows the accepted bid: client, hired
// freelancer, or admin.
func (s *Server) DownloadAgreement(c *gin.Context) {
	projectID := strings.TrimSpace(c.Param("id"))

	proj, err := s.projectSvc.Get(c.Request.Context(), projectID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if proj.Status != projectdomain.StatusInProgress && proj.Status != projectdomain.StatusCompleted {
		AbortWithError(c, ErrNotFound)
		return
	}

	bid, err := s.bidSvc.AcceptedForProject(c.Request.Context(), proj.ID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	client, err := s.identitySvc.GetUser(c.Request.Context(), proj.ClientID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	freelancer, err := s.identitySvc.GetUser(c.Request.Context(), bid.FreelancerID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.pdfProvider.GenerateAgreement(c.Request.Context(), pdf.AgreementData{
		ProjectTitle:   proj.Title,
		ProjectSlug:    proj.Slug,
		ClientName:     client.DisplayName,
		FreelancerName: freelancer.DisplayName,
		Amount:         fmt.Sprintf("%.2f", bid.Amount),
		DeliveryDays:   bid.DeliveryDays,
		HiredAt:        bid.UpdatedAt.UTC().Format("2006-01-02"),
		Status:         string(proj.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "agreement-"+proj.Slug+".pdf"))
	c.DataFromReader(http.StatusOK, -1, "application/pdf", doc, nil)
}
