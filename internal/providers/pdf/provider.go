// Package pdf renders hire-agreement documents.
package pdf

import (
	"context"
	"io"
)

type AgreementData struct {
	ProjectTitle   string
	ProjectSlug    string
	ClientName     string
	FreelancerName string
	Amount         string
	DeliveryDays   int
	HiredAt        string
	Status         string
}

type Provider interface {
	GenerateAgreement(ctx context.Context, data AgreementData) (io.Reader, error)
}
