package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type MarotoProvider struct{}

func New() Provider {
	return &MarotoProvider{}
}

func (p *MarotoProvider) GenerateAgreement(ctx context.Context, data AgreementData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Engagement Agreement", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(8,
		text.NewCol(12, fmt.Sprintf("Project: %s", data.ProjectTitle), props.Text{
			Size:  12,
			Style: fontstyle.Bold,
		}),
	)
	m.AddRow(6,
		text.NewCol(12, fmt.Sprintf("Reference: %s", data.ProjectSlug), props.Text{Size: 9}),
	)

	m.AddRow(4, line.NewCol(12))

	m.AddRow(24,
		col.New(6).Add(
			text.New("Client", props.Text{Top: 0, Style: fontstyle.Bold}),
			text.New(data.ClientName, props.Text{Top: 6}),
		),
		col.New(6).Add(
			text.New("Freelancer", props.Text{Top: 0, Style: fontstyle.Bold}),
			text.New(data.FreelancerName, props.Text{Top: 6}),
		),
	)

	m.AddRow(28,
		col.New(12).Add(
			text.New("Terms", props.Text{Top: 0, Style: fontstyle.Bold}),
			text.New(fmt.Sprintf("Agreed amount: %s", data.Amount), props.Text{Top: 6}),
			text.New(fmt.Sprintf("Delivery window: %d days", data.DeliveryDays), props.Text{Top: 11}),
			text.New(fmt.Sprintf("Engagement started: %s", data.HiredAt), props.Text{Top: 16}),
			text.New(fmt.Sprintf("Project status: %s", data.Status), props.Text{Top: 21}),
		),
	)

	m.AddRow(4, line.NewCol(12))

	m.AddRow(10,
		text.NewCol(12,
			"This document summarizes the engagement recorded on the platform at the time of generation.",
			props.Text{Size: 8, Align: align.Left},
		),
	)

	document, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(document.GetBytes()), nil
}
