package providers

import (
	"github.com/gigbridge/gigbridge/internal/providers/email"
	"github.com/gigbridge/gigbridge/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	pdf.Module,
)
