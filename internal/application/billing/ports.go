package billing

import (
	"context"

	"github.com/orfebre/billgen-api/internal/domain/invoice"
)

// BillTemplate renderiza el registro validado a un documento de marcado (HTML).
// La plantilla es un asset versionado aparte; este contrato solo fija los
// campos con nombre que recibe: el registro completo y el peso neto total.
type BillTemplate interface {
	Render(user *invoice.Invoice, totalNetWt float64) (string, error)
}

// BillRenderer convierte el documento de marcado en el artefacto binario (PDF)
// mediante el motor de conversión externo. Si el motor no se puede invocar
// (no instalado, sin permisos, o excede el tiempo máximo) el error envuelve
// ErrRenderToolUnavailable para distinguirlo de cualquier otra falla.
type BillRenderer interface {
	RenderPDF(ctx context.Context, markup string) ([]byte, error)
}
