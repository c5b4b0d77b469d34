package billing

import (
	"context"
	"fmt"
	"regexp"

	"github.com/orfebre/billgen-api/internal/domain/invoice"
)

// GenerateBillUseCase valida el payload de una factura y produce el PDF
// descargable. Es el pipeline completo de la petición: validación → plantilla
// → motor externo → nombre de archivo. Sin estado compartido entre peticiones.
type GenerateBillUseCase struct {
	tmpl     BillTemplate
	renderer BillRenderer
}

// NewGenerateBillUseCase construye el caso de uso inyectando sus dependencias.
func NewGenerateBillUseCase(tmpl BillTemplate, renderer BillRenderer) *GenerateBillUseCase {
	return &GenerateBillUseCase{tmpl: tmpl, renderer: renderer}
}

// Generate ejecuta el pipeline sobre un payload sin tipar.
//
// Retorna:
//   - (pdf, filename, nil, nil)  si todo sale bien.
//   - (nil, "", verrs, nil)      si la validación falla; no se renderiza nada.
//   - (nil, "", nil, err)        ante fallas de render o inesperadas; err
//     envuelve ErrRenderToolUnavailable cuando el motor externo es la causa.
func (uc *GenerateBillUseCase) Generate(ctx context.Context, p invoice.Payload) ([]byte, string, invoice.Errors, error) {
	inv, verrs, err := invoice.Validate(p)
	if err != nil {
		return nil, "", nil, err
	}
	if !verrs.Empty() {
		return nil, "", verrs, nil
	}

	markup, err := uc.tmpl.Render(inv, inv.TotalNetWt())
	if err != nil {
		return nil, "", nil, fmt.Errorf("plantilla de factura: %w", err)
	}

	pdf, err := uc.renderer.RenderPDF(ctx, markup)
	if err != nil {
		return nil, "", nil, err
	}

	return pdf, BillFilename(inv.BillNo, inv.CustName), nil, nil
}

// filenameUnsafe todo carácter fuera de [A-Za-z0-9_.-] se reemplaza por '_'.
var filenameUnsafe = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)

// BillFilename genera el nombre del adjunto: {bill_no}_{cust_name}_invoice.pdf,
// con ambas partes saneadas para que el header Content-Disposition sea seguro.
func BillFilename(billNo, custName string) string {
	if billNo == "" {
		billNo = "invoice"
	}
	if custName == "" {
		custName = "customer"
	}
	return fmt.Sprintf("%s_%s_invoice.pdf",
		filenameUnsafe.ReplaceAllString(billNo, "_"),
		filenameUnsafe.ReplaceAllString(custName, "_"))
}
