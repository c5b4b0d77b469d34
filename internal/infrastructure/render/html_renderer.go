// Package render produce el documento de marcado (HTML) de la factura a partir
// del registro canónico validado. El layout visual vive en invoice.html, un
// asset embebido y versionado junto al binario.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/orfebre/billgen-api/internal/domain/invoice"
)

//go:embed invoice.html
var invoiceHTML string

// templateData contexto con nombre que consume la plantilla.
type templateData struct {
	User       *invoice.Invoice
	TotalNetWt float64
}

// HTMLBillTemplate implementa billing.BillTemplate con html/template.
type HTMLBillTemplate struct {
	tmpl *template.Template
}

// NewHTMLBillTemplate parsea la plantilla embebida. Falla solo ante un asset
// corrupto, es decir, en el arranque y no por petición.
func NewHTMLBillTemplate() (*HTMLBillTemplate, error) {
	t, err := template.New("invoice.html").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).Parse(invoiceHTML)
	if err != nil {
		return nil, fmt.Errorf("render: parsear invoice.html: %w", err)
	}
	return &HTMLBillTemplate{tmpl: t}, nil
}

// Render mezcla el registro y el peso neto total en la plantilla.
func (h *HTMLBillTemplate) Render(user *invoice.Invoice, totalNetWt float64) (string, error) {
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, templateData{User: user, TotalNetWt: totalNetWt}); err != nil {
		return "", fmt.Errorf("render: ejecutar plantilla: %w", err)
	}
	return buf.String(), nil
}
