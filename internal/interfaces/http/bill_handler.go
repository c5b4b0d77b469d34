package http

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/orfebre/billgen-api/internal/application/billing"
	"github.com/orfebre/billgen-api/internal/application/dto"
	"github.com/orfebre/billgen-api/internal/domain/invoice"
	"github.com/orfebre/billgen-api/pkg/logger"
)

// Mensajes fijos del contrato HTTP; el front-end los compara literalmente.
const (
	msgToolUnavailable = "PDF generation tool is not installed or accessible"
	msgGenerateFailed  = "Failed to generate invoice"
)

// BillHandler maneja la generación de facturas PDF.
type BillHandler struct {
	uc  *billing.GenerateBillUseCase
	log *logger.Logger
}

// NewBillHandler construye el handler.
func NewBillHandler(uc *billing.GenerateBillUseCase, log *logger.Logger) *BillHandler {
	return &BillHandler{uc: uc, log: log.Component("bill_handler")}
}

// Generate valida el payload de la factura, la renderiza y retorna el PDF.
//
//	@Summary		Generar factura PDF
//	@Description	Valida el payload de la factura (JSON o form) y retorna el PDF como adjunto descargable
//	@Tags			bills
//	@Accept			json
//	@Accept			x-www-form-urlencoded
//	@Accept			mpfd
//	@Produce		application/pdf
//	@Produce		json
//	@Param			invoice	body		object	true	"Registro de la factura"
//	@Success		200		{file}		file
//	@Failure		400		{object}	map[string][]string
//	@Failure		500		{object}	dto.ErrorResponse
//	@Router			/api/bills [post]
//
// POST /api/bills
func (h *BillHandler) Generate(c *fiber.Ctx) error {
	reqID := uuid.NewString()

	payload, err := decodePayload(c)
	if err != nil {
		h.log.Warn().Str("request_id", reqID).Err(err).Msg("cuerpo de petición no decodificable")
		return c.Status(fiber.StatusBadRequest).JSON(invoice.Errors{
			invoice.NonFieldKey: {"Malformed request body"},
		})
	}

	pdfBytes, filename, verrs, err := h.uc.Generate(c.Context(), payload)
	if !verrs.Empty() {
		h.log.Warn().
			Str("request_id", reqID).
			Interface("errors", verrs).
			Msg("validación de factura fallida")
		return c.Status(fiber.StatusBadRequest).JSON(verrs)
	}
	if err != nil {
		if errors.Is(err, billing.ErrRenderToolUnavailable) {
			h.log.Error().Str("request_id", reqID).Err(err).Msg("motor de conversión PDF no disponible")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: msgToolUnavailable,
			})
		}
		h.log.Error().Str("request_id", reqID).Err(err).Msg("generación de factura fallida")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   msgGenerateFailed,
			Details: err.Error(),
		})
	}

	h.log.Info().
		Str("request_id", reqID).
		Str("filename", filename).
		Int("pdf_bytes", len(pdfBytes)).
		Msg("factura generada")

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

// decodePayload construye el payload sin tipar según el content type: JSON con
// orden de claves preservado, o form (urlencoded / multipart) con claves
// repetidas y notación product_items[i][campo].
func decodePayload(c *fiber.Ctx) (invoice.Payload, error) {
	ct := c.Get(fiber.HeaderContentType)
	switch {
	case strings.HasPrefix(ct, fiber.MIMEApplicationJSON):
		return invoice.DecodeJSON(bytes.NewReader(c.Body()))
	case strings.HasPrefix(ct, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, fmt.Errorf("form multipart: %w", err)
		}
		return payloadFromValues(form.Value), nil
	case strings.HasPrefix(ct, fiber.MIMEApplicationForm):
		values := make(map[string][]string)
		c.Request().PostArgs().VisitAll(func(key, val []byte) {
			k := string(key)
			values[k] = append(values[k], string(val))
		})
		return payloadFromValues(values), nil
	default:
		return nil, fmt.Errorf("content type no soportado: %q", ct)
	}
}
