package dto

// ErrorResponse cuerpo de error HTTP para fallas de servicio (500).
// Los errores de validación (400) viajan como invoice.Errors sin envolver.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
