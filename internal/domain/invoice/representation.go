package invoice

import "encoding/json"

// MarshalJSON serializa el registro canónico acompañado siempre de las listas
// planas receipt_name y receipt_value, regeneradas desde receipts en orden,
// para los consumidores que todavía esperan la forma antigua del wire.
func (inv Invoice) MarshalJSON() ([]byte, error) {
	type alias Invoice // sin métodos, evita la recursión
	return json.Marshal(struct {
		alias
		ReceiptName  []string `json:"receipt_name"`
		ReceiptValue []string `json:"receipt_value"`
	}{
		alias:        alias(inv),
		ReceiptName:  inv.ReceiptNames(),
		ReceiptValue: inv.ReceiptValues(),
	})
}
