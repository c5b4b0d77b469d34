package invoice_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orfebre/billgen-api/internal/domain/invoice"
)

func TestDecodeJSON_ObjetoConOrdenPreservado(t *testing.T) {
	body := `{
		"shop_name": "Sri Lakshmi Jewellers",
		"t_c": {"c": "tercero", "a": "primero", "b": "segundo"}
	}`

	p, err := invoice.DecodeJSON(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, "Sri Lakshmi Jewellers", p["shop_name"])

	tc, ok := p["t_c"].(*invoice.Object)
	require.True(t, ok, "un objeto JSON debe decodificarse como *Object")
	assert.Equal(t, []string{"c", "a", "b"}, tc.Keys(),
		"las claves deben conservar el orden del documento, no el del map")
	assert.Equal(t, []any{"tercero", "primero", "segundo"}, tc.Values())
}

func TestDecodeJSON_ListasYNumeros(t *testing.T) {
	body := `{
		"product_items": [
			{"des": "Gold Chain", "net_wt": 12.5, "amount": "83,125.00"}
		],
		"receipt_name": ["Advance"],
		"receipt_value": ["10,000.00"]
	}`

	p, err := invoice.DecodeJSON(strings.NewReader(body))
	require.NoError(t, err)

	items, ok := p["product_items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)

	item, ok := items[0].(*invoice.Object)
	require.True(t, ok)

	netWt, _ := item.Get("net_wt")
	// los números llegan crudos como json.Number, sin pérdida de formato
	assert.Equal(t, json.Number("12.5"), netWt)

	names, ok := p["receipt_name"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"Advance"}, names)
}

func TestDecodeJSON_CuerpoMalformado(t *testing.T) {
	_, err := invoice.DecodeJSON(strings.NewReader(`{"shop_name": `))
	assert.Error(t, err)
}

func TestDecodeJSON_NoEsObjeto(t *testing.T) {
	_, err := invoice.DecodeJSON(strings.NewReader(`[1, 2, 3]`))
	assert.Error(t, err, "el payload raíz debe ser un objeto")
}

func TestDecodeJSON_AlimentaValidacionCompleta(t *testing.T) {
	// el pipeline JSON → Payload → Validate de punta a punta, con t_c en forma
	// diccionario y recibos en forma de listas planas
	body := `{
		"shop_name": "Sri Lakshmi Jewellers",
		"phone_no_1": "9876543210",
		"email": "contact@lakshmijewels.in",
		"address": "12 Bazaar Street, Madurai",
		"gst": "33AAACL1234F1Z5",
		"bill_no": "INV-7",
		"date": "2024-03-01",
		"item_type": "Gold",
		"purity": "22K",
		"rate_per_gm": "6,250.00",
		"cust_name": "Anand Kumar",
		"cust_address": "45 North Street",
		"cust_phone": "9123456780",
		"cust_state": "Tamil Nadu",
		"cust_pin": "625001",
		"product_items": [
			{"des": "Gold Chain", "net_wt": "12.5", "gold_value": "78,125.00",
			 "making_charges": "5,000.00", "amount": "83,125.00"}
		],
		"total_amount": "83,125.00",
		"sgst_persent": "1.5",
		"cgst_persent": "1.5",
		"sgst": "1,246.88",
		"cgst": "1,246.88",
		"total_amount_with_tax": "85,618.76",
		"balance_amount": "85,618.76",
		"balance_amount_in_words": "Eighty five thousand",
		"t_c": {"1": "No returns", "2": "E&OE"},
		"receipt_name": ["Advance"],
		"receipt_value": ["10,000.00"]
	}`

	p, err := invoice.DecodeJSON(strings.NewReader(body))
	require.NoError(t, err)

	inv, verrs, err := invoice.Validate(p)
	require.NoError(t, err)
	require.True(t, verrs.Empty(), "%v", verrs)

	assert.Equal(t, []string{"No returns", "E&OE"}, inv.TC)
	require.Len(t, inv.Receipts, 1)
	assert.Equal(t, invoice.Receipt{Name: "Advance", Value: "10,000.00"}, inv.Receipts[0])
}
