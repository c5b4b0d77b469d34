package invoice

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"
)

// Mensajes con contrato de wire fijo: el front-end los muestra tal cual.
const (
	msgRequired      = "This field is required."
	msgBlank         = "This field may not be blank."
	msgNotString     = "Not a valid string."
	msgEmail         = "Enter a valid email address."
	msgNumber        = "A valid number is required."
	msgAmount        = "Amount must be a valid number"
	msgTotalMismatch = "Total amount does not match sum of product items"
	msgTerms         = "Terms and conditions must be a dictionary or list"
	msgExpectedList  = "Expected a list of items."
	msgExpectedDict  = "Invalid data. Expected a dictionary."
)

// toleranceTotal tolerancia absoluta (en unidades de moneda) entre la suma de
// líneas y el total declarado, para absorber redondeos de presentación.
var toleranceTotal = decimal.RequireFromString("0.5")

// Validate transforma un payload sin tipar en el registro canónico o en un mapa
// de errores por campo. Nunca retorna errores de validación como error: el
// tercer valor solo se usa para fallas de programación (p. ej. un total_amount
// que pasó la validación de campo pero no es interpretable como número).
//
// Orden de ejecución: pre-proceso de recibos (zip posicional de receipt_name y
// receipt_value), reglas por campo, y solo si todas pasan, la conciliación de
// totales con tolerancia de 0.5.
func Validate(p Payload) (*Invoice, Errors, error) {
	errs := Errors{}
	p = withZippedReceipts(p)

	f := &fieldReader{rec: p, errs: errs}
	inv := &Invoice{
		ID:       f.optionalString("id", 0),
		ShopName: f.requiredString("shop_name", 255),
		Estd:     f.optionalString("estd", 50),
		PhoneNo1: f.requiredString("phone_no_1", 20),
		PhoneNo2: f.optionalString("phone_no_2", 20),
		Email:    f.requiredString("email", 0),
		Address:  f.requiredString("address", 500),
		GST:      f.requiredString("gst", 50),
		Hallmark: f.optionalString("hallmark", 50),

		BillNo:    f.requiredString("bill_no", 50),
		Date:      f.requiredString("date", 50),
		ItemType:  f.requiredString("item_type", 100),
		Purity:    f.requiredString("purity", 50),
		RatePerGm: f.requiredString("rate_per_gm", 50),
		SMCode:    f.optionalString("sm_code", 50),

		CustName:    f.requiredString("cust_name", 255),
		CustAddress: f.requiredString("cust_address", 500),
		CustPhone:   f.requiredString("cust_phone", 20),
		CustState:   f.requiredString("cust_state", 100),
		CustPin:     f.requiredString("cust_pin", 20),

		TotalAmount:        f.requiredString("total_amount", 50),
		SGSTPercent:        f.requiredString("sgst_persent", 10),
		CGSTPercent:        f.requiredString("cgst_persent", 10),
		SGST:               f.requiredString("sgst", 50),
		CGST:               f.requiredString("cgst", 50),
		TotalAmountWithTax: f.requiredString("total_amount_with_tax", 50),
		RoundOff:           f.optionalString("round_off", 50),

		BalanceAmount:        f.requiredString("balance_amount", 50),
		BalanceAmountInWords: f.requiredString("balance_amount_in_words", 500),

		BankName: f.optionalString("bank_name", 255),
		AcNo:     f.optionalString("ac_no", 50),
		IFSC:     f.optionalString("ifsc", 20),
		Note:     f.optionalString("note", 500),
		Tagline1: f.optionalString("tagline_1", 255),
		Tagline2: f.optionalString("tagline_2", 255),
	}

	if inv.Email != "" && !govalidator.IsEmail(inv.Email) {
		errs.add("email", msgEmail)
	}

	inv.ProductItems = validateProductItems(p, errs)
	inv.Receipts = validateReceipts(p, errs)

	if raw, ok := p["t_c"]; ok && raw != nil {
		tc, valid := normalizeTerms(raw)
		if !valid {
			errs.add("t_c", msgTerms)
		}
		inv.TC = tc
	}
	if inv.TC == nil {
		inv.TC = []string{}
	}
	if inv.Receipts == nil {
		inv.Receipts = []Receipt{}
	}

	if !errs.Empty() {
		return nil, errs, nil
	}

	// Conciliación: suma de líneas vs total declarado, ambos sin separadores de
	// miles. Sin líneas la suma es 0, así que el total debe ser 0-equivalente.
	totalDec, err := decimal.NewFromString(stripSeparators(inv.TotalAmount))
	if err != nil {
		return nil, nil, fmt.Errorf("invoice: total_amount %q no interpretable como número: %w", inv.TotalAmount, err)
	}
	sum := decimal.Zero
	for _, it := range inv.ProductItems {
		// los amounts ya pasaron la validación de campo
		amt, aerr := decimal.NewFromString(stripSeparators(it.Amount))
		if aerr != nil {
			return nil, nil, fmt.Errorf("invoice: amount %q no interpretable como número: %w", it.Amount, aerr)
		}
		sum = sum.Add(amt)
	}
	if sum.Sub(totalDec).Abs().GreaterThan(toleranceTotal) {
		errs.add("total_amount", msgTotalMismatch)
		return nil, errs, nil
	}

	return inv, nil, nil
}

func validateProductItems(p Payload, errs Errors) []ProductItem {
	raw, ok := p["product_items"]
	if !ok || raw == nil {
		errs.add("product_items", msgRequired)
		return nil
	}
	list, ok := asList(raw)
	if !ok {
		errs.add("product_items", msgExpectedList)
		return nil
	}

	items := make([]ProductItem, 0, len(list))
	for i, entry := range list {
		rec, ok := asRecord(entry)
		if !ok {
			errs.add(fmt.Sprintf("product_items[%d]", i), msgExpectedDict)
			continue
		}
		f := &fieldReader{rec: rec, errs: errs, prefix: fmt.Sprintf("product_items[%d].", i)}
		it := ProductItem{
			SiNo:          f.optionalString("si_no", 0),
			Des:           f.requiredString("des", 255),
			HSNCode:       f.optionalString("hsn_code", 50),
			Pc:            f.optionalString("pc", 0),
			Purity:        f.optionalString("purity", 50),
			NetWt:         f.requiredFloat("net_wt"),
			GoldValue:     f.requiredString("gold_value", 50),
			MakingCharges: f.requiredString("making_charges", 50),
		}
		it.Amount = f.requiredString("amount", 50)
		if it.Amount != "" {
			if _, err := decimal.NewFromString(stripSeparators(it.Amount)); err != nil {
				errs.add(f.prefix+"amount", msgAmount)
			}
		}
		items = append(items, it)
	}
	return items
}

func validateReceipts(p Payload, errs Errors) []Receipt {
	raw, ok := p["receipts"]
	if !ok || raw == nil {
		return nil
	}
	list, ok := asList(raw)
	if !ok {
		errs.add("receipts", msgExpectedList)
		return nil
	}

	receipts := make([]Receipt, 0, len(list))
	for i, entry := range list {
		rec, ok := asRecord(entry)
		if !ok {
			errs.add(fmt.Sprintf("receipts[%d]", i), msgExpectedDict)
			continue
		}
		f := &fieldReader{rec: rec, errs: errs, prefix: fmt.Sprintf("receipts[%d].", i)}
		receipts = append(receipts, Receipt{
			Name:  f.requiredString("name", 255),
			Value: f.requiredString("value", 50),
		})
	}
	return receipts
}

// withZippedReceipts instala receipts a partir de las listas planas paralelas
// receipt_name y receipt_value, emparejadas por posición. Pisa cualquier valor
// previo de receipts. Si las listas difieren en largo se trunca a la más corta
// sin reportar error (comportamiento observado, conservado a propósito).
func withZippedReceipts(p Payload) Payload {
	rawNames, okN := p["receipt_name"]
	rawValues, okV := p["receipt_value"]
	if !okN || !okV {
		return p
	}

	names, _ := asList(rawNames)
	values, _ := asList(rawValues)
	n := len(names)
	if len(values) < n {
		n = len(values)
	}

	zipped := make([]any, 0, n)
	for i := 0; i < n; i++ {
		pair := NewObject()
		pair.Set("name", names[i])
		pair.Set("value", values[i])
		zipped = append(zipped, pair)
	}

	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	out["receipts"] = zipped
	return out
}

// normalizeTerms acepta la forma diccionario (se toman los valores, las claves
// se descartan) o la forma lista; cualquier otra forma es inválida. El
// diccionario decodificado de JSON llega como *Object y conserva el orden de
// inserción; un map de Go no lo garantiza, así que se recorre por clave
// ordenada para que el resultado sea determinista.
func normalizeTerms(raw any) ([]string, bool) {
	switch t := raw.(type) {
	case *Object:
		out := make([]string, 0, t.Len())
		for _, v := range t.Values() {
			out = append(out, coerceString(v))
		}
		return out, true
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]string, 0, len(t))
		for _, k := range keys {
			out = append(out, coerceString(t[k]))
		}
		return out, true
	case []string:
		return append([]string(nil), t...), true
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			out = append(out, coerceString(v))
		}
		return out, true
	default:
		return nil, false
	}
}

// ── lectura de campos ─────────────────────────────────────────────────────────

// fieldReader acumula errores de campo sobre un registro (Payload, *Object o
// map[string]any). prefix se antepone a la clave en el mapa de errores para
// los registros anidados (product_items[i]., receipts[i].).
type fieldReader struct {
	rec    any
	errs   Errors
	prefix string
}

func (f *fieldReader) requiredString(key string, maxLen int) string {
	v, ok := valueAt(f.rec, key)
	if !ok || v == nil {
		f.errs.add(f.prefix+key, msgRequired)
		return ""
	}
	s, ok := stringValue(v)
	if !ok {
		f.errs.add(f.prefix+key, msgNotString)
		return ""
	}
	if s == "" {
		f.errs.add(f.prefix+key, msgBlank)
		return ""
	}
	f.checkMaxLen(key, s, maxLen)
	return s
}

func (f *fieldReader) optionalString(key string, maxLen int) string {
	v, ok := valueAt(f.rec, key)
	if !ok || v == nil {
		return ""
	}
	s, ok := stringValue(v)
	if !ok {
		f.errs.add(f.prefix+key, msgNotString)
		return ""
	}
	f.checkMaxLen(key, s, maxLen)
	return s
}

func (f *fieldReader) requiredFloat(key string) float64 {
	v, ok := valueAt(f.rec, key)
	if !ok || v == nil {
		f.errs.add(f.prefix+key, msgRequired)
		return 0
	}
	n, ok := floatValue(v)
	if !ok {
		f.errs.add(f.prefix+key, msgNumber)
		return 0
	}
	return n
}

func (f *fieldReader) checkMaxLen(key, s string, maxLen int) {
	if maxLen > 0 && len([]rune(s)) > maxLen {
		f.errs.add(f.prefix+key, fmt.Sprintf("Ensure this field has no more than %d characters.", maxLen))
	}
}

// ── coerciones ────────────────────────────────────────────────────────────────

func valueAt(rec any, key string) (any, bool) {
	switch r := rec.(type) {
	case Payload:
		v, ok := r[key]
		return v, ok
	case map[string]any:
		v, ok := r[key]
		return v, ok
	case *Object:
		return r.Get(key)
	default:
		return nil, false
	}
}

func asRecord(v any) (any, bool) {
	switch v.(type) {
	case *Object, map[string]any:
		return v, true
	default:
		return nil, false
	}
}

func asList(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// stringValue acepta strings y coerciona números a su forma textual; booleanos,
// listas y objetos no son valores válidos para un campo de texto.
func stringValue(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	default:
		return "", false
	}
}

func floatValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		n, err := t.Float64()
		return n, err == nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func coerceString(v any) string {
	if s, ok := stringValue(v); ok {
		return s
	}
	return fmt.Sprint(v)
}

// stripSeparators quita separadores de miles antes de interpretar un monto.
// La forma cruda, con separadores, se conserva en el registro para impresión.
func stripSeparators(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}
