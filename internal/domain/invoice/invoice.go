// Package invoice contiene el registro canónico de una factura de joyería y su
// validación. El registro se construye por petición a partir de un payload sin
// tipar, se valida, se consume una vez para generar el documento y se descarta.
//
// Todos los montos (total, impuestos, saldo, valores por línea) son cadenas ya
// formateadas para impresión; el único cálculo numérico del dominio es la
// conciliación por tolerancia entre la suma de líneas y el total declarado.
package invoice

// Invoice registro canónico de una factura. Los campos opcionales quedan en
// cadena vacía o lista vacía tras la validación.
type Invoice struct {
	// Datos del establecimiento
	ID       string `json:"id"`
	ShopName string `json:"shop_name"`
	Estd     string `json:"estd"`
	PhoneNo1 string `json:"phone_no_1"`
	PhoneNo2 string `json:"phone_no_2"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	GST      string `json:"gst"`
	Hallmark string `json:"hallmark"`

	// Datos de la factura
	BillNo    string `json:"bill_no"`
	Date      string `json:"date"`
	ItemType  string `json:"item_type"`
	Purity    string `json:"purity"`
	RatePerGm string `json:"rate_per_gm"`
	SMCode    string `json:"sm_code"`

	// Datos del cliente
	CustName    string `json:"cust_name"`
	CustAddress string `json:"cust_address"`
	CustPhone   string `json:"cust_phone"`
	CustState   string `json:"cust_state"`
	CustPin     string `json:"cust_pin"`

	// Líneas de productos
	ProductItems []ProductItem `json:"product_items"`

	// Resumen financiero (cadenas formateadas, no números)
	TotalAmount        string `json:"total_amount"`
	SGSTPercent        string `json:"sgst_persent"`
	CGSTPercent        string `json:"cgst_persent"`
	SGST               string `json:"sgst"`
	CGST               string `json:"cgst"`
	TotalAmountWithTax string `json:"total_amount_with_tax"`
	RoundOff           string `json:"round_off"`

	// Recibos (abonos) asociados
	Receipts []Receipt `json:"receipts"`

	// Saldo
	BalanceAmount        string `json:"balance_amount"`
	BalanceAmountInWords string `json:"balance_amount_in_words"`

	// Otros
	TC       []string `json:"t_c"`
	BankName string   `json:"bank_name"`
	AcNo     string   `json:"ac_no"`
	IFSC     string   `json:"ifsc"`
	Note     string   `json:"note"`
	Tagline1 string   `json:"tagline_1"`
	Tagline2 string   `json:"tagline_2"`
}

// ProductItem una línea de mercadería de la factura.
type ProductItem struct {
	SiNo          string  `json:"si_no"`
	Des           string  `json:"des"`
	HSNCode       string  `json:"hsn_code"`
	Pc            string  `json:"pc"`
	Purity        string  `json:"purity"`
	NetWt         float64 `json:"net_wt"`
	GoldValue     string  `json:"gold_value"`
	MakingCharges string  `json:"making_charges"`
	Amount        string  `json:"amount"`
}

// Receipt un abono o pago con nombre, mostrado como línea de crédito.
type Receipt struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// TotalNetWt suma el peso neto de todas las líneas. Es un agregado de
// presentación: se calcula al exportar y no se concilia contra ningún campo.
func (inv *Invoice) TotalNetWt() float64 {
	var total float64
	for _, it := range inv.ProductItems {
		total += it.NetWt
	}
	return total
}

// ReceiptNames devuelve los nombres de los recibos en orden.
func (inv *Invoice) ReceiptNames() []string {
	names := make([]string, 0, len(inv.Receipts))
	for _, r := range inv.Receipts {
		names = append(names, r.Name)
	}
	return names
}

// ReceiptValues devuelve los valores de los recibos en orden.
func (inv *Invoice) ReceiptValues() []string {
	values := make([]string, 0, len(inv.Receipts))
	for _, r := range inv.Receipts {
		values = append(values, r.Value)
	}
	return values
}
