package http

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/orfebre/billgen-api/internal/domain/invoice"
)

// Claves que siempre se tratan como lista aunque lleguen con un solo valor:
// las dos listas planas paralelas de recibos y los términos y condiciones.
var alwaysList = map[string]bool{
	"receipt_name":  true,
	"receipt_value": true,
	"t_c":           true,
}

// indexedKey notación de listas de registros en forms: product_items[0][des].
var indexedKey = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\[(\d+)\]\[([A-Za-z_][A-Za-z0-9_]*)\]$`)

// payloadFromValues adapta form data (claves repetidas, sufijo [] y notación
// indexada de corchetes) al mismo payload sin tipar que produce el decode JSON.
// Todos los valores quedan como string; el validador hace el resto.
func payloadFromValues(values map[string][]string) invoice.Payload {
	p := invoice.Payload{}
	indexed := map[string]map[int]*invoice.Object{}

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		if m := indexedKey.FindStringSubmatch(key); m != nil {
			field, idxStr, sub := m[1], m[2], m[3]
			idx, _ := strconv.Atoi(idxStr)
			if indexed[field] == nil {
				indexed[field] = map[int]*invoice.Object{}
			}
			if indexed[field][idx] == nil {
				indexed[field][idx] = invoice.NewObject()
			}
			indexed[field][idx].Set(sub, vals[0])
			continue
		}
		if n := len(key); n > 2 && key[n-2:] == "[]" {
			p[key[:n-2]] = toAnyList(vals)
			continue
		}
		if alwaysList[key] || len(vals) > 1 {
			p[key] = toAnyList(vals)
			continue
		}
		p[key] = vals[0]
	}

	// Las listas indexadas se ordenan por índice; los huecos se omiten.
	for field, byIdx := range indexed {
		idxs := make([]int, 0, len(byIdx))
		for i := range byIdx {
			idxs = append(idxs, i)
		}
		sort.Ints(idxs)
		list := make([]any, 0, len(idxs))
		for _, i := range idxs {
			list = append(list, byIdx[i])
		}
		p[field] = list
	}

	return p
}

func toAnyList(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
