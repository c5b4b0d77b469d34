package invoice

import (
	"encoding/json"
	"fmt"
	"io"
)

// Payload registro sin tipar tal como llega del cliente, previo a la validación.
// Los valores son string, json.Number, bool, nil, []any u *Object.
type Payload map[string]any

// Object objeto JSON que conserva el orden de inserción de sus claves.
//
// encoding/json decodifica objetos a map[string]any y destruye el orden, pero
// la forma "diccionario" de t_c debe normalizarse a sus valores en orden de
// inserción, así que el decode se hace a mano sobre el stream de tokens.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject construye un objeto vacío.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set agrega o reemplaza una clave. Las claves nuevas conservan su posición de llegada.
func (o *Object) Set(key string, v any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get devuelve el valor de una clave y si existe.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys devuelve las claves en orden de inserción.
func (o *Object) Keys() []string {
	return o.keys
}

// Values devuelve los valores en orden de inserción de sus claves.
func (o *Object) Values() []any {
	vals := make([]any, 0, len(o.keys))
	for _, k := range o.keys {
		vals = append(vals, o.values[k])
	}
	return vals
}

// Len cantidad de claves.
func (o *Object) Len() int { return len(o.keys) }

// DecodeJSON decodifica el cuerpo JSON de la petición en un Payload sin tipar.
// Los objetos anidados se representan como *Object (orden preservado) y los
// números como json.Number, de modo que el validador reciba los valores crudos.
func DecodeJSON(r io.Reader) (Payload, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("payload: se esperaba un objeto JSON, llegó %v", tok)
	}

	root, err := decodeObject(dec)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}

	p := make(Payload, root.Len())
	for _, k := range root.Keys() {
		v, _ := root.Get(k)
		p[k] = v
	}
	return p, nil
}

// decodeObject consume los pares clave/valor hasta el '}' de cierre.
// El token '{' de apertura ya fue consumido por el caller.
func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("clave de objeto inválida: %v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	// '}' de cierre
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	// ']' de cierre
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); ok {
		switch d {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("delimitador inesperado: %v", d)
		}
	}
	// string, json.Number, bool o nil
	return tok, nil
}
