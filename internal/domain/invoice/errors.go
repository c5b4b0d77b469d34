package invoice

// NonFieldKey clave bajo la que se reportan los errores que no pertenecen a un
// campo concreto (p. ej. la conciliación de totales fallida se atribuye a
// total_amount, pero errores de forma del payload van aquí).
const NonFieldKey = "non_field"

// Errors mapa campo → mensajes de validación legibles. Es el cuerpo literal de
// la respuesta 400; nunca se reporta por encima de nivel warning.
type Errors map[string][]string

func (e Errors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Empty indica si no se registró ningún error.
func (e Errors) Empty() bool { return len(e) == 0 }
