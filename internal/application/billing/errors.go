package billing

import "errors"

// ErrRenderToolUnavailable el motor externo de conversión a PDF no se pudo
// invocar (binario inexistente, sin permiso de ejecución, o timeout).
var ErrRenderToolUnavailable = errors.New("motor de conversión PDF no disponible")
