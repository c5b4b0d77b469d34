// Package pdf implementa billing.BillRenderer invocando wkhtmltopdf como
// subproceso: HTML por stdin, PDF por stdout. La invocación es síncrona y
// acotada por timeout; no hay reintentos ni pooling de procesos.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/orfebre/billgen-api/internal/application/billing"
)

const defaultBinary = "wkhtmltopdf"

// WkhtmltopdfRenderer convierte HTML a PDF con el binario wkhtmltopdf.
type WkhtmltopdfRenderer struct {
	binPath string // override opcional; vacío = resolver vía PATH
	timeout time.Duration
}

// NewWkhtmltopdfRenderer construye el renderer. binPath puede ser vacío.
func NewWkhtmltopdfRenderer(binPath string, timeout time.Duration) *WkhtmltopdfRenderer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &WkhtmltopdfRenderer{binPath: binPath, timeout: timeout}
}

// RenderPDF ejecuta el motor con página A4, codificación UTF-8 y márgenes de
// 10mm por los cuatro lados. Clasifica las fallas de invocación (binario
// inexistente, sin permisos, timeout) como billing.ErrRenderToolUnavailable;
// cualquier otra salida distinta de cero se reporta con el stderr del proceso.
func (r *WkhtmltopdfRenderer) RenderPDF(ctx context.Context, markup string) ([]byte, error) {
	renderID := uuid.NewString()
	bin := r.resolveBinary()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := append(renderArgs(), "-", "-")
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = strings.NewReader(markup)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: wkhtmltopdf excedió %s (render %s)", billing.ErrRenderToolUnavailable, r.timeout, renderID)
		}
		if isToolUnavailable(err) {
			return nil, fmt.Errorf("%w: %s: %v", billing.ErrRenderToolUnavailable, bin, err)
		}
		return nil, fmt.Errorf("wkhtmltopdf (render %s): %w: %s", renderID, err, strings.TrimSpace(stderr.String()))
	}

	log.Debug().
		Str("render_id", renderID).
		Str("binary", bin).
		Dur("elapsed", time.Since(start)).
		Int("pdf_bytes", out.Len()).
		Msg("conversión HTML → PDF completada")

	return out.Bytes(), nil
}

// resolveBinary devuelve la ruta configurada si existe en disco; si no,
// cae al descubrimiento por PATH en lugar de fallar de inmediato.
func (r *WkhtmltopdfRenderer) resolveBinary() string {
	if r.binPath == "" {
		return defaultBinary
	}
	if _, err := os.Stat(r.binPath); err != nil {
		log.Warn().
			Str("configured_path", r.binPath).
			Msg("ruta de wkhtmltopdf configurada no existe, se resuelve vía PATH")
		return defaultBinary
	}
	return r.binPath
}

// isToolUnavailable detecta que el proceso ni siquiera se pudo arrancar.
func isToolUnavailable(err error) bool {
	return errors.Is(err, exec.ErrNotFound) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission)
}

func renderArgs() []string {
	return []string{
		"--page-size", "A4",
		"--encoding", "UTF-8",
		"--margin-top", "10mm",
		"--margin-right", "10mm",
		"--margin-bottom", "10mm",
		"--margin-left", "10mm",
		"--quiet",
	}
}
