package pdf

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orfebre/billgen-api/internal/application/billing"
)

func TestRenderArgs_OpcionesDePagina(t *testing.T) {
	args := renderArgs()

	// página A4, UTF-8 y márgenes de 10mm por los cuatro lados
	assert.Contains(t, args, "A4")
	assert.Contains(t, args, "UTF-8")
	count := 0
	for _, a := range args {
		if a == "10mm" {
			count++
		}
	}
	assert.Equal(t, 4, count, "los cuatro márgenes deben ser 10mm")
}

func TestResolveBinary_SinOverride(t *testing.T) {
	r := NewWkhtmltopdfRenderer("", time.Second)
	assert.Equal(t, defaultBinary, r.resolveBinary())
}

func TestResolveBinary_OverrideInexistente_CaeAPath(t *testing.T) {
	r := NewWkhtmltopdfRenderer("/ruta/que/no/existe/wkhtmltopdf", time.Second)
	assert.Equal(t, defaultBinary, r.resolveBinary(),
		"una ruta configurada que no existe debe caer al descubrimiento por PATH")
}

func TestResolveBinary_OverrideExistente(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "wkhtmltopdf")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))

	r := NewWkhtmltopdfRenderer(bin, time.Second)
	assert.Equal(t, bin, r.resolveBinary())
}

func TestIsToolUnavailable_Clasificacion(t *testing.T) {
	assert.True(t, isToolUnavailable(&exec.Error{Name: "wkhtmltopdf", Err: exec.ErrNotFound}))
	assert.True(t, isToolUnavailable(os.ErrNotExist))
	assert.True(t, isToolUnavailable(os.ErrPermission))
	assert.False(t, isToolUnavailable(errors.New("exit status 1")))
}

func TestRenderPDF_BinarioSinPermisoDeEjecucion(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permisos de ejecución POSIX")
	}

	dir := t.TempDir()
	bin := filepath.Join(dir, "wkhtmltopdf")
	// existe en disco pero sin bit de ejecución: el motor no es invocable
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o644))

	r := NewWkhtmltopdfRenderer(bin, time.Second)
	_, err := r.RenderPDF(context.Background(), "<html></html>")

	require.Error(t, err)
	assert.True(t, errors.Is(err, billing.ErrRenderToolUnavailable),
		"un binario no ejecutable debe clasificarse como herramienta no disponible, no como falla genérica")
}
