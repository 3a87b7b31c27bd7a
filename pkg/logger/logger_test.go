package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/semillas-api/pkg/logger"
)

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Service: "semillas-api", Out: &buf})

	log.Named("produccion").Info().Str("lot_number", "OI-100-L001").Msg("lote creado")

	var ev map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, "info", ev["level"])
	assert.Equal(t, "semillas-api", ev["service"])
	assert.Equal(t, "produccion", ev["component"])
	assert.Equal(t, "OI-100-L001", ev["lot_number"])
	assert.Equal(t, "lote creado", ev["message"])
}

func TestNew_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "WARN", Out: &buf})

	log.Info().Msg("descartado")
	log.Warn().Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "descartado")
	assert.Contains(t, out, "visible")
}

func TestNew_NivelDesconocidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "verboso", Out: &buf})

	log.Debug().Msg("debug")
	log.Info().Msg("info")

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestNop_NoEscribe(t *testing.T) {
	assert.NotPanics(t, func() { logger.Nop().Error().Msg("nada") })
}
