package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/pkg/logger"
)

func TestNew_JSONConNivelYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	l.Info().Msg("no se escribe")
	l.Component("scheduler").Warn().Str("job", "digest").Msg("aviso")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "scheduler", entry["component"])
	assert.Equal(t, "digest", entry["job"])
	assert.Equal(t, "aviso", entry["message"])
}

func TestNew_NivelInvalidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "verbose", Output: &buf})

	l.Debug().Msg("debug")
	l.Info().Msg("info")

	assert.NotContains(t, buf.String(), `"debug"`)
	assert.Contains(t, buf.String(), `"info"`)
}
