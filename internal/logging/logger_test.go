package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSONLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf, "warn", "auto")

	log.Info().Msg("hidden")
	log.Warn().Str("component", "ingest").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "ingest", line["component"])
}

func TestSetup_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf, "loud", "json")
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestSetup_Pretty(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf, "info", "pretty")
	log.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := IntoContext(context.Background(), Setup(&buf, "info", "json"))

	ctxLog := FromContext(ctx)
	ctxLog.Info().Msg("from ctx")
	assert.Contains(t, buf.String(), "from ctx")

	bgLog := FromContext(context.Background())
	bgLog.Info().Msg("dropped")
	assert.NotContains(t, buf.String(), "dropped")
}
