package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagane/franchise-api/pkg/logger"
)

func TestNamed_TagsComponent(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf}).Named("stock")

	log.Info().Msg("dropped")
	log.Warn().Int64("stock_id", 3).Msg("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "stock", entry["component"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "kept", entry["message"])
	assert.EqualValues(t, 3, entry["stock_id"])
}

func TestNew_UnknownLevelIsInfo(t *testing.T) {
	for _, level := range []string{"", "loud", " INFO "} {
		var buf bytes.Buffer
		log := logger.New(logger.Config{Level: level, Out: &buf})
		log.Debug().Msg("debug")
		log.Info().Msg("info")
		assert.NotContains(t, buf.String(), `"message":"debug"`, level)
		assert.Contains(t, buf.String(), `"message":"info"`, level)
	}
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { logger.Nop().Named("x").Error().Msg("nothing") })
}
