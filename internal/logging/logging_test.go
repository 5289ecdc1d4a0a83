package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jrsteele09/linkedin-post-stats/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONOutsideDev(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, "PROD", "info")

	l.Info().Str("user", "alice").Msg("logged in")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "logged in", entry["message"])
	require.Equal(t, "alice", entry["user"])
	require.Equal(t, "info", entry["level"])
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, "PROD", "warn")

	l.Info().Msg("dropped")
	require.Zero(t, buf.Len())

	l.Warn().Msg("kept")
	require.Contains(t, buf.String(), "kept")
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, "PROD", "loud")

	l.Debug().Msg("dropped")
	require.Zero(t, buf.Len())
	l.Info().Msg("kept")
	require.Contains(t, buf.String(), "kept")
}
