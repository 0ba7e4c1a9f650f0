package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevel(t *testing.T) {
	log, closer, err := newLogger(Config{Level: "warn"}, os.Stderr)
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
}

func TestNewDefaultLevel(t *testing.T) {
	log, closer, err := newLogger(Config{}, os.Stderr)
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNewBadLevel(t *testing.T) {
	_, _, err := newLogger(Config{Level: "loud"}, os.Stderr)
	assert.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serialmon.log")

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	log, closer, err := newLogger(Config{File: path}, w)
	require.NoError(t, err)

	log.Error().Str("port", "/dev/ttyUSB0").Msg("stream ended")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"port":"/dev/ttyUSB0"`), "got %q", data)
	assert.True(t, strings.Contains(string(data), `"level":"error"`), "got %q", data)
}
