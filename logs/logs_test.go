package logs

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gotest.tools/assert"
)

func Test_Open(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	console := &bytes.Buffer{}
	s, err := Open(dir, zerolog.InfoLevel, console)
	assert.NilError(t, err)
	l := s.Named("ingestion")
	l.Info().Int("rows", 1000).Msg("dataset loaded")
	s.Logger.Debug().Msg("invisible")
	assert.NilError(t, s.Close())

	name := filepath.Base(s.Path)
	assert.Assert(t, strings.HasSuffix(name, ".log"))
	_, err = time.Parse(TimeLayout, strings.TrimSuffix(name, ".log"))
	assert.NilError(t, err)

	b, err := os.ReadFile(s.Path)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(b), `"component":"ingestion"`))
	assert.Assert(t, strings.Contains(string(b), `"rows":1000`))
	assert.Assert(t, !strings.Contains(string(b), "invisible"))
	assert.Assert(t, strings.Contains(console.String(), "dataset loaded"))
}

func Test_ParseLevel(t *testing.T) {
	l, err := ParseLevel("")
	assert.NilError(t, err)
	assert.Equal(t, l, zerolog.InfoLevel)
	l, err = ParseLevel("debug")
	assert.NilError(t, err)
	assert.Equal(t, l, zerolog.DebugLevel)
	_, err = ParseLevel("loud")
	assert.Assert(t, err != nil)
}
