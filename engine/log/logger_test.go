package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	t.Cleanup(func() {
		SetSink(os.Stdout)
		SetLevel(Notice)
	})

	SetLevel(Warning)
	l := New("log-test")
	l.Info("hidden")
	l.Warningf("shown %d", 7)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 7")
	assert.Contains(t, out, "[log-test]")
}

func TestSetSinkKeepsLevel(t *testing.T) {
	var first, second bytes.Buffer
	SetSink(&first)
	t.Cleanup(func() {
		SetSink(os.Stdout)
		SetLevel(Notice)
	})
	SetLevel(Error)

	SetSink(&second)
	New("log-test").Warning("dropped")
	assert.Empty(t, second.String())
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"debug":   Debug,
		"INFO":    Info,
		"":        Notice,
		"warn":    Warning,
		"warning": Warning,
		" error ": Error,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
