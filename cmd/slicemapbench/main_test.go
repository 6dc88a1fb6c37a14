package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAllBackends(t *testing.T) {
	var out, errOut bytes.Buffer

	code := run(context.Background(), []string{"--ops", "500", "--workers", "3", "--max-len", "8"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(backends))
	for i, name := range backends {
		assert.True(t, strings.HasPrefix(lines[i], name), lines[i])
		assert.Contains(t, lines[i], " 0 errors)")
	}
}

func TestRunSingleBackend(t *testing.T) {
	var out, errOut bytes.Buffer

	code := run(context.Background(), []string{"-b", "array", "-n", "200", "--remove-rate", "0.5", "--get-rate", "0"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.True(t, strings.HasPrefix(out.String(), "array"))
}

func TestRunZipfLengths(t *testing.T) {
	for _, backend := range []string{"vec", "array", "sparse"} {
		t.Run(backend, func(t *testing.T) {
			var out, errOut bytes.Buffer

			code := run(context.Background(), []string{"-b", backend, "-n", "400", "--dist", "zipf", "--zipf-s", "1.2", "--max-len", "32"}, &out, &errOut)
			require.Equal(t, 0, code, errOut.String())
			assert.True(t, strings.HasPrefix(out.String(), backend))
			assert.Contains(t, out.String(), " 0 errors)")
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown backend", []string{"--backend", "btree"}},
		{"zero workers", []string{"--workers", "0"}},
		{"rates too high", []string{"--remove-rate", "0.8", "--get-rate", "0.5"}},
		{"unknown distribution", []string{"--dist", "normal"}},
		{"zero skew", []string{"--dist", "zipf", "--zipf-s", "0"}},
		{"bad flag", []string{"--nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			assert.Equal(t, 2, run(context.Background(), tt.args, &out, &errOut))
			assert.NotEmpty(t, errOut.String())
			assert.Empty(t, out.String())
		})
	}
}
