package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	t.Run("path only", func(t *testing.T) {
		opts, err := parseArgs([]string{"lc.fits"})
		require.NoError(t, err)
		assert.Equal(t, "lc.fits", opts.inputPath)
		assert.False(t, opts.overwrite)
		assert.Nil(t, opts.zeroPoint)
		assert.Empty(t, opts.format)
	})

	t.Run("all flags", func(t *testing.T) {
		opts, err := parseArgs([]string{"--overwrite", "--zero-point", "7.5", "--format", "xlsx", "lc.fits"})
		require.NoError(t, err)
		assert.True(t, opts.overwrite)
		require.NotNil(t, opts.zeroPoint)
		assert.Equal(t, 7.5, *opts.zeroPoint)
		assert.Equal(t, "xlsx", opts.format)
	})

	t.Run("explicit zero override is distinguishable", func(t *testing.T) {
		opts, err := parseArgs([]string{"--zero-point", "0", "lc.fits"})
		require.NoError(t, err)
		require.NotNil(t, opts.zeroPoint)
		assert.Equal(t, 0.0, *opts.zeroPoint)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := parseArgs([]string{"--overwrite"})
		assert.Error(t, err)
	})

	t.Run("too many arguments", func(t *testing.T) {
		_, err := parseArgs([]string{"a.fits", "b.fits"})
		assert.Error(t, err)
	})
}

func TestResolveOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format string
		want   string
	}{
		{"fits to csv", "data/lc.fits", "csv", "data/lc.csv"},
		{"fit to csv", "lc.fit", "csv", "lc.csv"},
		{"fits to xlsx", "lc.fits", "xlsx", "lc.xlsx"},
		{"no extension", "lightcurve", "csv", "lightcurve.csv"},
		{"dotted directory", "runs.v2/lc.fits", "csv", "runs.v2/lc.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveOutputPath(tt.input, tt.format))
		})
	}
}
