//go:build linux && cgo

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	flags := pflag.NewFlagSet("wltriangle", pflag.ContinueOnError)
	flags.Int("width", 800, "")
	flags.Int("height", 600, "")
	flags.String("title", "wlgl", "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wlgl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 320\nheight: 240\ntitle: from file\n"), 0644))

	cfg, err := loadConfig(newFlags(t, "--height", "200"), path)
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
	assert.Equal(t, "from file", cfg.Title)
}

func TestLoadConfigRejectsBadSize(t *testing.T) {
	_, err := loadConfig(newFlags(t, "--width", "0"), "")
	assert.Error(t, err)
}
