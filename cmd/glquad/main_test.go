package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"glquad/internal/graphics"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintSource(t *testing.T) {
	src := graphics.ProgramSource{Vertex: "v\n", Fragment: "f\n"}

	var buf bytes.Buffer
	require.NoError(t, printSource(&buf, src, ""))
	assert.Equal(t, "--- vertex ---\nv\n--- fragment ---\nf\n", buf.String())

	buf.Reset()
	require.NoError(t, printSource(&buf, src, "fragment"))
	assert.Equal(t, "f\n", buf.String())

	require.ErrorIs(t, printSource(&buf, src, "geometry"), graphics.ErrUnknownStage)
}

func TestLoadConfigAppliesChangedFlags(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "glquad.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("window:\n  width: 1024\n  title: from-file\n"), 0o644))

	configPath = cfgFile
	t.Cleanup(func() { configPath = "" })

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVar(&overrides.Window.Height, "height", 0, "")
	cmd.Flags().StringVar(&overrides.Window.Title, "title", "", "")
	require.NoError(t, cmd.Flags().Set("height", "720"))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "from-file", cfg.Window.Title, "unchanged flags must not override the file")
}

func TestLoadConfigRejectsInvalidOverride(t *testing.T) {
	configPath = ""
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVar(&overrides.Window.Width, "width", 0, "")
	require.NoError(t, cmd.Flags().Set("width", "-5"))

	_, err := loadConfig(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window size must be positive")
}

func TestParseCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Basic.shader")
	require.NoError(t, os.WriteFile(path, []byte("#shader vertex\nv\n#shader fragment\nf\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"parse", path, "--stage", "vertex"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		parseStage = ""
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "v\n", out.String())
}
