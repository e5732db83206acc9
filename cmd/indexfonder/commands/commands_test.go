package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "indexfonder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInitThenEmit_ProducesFrameworkJSON(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "indexfonder.yaml")
	root := &CLI{Config: cfgPath}

	initCmd := &InitCmd{}
	require.NoError(t, initCmd.Run(&Global{}, root))

	outPath := filepath.Join(dir, "framework.json")
	emitCmd := &EmitCmd{Output: outPath}
	require.NoError(t, emitCmd.Run(&Global{}, root))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, "https://indexfonder.se", got["site"])
	require.Equal(t, true, got["compressHTML"])
}

func TestEmit_InvalidConfig_Fails(t *testing.T) {
	cfgPath := writeConfig(t, "site: indexfonder.se\n")
	root := &CLI{Config: cfgPath}

	err := (&EmitCmd{}).Run(&Global{}, root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "validation failed")
}

func TestUpdate_Offline_WritesDataset(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "funds.json")
	cfgPath := writeConfig(t, `site: https://indexfonder.se
compress_html: true
build:
  inline_stylesheets: auto
data:
  output: `+output+`
`)
	root := &CLI{Config: cfgPath}

	require.NoError(t, (&UpdateCmd{Offline: true}).Run(&Global{}, root))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Contains(t, string(data), "Avanza Zero")
	require.Contains(t, string(data), "lastUpdated")
}

func TestCheck_ValidConfig_Succeeds(t *testing.T) {
	cfgPath := writeConfig(t, "site: https://indexfonder.se\n")
	root := &CLI{Config: cfgPath}
	require.NoError(t, (&CheckCmd{Runs: 3}).Run(&Global{}, root))
}
