package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCommand_TextOutput(t *testing.T) {
	var stdout bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "--arch", "rv32i", "--ext", "m", "--ext", "c"})

	require.NoError(t, cmd.Execute())
	out := stdout.String()
	assert.Contains(t, out, "arch:       rv32imc")
	assert.Contains(t, out, "abi:        ilp32")
	assert.Contains(t, out, "toolchain:")
}

func TestConfigCommand_JSONOutput(t *testing.T) {
	var stdout bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "--format", "json", "--abi", "ilp32e"})

	require.NoError(t, cmd.Execute())

	var resp Response
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
	require.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ilp32e", data["abi"])
	assert.Equal(t, "rv32i", data["base_arch"])
}

func TestConfigCommand_DoesNotBuild(t *testing.T) {
	outDir := t.TempDir()

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "--out-dir", outDir})
	require.NoError(t, cmd.Execute())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "config must not produce artifacts")
}
