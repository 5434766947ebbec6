package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureRoot = "../../peripheral/testdata/cc"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, fixtureRoot, outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 6 peripheral files")

	_, err = os.Stat(filepath.Join(outDir, "Monitor.lua"))
	assert.NoError(t, err)
}

func TestGenerateNeedsTwoArgs(t *testing.T) {
	_, err := execute(t, fixtureRoot)
	assert.Error(t, err)
}

func TestGenerateMissingRoot(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "missing"), t.TempDir())
	assert.Error(t, err)
}

func TestGenerateWithConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ccstub.toml")
	require.NoError(t, os.WriteFile(path, []byte("stub_extension = \".d.lua\"\n"), 0o644))
	outDir := t.TempDir()

	_, err := execute(t, "--config", path, fixtureRoot, outDir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(outDir, "Speaker.d.lua"))
	assert.NoError(t, err)
}

func TestDump(t *testing.T) {
	out, err := execute(t, "dump", "--format", "line", fixtureRoot)
	require.NoError(t, err)
	assert.Contains(t, out, "class\tSpeakerPeripheral\tspeaker\t")
	assert.NotContains(t, out, "class\tTermMethods\t")

	out, err = execute(t, "dump", "--all", "-f", "line", fixtureRoot)
	require.NoError(t, err)
	assert.Contains(t, out, "class\tTermMethods\t")
}

func TestDumpUnknownFormat(t *testing.T) {
	_, err := execute(t, "dump", "--format", "xml", fixtureRoot)
	assert.ErrorContains(t, err, "unknown format")
}
