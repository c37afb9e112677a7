package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHasAllSubcommands(t *testing.T) {
	expected := []string{"decompose", "kscan", "chart", "map", "runs", "version"}
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, names[name], "missing subcommand %s", name)
	}
}

func TestRunsHasAllSubcommands(t *testing.T) {
	expected := []string{"status", "export", "clear", "migrate"}
	names := make(map[string]bool)
	for _, c := range runsCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, names[name], "missing runs subcommand %s", name)
	}
}

func TestVersionCommand(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"version"})

	require.NoError(t, rootCmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "rentlens CLI")
	assert.Contains(t, out, "Version:")
	assert.Contains(t, out, "Runtime:")
}
