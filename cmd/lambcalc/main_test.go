package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileHandler(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "add.lc")
	require.NoError(t, os.WriteFile(input, []byte("(2*3)+4"), 0o644))

	require.Equal(t, 0, CompileHandler([]string{input}, nil))
}

func TestCompileHandlerMissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.lc")
	require.NotEqual(t, 0, CompileHandler([]string{missing}, nil))
}

func TestCompileHandlerNotInScope(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.lc")
	require.NoError(t, os.WriteFile(input, []byte("x + 1"), 0o644))

	require.NotEqual(t, 0, CompileHandler([]string{input}, nil))
}
