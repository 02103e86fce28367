package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveSourcePrefersEvalFlag(t *testing.T) {
	evalText = "1 + 1"
	defer func() { evalText = "" }()
	src, file, err := resolveSource(nil)
	require.NoError(t, err)
	require.Equal(t, "1 + 1", src)
	require.Equal(t, "<eval>", file)
}

func TestResolveSourceReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.ruchy")
	require.NoError(t, os.WriteFile(path, []byte("let x = 1"), 0o644))

	src, file, err := resolveSource([]string{path})
	require.NoError(t, err)
	require.Equal(t, "let x = 1", src)
	require.Equal(t, path, file)
}

func TestResolveSourceRequiresInput(t *testing.T) {
	_, _, err := resolveSource(nil)
	require.Error(t, err)
}

func TestParseSourceReportsParseErrorExitCode(t *testing.T) {
	prog, code := parseSource("<eval>", "let = ")
	require.Nil(t, prog)
	require.Equal(t, exitParseError, code)
}

func TestParseSourceSucceedsOnValidProgram(t *testing.T) {
	prog, code := parseSource("<eval>", "let x = 1")
	require.NotNil(t, prog)
	require.Equal(t, exitOK, code)
}

func TestExitCodeForKindMapsSemanticErrors(t *testing.T) {
	require.Equal(t, exitSemanticErr, exitCodeForKind("TypeError"))
	require.Equal(t, exitSemanticErr, exitCodeForKind("NameError"))
	require.Equal(t, exitSemanticErr, exitCodeForKind("ExhaustivenessError"))
}

func TestExitCodeForKindDefaultsToRuntimeError(t *testing.T) {
	require.Equal(t, exitRuntimeError, exitCodeForKind("DivideByZero"))
	require.Equal(t, exitRuntimeError, exitCodeForKind("IndexOutOfRange"))
}

func TestRunEvalSuccessfulProgram(t *testing.T) {
	prog, code := parseSource("<eval>", "let x = 5; let y = 3; x + y")
	require.Equal(t, exitOK, code)
	require.Equal(t, exitOK, runEval(prog))
}

func TestWasmManifestRendersExportsAsYaml(t *testing.T) {
	prog, code := parseSource("<eval>", "fun add(x, y) { x + y }")
	require.Equal(t, exitOK, code)
	out := wasmManifest("add.ruchy", prog)
	require.Contains(t, out, "name: add")
	require.Contains(t, out, "valid: true")
	require.Contains(t, out, "- name: add")
}
