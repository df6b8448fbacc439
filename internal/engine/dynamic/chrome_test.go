package dynamic

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindChrome_EnvOverride(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("execute bit check is unix-only")
	}

	dir := t.TempDir()
	exe := filepath.Join(dir, "chrome")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))
	plain := filepath.Join(dir, "not-exec")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0o644))

	t.Setenv("PHONECRAWL_CHROME_PATH", plain)
	t.Setenv("CHROME_PATH", exe)
	assert.Equal(t, exe, FindChrome(), "non-executable override is skipped")

	t.Setenv("PHONECRAWL_CHROME_PATH", exe)
	assert.Equal(t, exe, FindChrome())
}

func TestIsExecutable(t *testing.T) {
	assert.False(t, isExecutable(filepath.Join(t.TempDir(), "missing")))
	assert.False(t, isExecutable(t.TempDir()))
}

func TestAllocatorOptions(t *testing.T) {
	base := allocatorOptions(AllocatorConfig{ChromePath: "/opt/chrome", Headless: true})
	full := allocatorOptions(AllocatorConfig{ChromePath: "/opt/chrome", Headless: true, UserAgent: "bot", Proxy: "http://p:3128"})
	assert.Len(t, full, len(base)+2)
}
