package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestLoadSingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	mainFile := filepath.Join(tmpDir, "main.beancount")
	err := os.WriteFile(mainFile, []byte(`
2024-01-01 open Assets:Checking USD
2024-01-02 * "Test"
  Assets:Checking  100.00 USD
  Equity:Opening-Balances
`), 0644)
	assert.NoError(t, err)

	ldr := New()
	f, err := ldr.Load(context.Background(), mainFile)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(f.Tree.Directives()))
}

func TestDiscoverWithoutRecursive(t *testing.T) {
	tmpDir := t.TempDir()

	includedFile := filepath.Join(tmpDir, "included.beancount")
	assert.NoError(t, os.WriteFile(includedFile, []byte(`
2024-01-01 open Assets:Savings USD
`), 0644))

	mainFile := filepath.Join(tmpDir, "main.beancount")
	assert.NoError(t, os.WriteFile(mainFile, []byte(`
include "included.beancount"

2024-01-01 open Assets:Checking USD
`), 0644))

	ldr := New()
	files, err := ldr.Discover(context.Background(), mainFile)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(files))
	assert.Equal(t, mainFile, files[0].Path)
}

func TestDiscoverWithRecursive(t *testing.T) {
	tmpDir := t.TempDir()

	includedFile := filepath.Join(tmpDir, "included.beancount")
	assert.NoError(t, os.WriteFile(includedFile, []byte(`
2024-01-01 open Assets:Savings USD
`), 0644))

	mainFile := filepath.Join(tmpDir, "main.beancount")
	assert.NoError(t, os.WriteFile(mainFile, []byte(`
include "included.beancount"

2024-01-01 open Assets:Checking USD
`), 0644))

	ldr := New(WithRecursive())
	files, err := ldr.Discover(context.Background(), mainFile)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(files))

	paths := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f.Path)
		assert.NoError(t, err)
		paths[abs] = true
	}
	absIncluded, err := filepath.Abs(includedFile)
	assert.NoError(t, err)
	assert.True(t, paths[absIncluded])
}

func TestDiscoverDeduplicatesRepeatedIncludes(t *testing.T) {
	tmpDir := t.TempDir()

	sharedFile := filepath.Join(tmpDir, "shared.beancount")
	assert.NoError(t, os.WriteFile(sharedFile, []byte(`
2024-01-01 open Assets:Shared USD
`), 0644))

	subFile := filepath.Join(tmpDir, "sub.beancount")
	assert.NoError(t, os.WriteFile(subFile, []byte(`
include "shared.beancount"

2024-01-01 open Assets:Sub USD
`), 0644))

	mainFile := filepath.Join(tmpDir, "main.beancount")
	assert.NoError(t, os.WriteFile(mainFile, []byte(`
include "sub.beancount"
include "shared.beancount"

2024-01-01 open Assets:Checking USD
`), 0644))

	ldr := New(WithRecursive())
	files, err := ldr.Discover(context.Background(), mainFile)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(files))
}

func TestLoadMissingFile(t *testing.T) {
	ldr := New()
	_, err := ldr.Load(context.Background(), filepath.Join(t.TempDir(), "missing.beancount"))
	assert.Error(t, err)
}

func TestLoadBytesParseError(t *testing.T) {
	ldr := New()
	_, err := ldr.LoadBytes(context.Background(), "<stdin>", []byte("not a valid directive @@@\n"))
	assert.Error(t, err)
}
