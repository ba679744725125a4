package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, p FileSystemProvider, name string) string {
	t.Helper()
	rc, err := p.Open(name)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestMemoryFileSystem(t *testing.T) {
	m := NewMemoryFileSystem()
	m.AddFile("data/customer.csv", "customer_id,name\n1,Ann\n")
	m.AddFile("/data/vendor.csv", "vendor_id,name\n")
	m.AddFile("data/nested/x.csv", "")

	assert.Equal(t, "customer_id,name\n1,Ann\n", readAll(t, m, "data/customer.csv"))
	assert.Equal(t, "vendor_id,name\n", readAll(t, m, "./data/vendor.csv"))

	info, err := m.Stat("data")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	entries, err := m.ReadDir("data")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "customer.csv", entries[0].Name())
	assert.Equal(t, "vendor.csv", entries[1].Name())

	_, err = m.Open("data/missing.csv")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	_, err = m.Stat("nowhere")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, err = m.ReadDir("nowhere")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOSFileSystem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("a"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	p := NewOSFileSystem()
	assert.Equal(t, "a", readAll(t, p, p.Join(dir, "a.csv")))

	entries, err := p.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.csv", entries[0].Name())

	_, err = p.Open(filepath.Join(dir, "sub"))
	assert.Error(t, err)

	_, err = p.Open(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFSProvider(t *testing.T) {
	p := NewFSProvider(fstest.MapFS{
		"seed/category.csv": {Data: []byte("category_id,name\n1,Books\n")},
		"seed/sub/x.csv":    {Data: []byte("x")},
	})

	assert.Equal(t, "category_id,name\n1,Books\n", readAll(t, p, p.Join("seed", "category.csv")))

	entries, err := p.ReadDir("seed")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "category.csv", entries[0].Name())

	_, err = p.Stat("seed/missing.csv")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
