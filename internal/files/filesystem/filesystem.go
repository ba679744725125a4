// Package filesystem abstracts the location of bulk-load source files.
//
// Implementations:
//   - OSFileSystem: reads from the operating system
//   - MemoryFileSystem: in-memory files for tests
//   - FSProvider: any fs.FS, typically an embed.FS of bundled sample data
//
// Missing paths are reported with an error wrapping fs.ErrNotExist.
package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// FileInfo is an alias for fs.FileInfo.
type FileInfo = fs.FileInfo

// FileSystemProvider opens source files and lists source directories.
type FileSystemProvider interface {
	// Open returns a reader for the file at name. The caller closes it.
	Open(name string) (io.ReadCloser, error)

	// Stat returns file information for name.
	Stat(name string) (FileInfo, error)

	// ReadDir lists the regular files directly inside dir, sorted by name.
	ReadDir(dir string) ([]FileInfo, error)

	// Join builds a path in the provider's path syntax.
	Join(elem ...string) string
}

var (
	_ FileSystemProvider = (*OSFileSystem)(nil)
	_ FileSystemProvider = (*MemoryFileSystem)(nil)
	_ FileSystemProvider = (*FSProvider)(nil)
)

// OSFileSystem implements FileSystemProvider for the OS filesystem.
type OSFileSystem struct{}

func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (p *OSFileSystem) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s is a directory", name)
	}
	return f, nil
}

func (p *OSFileSystem) Stat(name string) (FileInfo, error) {
	return os.Stat(name)
}

func (p *OSFileSystem) ReadDir(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	return regularFiles(entries)
}

func (p *OSFileSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// FSProvider adapts an fs.FS. Paths use forward slashes and no leading slash.
type FSProvider struct {
	fsys fs.FS
}

func NewFSProvider(fsys fs.FS) *FSProvider {
	return &FSProvider{fsys: fsys}
}

func (p *FSProvider) Open(name string) (io.ReadCloser, error) {
	f, err := p.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (p *FSProvider) Stat(name string) (FileInfo, error) {
	return fs.Stat(p.fsys, name)
}

func (p *FSProvider) ReadDir(dir string) ([]FileInfo, error) {
	entries, err := fs.ReadDir(p.fsys, dir)
	if err != nil {
		return nil, err
	}
	return regularFiles(entries)
}

func (p *FSProvider) Join(elem ...string) string {
	return path.Join(elem...)
}

func regularFiles(entries []fs.DirEntry) ([]FileInfo, error) {
	result := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to get file info for %s: %w", entry.Name(), err)
		}
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result, nil
}

// memoryFileInfo implements fs.FileInfo for in-memory files.
type memoryFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

func (f *memoryFileInfo) Mode() fs.FileMode {
	if f.isDir {
		return 0755 | fs.ModeDir
	}
	return 0644
}

// MemoryFileSystem is an in-memory FileSystemProvider for tests.
// Paths are slash-separated; parent directories are created implicitly.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{files: make(map[string][]byte)}
}

// AddFile stores content at name, replacing any previous content.
func (m *MemoryFileSystem) AddFile(name, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[clean(name)] = []byte(content)
}

func (m *MemoryFileSystem) Open(name string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.files[clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (m *MemoryFileSystem) Stat(name string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	name = clean(name)
	if content, ok := m.files[name]; ok {
		return &memoryFileInfo{name: path.Base(name), size: int64(len(content))}, nil
	}
	if m.isDir(name) {
		return &memoryFileInfo{name: path.Base(name), isDir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

func (m *MemoryFileSystem) ReadDir(dir string) ([]FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	dir = clean(dir)
	if !m.isDir(dir) {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: fs.ErrNotExist}
	}

	var result []FileInfo
	for name, content := range m.files {
		if path.Dir(name) == dir {
			result = append(result, &memoryFileInfo{name: path.Base(name), size: int64(len(content))})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result, nil
}

func (m *MemoryFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

func (m *MemoryFileSystem) isDir(dir string) bool {
	if dir == "." {
		return true
	}
	for name := range m.files {
		if strings.HasPrefix(name, dir+"/") {
			return true
		}
	}
	return false
}

func clean(name string) string {
	return strings.TrimPrefix(path.Clean(filepath.ToSlash(name)), "/")
}
