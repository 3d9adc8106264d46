package shell

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/smartystreets/artifact-poller/contracts"
)

type DiskFileSystem struct{ root string }

func NewDiskFileSystem(root string) *DiskFileSystem {
	return &DiskFileSystem{root: filepath.Clean(root)}
}

func (this *DiskFileSystem) RootPath() string {
	return this.root
}

func (this *DiskFileSystem) Stat(path string) (contracts.FileInfo, error) {
	info, err := os.Stat(this.resolve(path))
	if err != nil {
		return nil, err
	}
	return FileInfo{path: path, size: info.Size(), mod: info.ModTime()}, nil
}

func (this *DiskFileSystem) Create(path string) (io.WriteCloser, error) {
	path = this.resolve(path)
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return nil, err
	}
	return os.Create(path)
}

func (this *DiskFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(this.resolve(path))
}

func (this *DiskFileSystem) WriteFile(path string, content []byte) error {
	path = this.resolve(path)
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}

// CleanDirectory empties the directory, creating it when missing.
func (this *DiskFileSystem) CleanDirectory(path string) error {
	path = this.resolve(path)
	err := os.MkdirAll(path, 0755)
	if err != nil {
		return err
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		err = os.RemoveAll(filepath.Join(path, entry.Name()))
		if err != nil {
			return err
		}
	}
	return nil
}

func (this *DiskFileSystem) resolve(path string) string {
	if filepath.IsAbs(path) || this.root == "" || this.root == "." {
		return path
	}
	return filepath.Join(this.root, path)
}

////////////////////////////////////////

type FileInfo struct {
	path string
	size int64
	mod  time.Time
}

func (this FileInfo) Path() string       { return this.path }
func (this FileInfo) Size() int64        { return this.size }
func (this FileInfo) ModTime() time.Time { return this.mod }
