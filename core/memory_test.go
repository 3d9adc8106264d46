package core

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/smartystreets/artifact-poller/contracts"
)

type inMemoryFileSystem struct {
	fileSystem   map[string]*file
	errReadFile  map[string]error
	errWriteFile map[string]error
	errClean     error
	cleaned      []string
}

func newInMemoryFileSystem() *inMemoryFileSystem {
	return &inMemoryFileSystem{
		fileSystem:   make(map[string]*file),
		errReadFile:  make(map[string]error),
		errWriteFile: make(map[string]error),
	}
}

func (this *inMemoryFileSystem) Listing() (paths []string) {
	for path := range this.fileSystem {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (this *inMemoryFileSystem) Create(path string) (io.WriteCloser, error) {
	if err := this.errWriteFile[path]; err != nil {
		return nil, err
	}
	this.fileSystem[path] = &file{path: path}
	return this.fileSystem[path], nil
}

func (this *inMemoryFileSystem) ReadFile(path string) ([]byte, error) {
	target, found := this.fileSystem[path]
	if !found {
		return nil, os.ErrNotExist
	}
	return target.contents, this.errReadFile[path]
}

func (this *inMemoryFileSystem) WriteFile(path string, content []byte) error {
	if err := this.errWriteFile[path]; err != nil {
		return err
	}
	this.fileSystem[path] = &file{path: path, contents: content}
	return nil
}

func (this *inMemoryFileSystem) CleanDirectory(path string) error {
	if this.errClean != nil {
		return this.errClean
	}
	this.cleaned = append(this.cleaned, path)
	prefix := filepath.Clean(path) + string(os.PathSeparator)
	for name := range this.fileSystem {
		if strings.HasPrefix(name, prefix) || path == "." {
			delete(this.fileSystem, name)
		}
	}
	return nil
}

func (this *inMemoryFileSystem) Delete(path string) {
	delete(this.fileSystem, path)
}

/////////////////////////////////////////////////

type file struct {
	path     string
	contents []byte
}

func (this *file) Write(p []byte) (n int, err error) {
	this.contents = append(this.contents, p...)
	return len(p), nil
}

func (this *file) Close() error { return nil }

/////////////////////////////////////////////////

type fakeDocuments struct {
	lock      sync.Mutex
	documents map[string][]byte
	readErr   error
	writeErr  error
	writes    int
}

func newFakeDocuments() *fakeDocuments {
	return &fakeDocuments{documents: make(map[string][]byte)}
}

func (this *fakeDocuments) ReadDocument(name string) ([]byte, error) {
	this.lock.Lock()
	defer this.lock.Unlock()
	if this.readErr != nil {
		return nil, this.readErr
	}
	content, found := this.documents[name]
	if !found {
		return nil, contracts.ErrDocumentNotFound
	}
	return content, nil
}

func (this *fakeDocuments) WriteDocument(name string, content []byte) error {
	this.lock.Lock()
	defer this.lock.Unlock()
	if this.writeErr != nil {
		return this.writeErr
	}
	this.writes++
	this.documents[name] = content
	return nil
}
