package shell

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/smartystreets/artifact-poller/contracts"
)

type documentFileSystem interface {
	contracts.FileReader
	contracts.FileWriter
}

// FileSystemDocuments stores each document as a file inside one directory.
type FileSystemDocuments struct {
	fileSystem documentFileSystem
	directory  string
}

func NewFileSystemDocuments(fileSystem documentFileSystem, directory string) *FileSystemDocuments {
	return &FileSystemDocuments{fileSystem: fileSystem, directory: directory}
}

func (this *FileSystemDocuments) ReadDocument(name string) ([]byte, error) {
	raw, err := this.fileSystem.ReadFile(filepath.Join(this.directory, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, contracts.ErrDocumentNotFound
	}
	return raw, err
}

func (this *FileSystemDocuments) WriteDocument(name string, content []byte) error {
	return this.fileSystem.WriteFile(filepath.Join(this.directory, name), content)
}
