package contracts

import (
	"io"
	"time"
)

type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

type FileWriter interface {
	WriteFile(path string, content []byte) error
}

type FileCreator interface {
	Create(path string) (io.WriteCloser, error)
}

type DirectoryCleaner interface {
	CleanDirectory(path string) error
}

type FileInfo interface {
	Path() string
	Size() int64
	ModTime() time.Time
}

type Environment interface {
	LookupEnv(key string) (value string, set bool)
}
