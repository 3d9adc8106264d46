package contracts

import "io"

// RegistryClient queries the binary repository. Any returned error is a
// transport failure; callers treat it as "no data".
type RegistryClient interface {
	ListVersions(coordinate Coordinate) ([]string, error)
	ListFiles(coordinate Coordinate, version string) ([]string, error)
	Fingerprint(coordinate Coordinate, version, filename string) (FileFingerprint, error)
}

type FileDownloader interface {
	Download(coordinate Coordinate, version, filename string) (io.ReadCloser, error)
}

type RepositoryLister interface {
	Repositories() ([]Repository, error)
}

type ArtifactChecker interface {
	Exists(coordinate Coordinate) (bool, error)
}

type Repository struct {
	Key         string `json:"key"`
	Type        string `json:"type"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

const LocalRepositoryType = "LOCAL"
