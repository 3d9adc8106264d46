package poller

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/smartystreets/artifact-poller/contracts"
	"github.com/smartystreets/artifact-poller/core"
	"github.com/smartystreets/artifact-poller/shell"
)

// OpenDocuments resolves the state location into a document storage:
// sqlite://path/to.db, gcs://bucket/prefix or a plain directory.
func OpenDocuments(config contracts.PollConfig, client *http.Client) (contracts.DocumentStorage, io.Closer, error) {
	location := strings.TrimSpace(config.StateLocation)
	switch {
	case strings.HasPrefix(location, core.SQLiteScheme):
		documents, err := shell.NewSQLiteDocuments(strings.TrimPrefix(location, core.SQLiteScheme))
		if err != nil {
			return nil, nil, err
		}
		return documents, documents, nil
	case core.IsGoogleCloudStorageLocation(location):
		address, err := url.Parse(location)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid state location %q: %w", location, err)
		}
		if address.Host == "" {
			return nil, nil, fmt.Errorf("state location %q names no bucket", location)
		}
		prefix := strings.Trim(address.Path, "/")
		documents := shell.NewGoogleCloudStorageDocuments(client, config.GoogleCredentials, address.Host, prefix)
		return documents, nopCloser{}, nil
	default:
		documents := shell.NewFileSystemDocuments(shell.NewDiskFileSystem(""), location)
		return documents, nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
