package shell

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"path"
	"strings"

	"github.com/smartystreets/logging"

	"github.com/smartystreets/artifact-poller/contracts"
)

// ArtifactoryClient speaks to the Artifactory storage and repositories APIs.
type ArtifactoryClient struct {
	logger *logging.Logger
	client *http.Client
	server url.URL
}

func NewArtifactoryClient(client *http.Client, server contracts.URL) *ArtifactoryClient {
	return &ArtifactoryClient{client: client, server: *server.WithTrailingSlash().Value()}
}

func (this *ArtifactoryClient) ListVersions(coordinate contracts.Coordinate) (versions []string, err error) {
	listing, err := this.folder(this.storageAddress(coordinate))
	if err != nil {
		return nil, err
	}
	for _, child := range listing.Children {
		if child.Folder {
			versions = append(versions, child.name())
		}
	}
	return versions, nil
}

func (this *ArtifactoryClient) ListFiles(coordinate contracts.Coordinate, version string) (files []string, err error) {
	listing, err := this.folder(this.storageAddress(coordinate, version))
	if err != nil {
		return nil, err
	}
	for _, child := range listing.Children {
		files = append(files, child.name())
	}
	return files, nil
}

func (this *ArtifactoryClient) Fingerprint(coordinate contracts.Coordinate, version, filename string) (fingerprint contracts.FileFingerprint, err error) {
	err = this.getJSON(this.storageAddress(coordinate, version, filename), &fingerprint)
	return fingerprint, err
}

func (this *ArtifactoryClient) Download(coordinate contracts.Coordinate, version, filename string) (io.ReadCloser, error) {
	address := this.resolve(coordinate.Repo, coordinate.GroupPath(), coordinate.ArtifactID, version, filename)
	response, err := this.get(address)
	if err != nil {
		return nil, err
	}
	return response.Body, nil
}

func (this *ArtifactoryClient) Repositories() (repositories []contracts.Repository, err error) {
	err = this.getJSON(this.resolve("api/repositories")+"/", &repositories)
	return repositories, err
}

func (this *ArtifactoryClient) Exists(coordinate contracts.Coordinate) (bool, error) {
	response, err := this.client.Get(this.storageAddress(coordinate))
	if err != nil {
		return false, fmt.Errorf("%w: %v", contracts.ErrTransport, err)
	}
	_ = response.Body.Close()
	return response.StatusCode >= 200 && response.StatusCode < 300, nil
}

func (this *ArtifactoryClient) storageAddress(coordinate contracts.Coordinate, parts ...string) string {
	elements := append([]string{"api/storage", coordinate.Repo, coordinate.GroupPath(), coordinate.ArtifactID}, parts...)
	address := this.resolve(elements...)
	if len(parts) < 2 {
		address += "/" // folders
	}
	return address
}

func (this *ArtifactoryClient) resolve(elements ...string) string {
	address := this.server
	address.Path = this.server.Path + path.Join(elements...)
	return address.String()
}

func (this *ArtifactoryClient) folder(address string) (listing folderListing, err error) {
	err = this.getJSON(address, &listing)
	return listing, err
}

func (this *ArtifactoryClient) getJSON(address string, target interface{}) error {
	response, err := this.get(address)
	if err != nil {
		return err
	}
	defer func() { _ = response.Body.Close() }()
	err = json.NewDecoder(response.Body).Decode(target)
	if err != nil {
		return fmt.Errorf("%w: malformed response from %s: %v", contracts.ErrTransport, address, err)
	}
	return nil
}

func (this *ArtifactoryClient) get(address string) (*http.Response, error) {
	request, err := http.NewRequest(http.MethodGet, address, nil)
	if err != nil {
		return nil, err
	}
	response, err := this.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrTransport, err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		this.dump(request, response)
		_ = response.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status code: %s", contracts.ErrTransport, response.Status)
	}
	return response, nil
}

func (this *ArtifactoryClient) dump(request *http.Request, response *http.Response) {
	requestDump, _ := httputil.DumpRequestOut(request, false)
	responseDump, _ := httputil.DumpResponse(response, true)
	this.logger.Printf("[WARN] unexpected status code: \nrequest: \n%s\nresponse:\n%s", requestDump, responseDump)
}

////////////////////////////////////////

type folderListing struct {
	Children []folderChild `json:"children"`
}

type folderChild struct {
	URI    string `json:"uri"`
	Folder bool   `json:"folder"`
}

func (this folderChild) name() string {
	return strings.TrimPrefix(this.URI, "/")
}
