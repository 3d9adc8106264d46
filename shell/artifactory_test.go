package shell

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
	"github.com/smartystreets/logging"

	"github.com/smartystreets/artifact-poller/contracts"
)

func TestArtifactoryClientFixture(t *testing.T) {
	gunit.Run(new(ArtifactoryClientFixture), t)
}

type ArtifactoryClientFixture struct {
	*gunit.Fixture
	server     *httptest.Server
	responses  map[string]string
	requested  []string
	client     *ArtifactoryClient
	coordinate contracts.Coordinate
}

func (this *ArtifactoryClientFixture) Setup() {
	this.responses = make(map[string]string)
	this.server = httptest.NewServer(http.HandlerFunc(this.serve))
	address, _ := url.Parse(this.server.URL + "/artifactory")
	this.client = NewArtifactoryClient(this.server.Client(), contracts.URL(*address))
	this.client.logger = logging.Capture()
	this.coordinate = contracts.Coordinate{Repo: "libs-release-local", GroupID: "com.example", ArtifactID: "app"}
}

func (this *ArtifactoryClientFixture) Teardown() {
	this.server.Close()
}

func (this *ArtifactoryClientFixture) serve(response http.ResponseWriter, request *http.Request) {
	this.requested = append(this.requested, request.URL.Path)
	body, found := this.responses[request.URL.Path]
	if !found {
		http.NotFound(response, request)
		return
	}
	_, _ = io.WriteString(response, body)
}

func (this *ArtifactoryClientFixture) TestListVersionsKeepsFoldersInListingOrder() {
	this.responses["/artifactory/api/storage/libs-release-local/com/example/app/"] = `{
		"children": [
			{"uri": "/1.2.4", "folder": true},
			{"uri": "/maven-metadata.xml", "folder": false},
			{"uri": "/1.2.3", "folder": true}
		]
	}`

	versions, err := this.client.ListVersions(this.coordinate)

	this.So(err, should.BeNil)
	this.So(versions, should.Resemble, []string{"1.2.4", "1.2.3"})
}

func (this *ArtifactoryClientFixture) TestListFiles() {
	this.responses["/artifactory/api/storage/libs-release-local/com/example/app/1.2.3/"] = `{
		"children": [{"uri": "/app-1.2.3.jar", "folder": false}, {"uri": "/app-1.2.3.pom", "folder": false}]
	}`

	files, err := this.client.ListFiles(this.coordinate, "1.2.3")

	this.So(err, should.BeNil)
	this.So(files, should.Resemble, []string{"app-1.2.3.jar", "app-1.2.3.pom"})
}

func (this *ArtifactoryClientFixture) TestFingerprint() {
	this.responses["/artifactory/api/storage/libs-release-local/com/example/app/1.2.3/app-1.2.3.jar"] = `{
		"repo": "libs-release-local",
		"size": "1024",
		"checksums": {"sha1": "da39a3ee", "md5": "d41d8cd9"}
	}`

	fingerprint, err := this.client.Fingerprint(this.coordinate, "1.2.3", "app-1.2.3.jar")

	this.So(err, should.BeNil)
	this.So(fingerprint, should.Resemble, contracts.FileFingerprint{MD5: "d41d8cd9", SHA1: "da39a3ee", SizeBytes: 1024})
}

func (this *ArtifactoryClientFixture) TestDownload() {
	this.responses["/artifactory/libs-release-local/com/example/app/1.2.3/app-1.2.3.jar"] = "jar contents"

	body, err := this.client.Download(this.coordinate, "1.2.3", "app-1.2.3.jar")

	this.So(err, should.BeNil)
	contents, _ := io.ReadAll(body)
	_ = body.Close()
	this.So(string(contents), should.Equal, "jar contents")
}

func (this *ArtifactoryClientFixture) TestNotFoundIsATransportError() {
	versions, err := this.client.ListVersions(this.coordinate)

	this.So(errors.Is(err, contracts.ErrTransport), should.BeTrue)
	this.So(versions, should.BeNil)
}

func (this *ArtifactoryClientFixture) TestMalformedResponseIsATransportError() {
	this.responses["/artifactory/api/storage/libs-release-local/com/example/app/"] = `{"children": [`

	_, err := this.client.ListVersions(this.coordinate)

	this.So(errors.Is(err, contracts.ErrTransport), should.BeTrue)
}

func (this *ArtifactoryClientFixture) TestUnreachableServerIsATransportError() {
	this.server.Close()

	_, err := this.client.ListFiles(this.coordinate, "1.2.3")

	this.So(errors.Is(err, contracts.ErrTransport), should.BeTrue)
}

func (this *ArtifactoryClientFixture) TestRepositories() {
	this.responses["/artifactory/api/repositories/"] = `[
		{"key": "libs-release-local", "type": "LOCAL", "url": "http://example/libs-release-local"},
		{"key": "remote-repos", "type": "REMOTE"}
	]`

	repositories, err := this.client.Repositories()

	this.So(err, should.BeNil)
	this.So(len(repositories), should.Equal, 2)
	this.So(repositories[0].Key, should.Equal, "libs-release-local")
	this.So(repositories[0].Type, should.Equal, contracts.LocalRepositoryType)
}

func (this *ArtifactoryClientFixture) TestExists() {
	this.responses["/artifactory/api/storage/libs-release-local/com/example/app/"] = `{"children": []}`

	exists, err := this.client.Exists(this.coordinate)
	this.So(err, should.BeNil)
	this.So(exists, should.BeTrue)

	this.coordinate.ArtifactID = "missing"
	exists, err = this.client.Exists(this.coordinate)
	this.So(err, should.BeNil)
	this.So(exists, should.BeFalse)
}
