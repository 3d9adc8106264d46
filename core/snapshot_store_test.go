package core

import (
	"errors"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
	"github.com/smartystreets/logging"

	"github.com/smartystreets/artifact-poller/contracts"
)

func TestSnapshotStoreFixture(t *testing.T) {
	gunit.Run(new(SnapshotStoreFixture), t)
}

type SnapshotStoreFixture struct {
	*gunit.Fixture
	documents *fakeDocuments
	store     *SnapshotStore
	name      string
}

func (this *SnapshotStoreFixture) Setup() {
	this.documents = newFakeDocuments()
	this.store = NewSnapshotStore(this.documents, "1.2.+")
	this.store.logger = logging.Capture()
	this.name = StateDocumentName(testCoordinate, "1.2.+")
}

func (this *SnapshotStoreFixture) TestDocumentName() {
	coordinate := contracts.Coordinate{Repo: "libs/release", GroupID: "com.example", ArtifactID: "app"}

	this.So(StateDocumentName(coordinate, "3.20.2.+"), should.Equal,
		"artifactoryVersions-libs___release-com.example-app-3.20.2.+.json")
}

func (this *SnapshotStoreFixture) TestSavedSnapshotLoadsBack() {
	snapshot := repository(
		version("1.2.3", fileEntry("app.jar", "aaa"), fileEntry("app.pom", "ppp")),
		version("1.2.4", fileEntry("app.jar", "bbb")),
	)

	err := this.store.Save(snapshot)

	this.So(err, should.BeNil)
	this.So(this.documents.documents, should.ContainKey, this.name)
	this.So(this.store.Load(testCoordinate), should.Resemble, snapshot)
}

func (this *SnapshotStoreFixture) TestMissingDocumentLoadsEmpty() {
	this.So(this.store.Load(testCoordinate), should.Resemble, contracts.EmptySnapshot())
}

func (this *SnapshotStoreFixture) TestUnreadableDocumentLoadsEmpty() {
	this.documents.readErr = errors.New("permission denied")

	this.So(this.store.Load(testCoordinate), should.Resemble, contracts.EmptySnapshot())
}

func (this *SnapshotStoreFixture) TestMalformedDocumentLoadsEmpty() {
	this.documents.documents[this.name] = []byte(`{"artifactID": "app",`)

	this.So(this.store.Load(testCoordinate), should.Resemble, contracts.EmptySnapshot())
}

func (this *SnapshotStoreFixture) TestDocumentMissingFieldsLoadsEmpty() {
	this.documents.documents[this.name] = []byte(`{"artifactID": "app", "groupID": "com.example", "repo": "libs-release-local"}`)

	this.So(this.store.Load(testCoordinate), should.Resemble, contracts.EmptySnapshot())
}

func (this *SnapshotStoreFixture) TestDocumentWithIncompleteMetadataLoadsEmpty() {
	this.documents.documents[this.name] = []byte(`{
		"artifactID": "app", "groupID": "com.example", "repo": "libs-release-local",
		"artifacts": [{"version": "1.2.3", "files": [{"filename": "app.jar", "metadata": {"size": 1}}]}]
	}`)

	this.So(this.store.Load(testCoordinate), should.Resemble, contracts.EmptySnapshot())
}

func (this *SnapshotStoreFixture) TestDocumentWithDuplicateVersionsLoadsEmpty() {
	this.documents.documents[this.name] = []byte(`{
		"artifactID": "app", "groupID": "com.example", "repo": "libs-release-local",
		"artifacts": [{"version": "1.2.3", "files": []}, {"version": "1.2.3", "files": []}]
	}`)

	this.So(this.store.Load(testCoordinate), should.Resemble, contracts.EmptySnapshot())
}

func (this *SnapshotStoreFixture) TestQuotedSizeIsAccepted() {
	this.documents.documents[this.name] = []byte(`{
		"artifactID": "app", "groupID": "com.example", "repo": "libs-release-local",
		"artifacts": [{"version": "1.2.3", "files": [
			{"filename": "app.jar", "metadata": {"size": "42", "checksums": {"sha1": "sha1-aaa", "md5": "aaa"}}}
		]}]
	}`)

	this.So(this.store.Load(testCoordinate), should.Resemble, repository(version("1.2.3", fileEntry("app.jar", "aaa"))))
}

func (this *SnapshotStoreFixture) TestCoordinateMismatchLoadsEmpty() {
	other := repository(version("1.2.3", fileEntry("app.jar", "aaa"))).
		WithCoordinate(contracts.Coordinate{Repo: "libs-release-local", GroupID: "com.example", ArtifactID: "other"})
	_ = this.store.Save(other)
	this.documents.documents[this.name] = this.documents.documents[StateDocumentName(other.Coordinate(), "1.2.+")]

	this.So(this.store.Load(testCoordinate), should.Resemble, contracts.EmptySnapshot())
}

func (this *SnapshotStoreFixture) TestWriteFailureIsReported() {
	this.documents.writeErr = errors.New("disk full")

	err := this.store.Save(repository())

	this.So(errors.Is(err, this.documents.writeErr), should.BeTrue)
}
