package contracts

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Coordinate identifies the artifact being tracked.
type Coordinate struct {
	Repo       string
	GroupID    string
	ArtifactID string
}

func (this Coordinate) GroupPath() string {
	return strings.ReplaceAll(this.GroupID, ".", "/")
}

func (this Coordinate) String() string {
	return fmt.Sprintf("%s:%s:%s", this.Repo, this.GroupID, this.ArtifactID)
}

// RepositorySnapshot holds the known versions of one coordinate, in the
// order they were listed. Version strings are unique. "Changing" a snapshot
// always yields a new value.
type RepositorySnapshot struct {
	coordinate Coordinate
	versions   []VersionSnapshot
	index      map[string]int
}

func NewRepositorySnapshot(coordinate Coordinate, versions ...VersionSnapshot) (RepositorySnapshot, error) {
	snapshot := RepositorySnapshot{
		coordinate: coordinate,
		versions:   make([]VersionSnapshot, 0, len(versions)),
		index:      make(map[string]int, len(versions)),
	}
	for _, version := range versions {
		if _, found := snapshot.index[version.Version()]; found {
			return RepositorySnapshot{}, fmt.Errorf("%w: %q in %s", ErrDuplicateVersion, version.Version(), coordinate)
		}
		snapshot.index[version.Version()] = len(snapshot.versions)
		snapshot.versions = append(snapshot.versions, version)
	}
	return snapshot, nil
}

// EmptySnapshot is the canonical "nothing known yet" value.
func EmptySnapshot() RepositorySnapshot {
	snapshot, _ := NewRepositorySnapshot(Coordinate{})
	return snapshot
}

func (this RepositorySnapshot) Coordinate() Coordinate { return this.coordinate }
func (this RepositorySnapshot) Len() int               { return len(this.versions) }

func (this RepositorySnapshot) IsEmpty() bool {
	return this.coordinate == Coordinate{} && len(this.versions) == 0
}

func (this RepositorySnapshot) Versions() []VersionSnapshot {
	return append([]VersionSnapshot(nil), this.versions...)
}

func (this RepositorySnapshot) Version(version string) (VersionSnapshot, bool) {
	position, found := this.index[version]
	if !found {
		return VersionSnapshot{}, false
	}
	return this.versions[position], true
}

// AddOrReplace drops any existing entry for the same version string and
// appends the given one at the end.
func (this RepositorySnapshot) AddOrReplace(version VersionSnapshot) RepositorySnapshot {
	kept := make([]VersionSnapshot, 0, len(this.versions)+1)
	for _, existing := range this.versions {
		if existing.Version() != version.Version() {
			kept = append(kept, existing)
		}
	}
	snapshot, _ := NewRepositorySnapshot(this.coordinate, append(kept, version)...)
	return snapshot
}

// WithCoordinate returns the same versions filed under another coordinate.
func (this RepositorySnapshot) WithCoordinate(coordinate Coordinate) RepositorySnapshot {
	snapshot, _ := NewRepositorySnapshot(coordinate, this.versions...)
	return snapshot
}

///////////////////////////////////////////////////////////////////////////////

type snapshotDocument struct {
	ArtifactID string            `json:"artifactID"`
	GroupID    string            `json:"groupID"`
	Repo       string            `json:"repo"`
	Artifacts  []versionDocument `json:"artifacts"`
}

func (this RepositorySnapshot) MarshalJSON() ([]byte, error) {
	document := snapshotDocument{
		ArtifactID: this.coordinate.ArtifactID,
		GroupID:    this.coordinate.GroupID,
		Repo:       this.coordinate.Repo,
		Artifacts:  make([]versionDocument, 0, len(this.versions)),
	}
	for _, version := range this.versions {
		document.Artifacts = append(document.Artifacts, version.document())
	}
	return json.Marshal(document)
}

func (this *RepositorySnapshot) UnmarshalJSON(raw []byte) error {
	var document snapshotDocument
	if err := json.Unmarshal(raw, &document); err != nil {
		return err
	}
	versions := make([]VersionSnapshot, 0, len(document.Artifacts))
	for _, artifact := range document.Artifacts {
		version, err := artifact.snapshot()
		if err != nil {
			return err
		}
		versions = append(versions, version)
	}
	coordinate := Coordinate{Repo: document.Repo, GroupID: document.GroupID, ArtifactID: document.ArtifactID}
	snapshot, err := NewRepositorySnapshot(coordinate, versions...)
	if err != nil {
		return err
	}
	*this = snapshot
	return nil
}
