package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/smartystreets/logging"

	"github.com/smartystreets/artifact-poller/contracts"
)

// SnapshotStore keeps one JSON document per (coordinate, filter) in the
// given document storage. Anything that prevents a faithful load degrades to
// the empty snapshot.
type SnapshotStore struct {
	logger    *logging.Logger
	documents contracts.DocumentStorage
	schema    *SnapshotSchema
	filter    string
}

func NewSnapshotStore(documents contracts.DocumentStorage, filter string) *SnapshotStore {
	return &SnapshotStore{
		documents: documents,
		schema:    NewSnapshotSchema(),
		filter:    filter,
	}
}

func (this *SnapshotStore) Load(coordinate contracts.Coordinate) contracts.RepositorySnapshot {
	name := StateDocumentName(coordinate, this.filter)
	raw, err := this.documents.ReadDocument(name)
	if errors.Is(err, contracts.ErrDocumentNotFound) {
		this.logger.Printf("[INFO] no previous snapshot found at %s", name)
		return contracts.EmptySnapshot()
	}
	if err != nil {
		this.logger.Printf("[WARN] could not read snapshot %s: %v", name, err)
		return contracts.EmptySnapshot()
	}
	snapshot, err := this.decode(raw)
	if err != nil {
		this.logger.Printf("[WARN] discarding snapshot %s: %v", name, err)
		return contracts.EmptySnapshot()
	}
	if snapshot.Coordinate() != coordinate {
		this.logger.Printf("[WARN] discarding snapshot %s: recorded for %s, not %s", name, snapshot.Coordinate(), coordinate)
		return contracts.EmptySnapshot()
	}
	return snapshot
}

func (this *SnapshotStore) decode(raw []byte) (snapshot contracts.RepositorySnapshot, err error) {
	if err = this.schema.Validate(raw); err != nil {
		return contracts.EmptySnapshot(), err
	}
	if err = json.Unmarshal(raw, &snapshot); err != nil {
		return contracts.EmptySnapshot(), err
	}
	return snapshot, nil
}

func (this *SnapshotStore) Save(snapshot contracts.RepositorySnapshot) error {
	raw, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	name := StateDocumentName(snapshot.Coordinate(), this.filter)
	if err = this.documents.WriteDocument(name, raw); err != nil {
		return fmt.Errorf("could not write snapshot %s: %w", name, err)
	}
	return nil
}

func StateDocumentName(coordinate contracts.Coordinate, filter string) string {
	name := fmt.Sprintf("artifactoryVersions-%s-%s-%s-%s.json",
		coordinate.Repo, coordinate.GroupID, coordinate.ArtifactID, filter)
	return strings.ReplaceAll(name, "/", "___")
}
