package core

import "github.com/smartystreets/artifact-poller/contracts"

// StateRecorder folds a processed version into the local snapshot the
// decision was made against and persists the result.
type StateRecorder struct {
	store contracts.SnapshotStore
}

func NewStateRecorder(store contracts.SnapshotStore) *StateRecorder {
	return &StateRecorder{store: store}
}

// Record does not reload the store: previous must be the snapshot loaded
// before the checkout, which may empty the directory holding the state.
func (this *StateRecorder) Record(previous contracts.RepositorySnapshot, coordinate contracts.Coordinate, version contracts.VersionSnapshot) (contracts.RepositorySnapshot, error) {
	next := previous.WithCoordinate(coordinate).AddOrReplace(version)
	return next, this.store.Save(next)
}
