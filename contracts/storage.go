package contracts

// SnapshotStore persists the local snapshot between cycles. Load never
// fails: absent, unreadable or foreign state yields EmptySnapshot().
type SnapshotStore interface {
	Load(coordinate Coordinate) RepositorySnapshot
	Save(snapshot RepositorySnapshot) error
}

// DocumentStorage is a flat namespace of named blobs. ReadDocument returns
// ErrDocumentNotFound when nothing was ever written under the name.
type DocumentStorage interface {
	ReadDocument(name string) ([]byte, error)
	WriteDocument(name string, content []byte) error
}

type BuildTrigger interface {
	Trigger(decision Decision) error
}
