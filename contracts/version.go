package contracts

import (
	"encoding/json"
	"fmt"
)

type FileEntry struct {
	Filename    string
	Fingerprint FileFingerprint
}

// VersionSnapshot is the set of files published under one version. Files keep
// the order in which they were supplied. Values are never modified after
// construction.
type VersionSnapshot struct {
	version   string
	filenames []string
	files     map[string]FileFingerprint
}

func NewVersionSnapshot(version string, entries ...FileEntry) (VersionSnapshot, error) {
	snapshot := VersionSnapshot{
		version:   version,
		filenames: make([]string, 0, len(entries)),
		files:     make(map[string]FileFingerprint, len(entries)),
	}
	for _, entry := range entries {
		if _, found := snapshot.files[entry.Filename]; found {
			return VersionSnapshot{}, fmt.Errorf("%w: %q in version %q", ErrDuplicateFile, entry.Filename, version)
		}
		snapshot.filenames = append(snapshot.filenames, entry.Filename)
		snapshot.files[entry.Filename] = entry.Fingerprint
	}
	return snapshot, nil
}

func (this VersionSnapshot) Version() string { return this.version }
func (this VersionSnapshot) Len() int        { return len(this.filenames) }

func (this VersionSnapshot) Filenames() []string {
	return append([]string(nil), this.filenames...)
}

func (this VersionSnapshot) Fingerprint(filename string) (FileFingerprint, bool) {
	fingerprint, found := this.files[filename]
	return fingerprint, found
}

func (this VersionSnapshot) Files() (entries []FileEntry) {
	for _, filename := range this.filenames {
		entries = append(entries, FileEntry{Filename: filename, Fingerprint: this.files[filename]})
	}
	return entries
}

func (this VersionSnapshot) String() string {
	return this.version
}

///////////////////////////////////////////////////////////////////////////////

type versionDocument struct {
	Version string         `json:"version"`
	Files   []fileDocument `json:"files"`
}

type fileDocument struct {
	Filename string          `json:"filename"`
	Metadata FileFingerprint `json:"metadata"`
}

func (this VersionSnapshot) document() versionDocument {
	document := versionDocument{Version: this.version, Files: make([]fileDocument, 0, len(this.filenames))}
	for _, entry := range this.Files() {
		document.Files = append(document.Files, fileDocument{Filename: entry.Filename, Metadata: entry.Fingerprint})
	}
	return document
}

func (this versionDocument) snapshot() (VersionSnapshot, error) {
	entries := make([]FileEntry, 0, len(this.Files))
	for _, file := range this.Files {
		entries = append(entries, FileEntry{Filename: file.Filename, Fingerprint: file.Metadata})
	}
	return NewVersionSnapshot(this.Version, entries...)
}

func (this VersionSnapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(this.document())
}

func (this *VersionSnapshot) UnmarshalJSON(raw []byte) error {
	var document versionDocument
	if err := json.Unmarshal(raw, &document); err != nil {
		return err
	}
	snapshot, err := document.snapshot()
	if err != nil {
		return err
	}
	*this = snapshot
	return nil
}
