package core

import "github.com/smartystreets/artifact-poller/contracts"

type DivergenceKind string

const (
	NewVersion  DivergenceKind = "new version"
	NewFile     DivergenceKind = "new file"
	ChangedFile DivergenceKind = "changed file"
)

// Divergence names the version of the reference snapshot that carries
// information the other snapshot lacks, and why.
type Divergence struct {
	Kind     DivergenceKind
	Version  contracts.VersionSnapshot
	Filename string
}

// FirstDivergence walks the reference snapshot in its stored order and
// reports the first version that is missing from other, has a file other
// lacks, or has a file whose MD5 differs. Only the reference side is walked;
// callers compare in both directions to catch removals.
func FirstDivergence(reference, other contracts.RepositorySnapshot) (Divergence, bool) {
	for _, version := range reference.Versions() {
		counterpart, found := other.Version(version.Version())
		if !found {
			return Divergence{Kind: NewVersion, Version: version}, true
		}
		for _, entry := range version.Files() {
			fingerprint, found := counterpart.Fingerprint(entry.Filename)
			if !found {
				return Divergence{Kind: NewFile, Version: version, Filename: entry.Filename}, true
			}
			if !entry.Fingerprint.Matches(fingerprint) {
				return Divergence{Kind: ChangedFile, Version: version, Filename: entry.Filename}, true
			}
		}
	}
	return Divergence{}, false
}
