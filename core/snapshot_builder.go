package core

import (
	"github.com/smartystreets/logging"

	"github.com/smartystreets/artifact-poller/contracts"
)

// RemoteSnapshotBuilder assembles a RepositorySnapshot from live registry
// queries. Registry failures shrink the result rather than abort it: a version
// that could not be fully described is left out. The second return value of
// Build reports whether every query succeeded.
type RemoteSnapshotBuilder struct {
	logger *logging.Logger
	client contracts.RegistryClient
}

func NewRemoteSnapshotBuilder(client contracts.RegistryClient) *RemoteSnapshotBuilder {
	return &RemoteSnapshotBuilder{client: client}
}

func (this *RemoteSnapshotBuilder) Build(coordinate contracts.Coordinate, filter VersionFilter) (contracts.RepositorySnapshot, bool) {
	complete := true
	listed, err := this.client.ListVersions(coordinate)
	if err != nil {
		this.logger.Printf("[WARN] could not list versions of %s: %v", coordinate, err)
		complete = false
	}
	var versions []contracts.VersionSnapshot
	seen := make(map[string]struct{}, len(listed))
	for _, version := range listed {
		if !filter.Match(version) {
			continue
		}
		if _, found := seen[version]; found {
			continue
		}
		seen[version] = struct{}{}
		this.logger.Printf("[INFO] version %s matched filter %q", version, filter.Pattern())
		snapshot, ok := this.BuildVersion(coordinate, version)
		if !ok {
			this.logger.Printf("[WARN] leaving out incomplete version %s of %s", version, coordinate)
			complete = false
			continue
		}
		versions = append(versions, snapshot)
	}
	snapshot, _ := contracts.NewRepositorySnapshot(coordinate, versions...)
	return snapshot, complete
}

func (this *RemoteSnapshotBuilder) BuildVersion(coordinate contracts.Coordinate, version string) (contracts.VersionSnapshot, bool) {
	filenames, err := this.client.ListFiles(coordinate, version)
	if err != nil {
		this.logger.Printf("[WARN] could not list files of %s @ %s: %v", coordinate, version, err)
		return contracts.VersionSnapshot{}, false
	}
	complete := true
	var entries []contracts.FileEntry
	seen := make(map[string]struct{}, len(filenames))
	for _, filename := range filenames {
		if _, found := seen[filename]; found {
			continue
		}
		fingerprint, err := this.client.Fingerprint(coordinate, version, filename)
		if err != nil {
			this.logger.Printf("[WARN] could not fetch metadata of %s @ %s/%s: %v", coordinate, version, filename, err)
			complete = false
			continue
		}
		seen[filename] = struct{}{}
		entries = append(entries, contracts.FileEntry{Filename: filename, Fingerprint: fingerprint})
	}
	snapshot, _ := contracts.NewVersionSnapshot(version, entries...)
	return snapshot, complete
}
