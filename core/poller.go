package core

import (
	"github.com/smartystreets/logging"

	"github.com/smartystreets/artifact-poller/contracts"
)

type remoteSnapshotBuilder interface {
	Build(coordinate contracts.Coordinate, filter VersionFilter) (contracts.RepositorySnapshot, bool)
}

// Poller decides whether the remote repository has diverged from the local
// snapshot. Remote-versus-local is checked first so that new upstream data
// wins; local-versus-remote then catches versions or files removed upstream.
type Poller struct {
	logger  *logging.Logger
	builder remoteSnapshotBuilder
}

func NewPoller(builder remoteSnapshotBuilder) *Poller {
	return &Poller{builder: builder}
}

func (this *Poller) Decide(coordinate contracts.Coordinate, filter VersionFilter, local contracts.RepositorySnapshot) contracts.Decision {
	remote, complete := this.builder.Build(coordinate, filter)
	return this.compare(remote, local, complete)
}

func (this *Poller) compare(remote, local contracts.RepositorySnapshot, complete bool) contracts.Decision {
	if divergence, found := FirstDivergence(remote, local); found {
		this.report("remote", divergence)
		return contracts.BuildNowDecision(divergence.Version)
	}
	if !complete {
		// A partial remote view cannot prove that anything was removed.
		this.logger.Printf("[WARN] remote snapshot of %s is incomplete; skipping removal check", remote.Coordinate())
		return contracts.NoChangeDecision()
	}
	if divergence, found := FirstDivergence(local, remote); found {
		this.report("local", divergence)
		return contracts.BuildNowDecision(divergence.Version).WithOrigin(contracts.LocalOrigin)
	}
	return contracts.NoChangeDecision()
}

func (this *Poller) report(side string, divergence Divergence) {
	if divergence.Filename == "" {
		this.logger.Printf("[INFO] found %s on %s side: %s", divergence.Kind, side, divergence.Version.Version())
	} else {
		this.logger.Printf("[INFO] found %s on %s side: %s (%s)", divergence.Kind, side, divergence.Version.Version(), divergence.Filename)
	}
}
