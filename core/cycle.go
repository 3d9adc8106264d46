package core

import (
	"fmt"

	"github.com/smartystreets/logging"

	"github.com/smartystreets/artifact-poller/contracts"
)

type decider interface {
	Decide(coordinate contracts.Coordinate, filter VersionFilter, local contracts.RepositorySnapshot) contracts.Decision
}

type installer interface {
	Install(request CheckoutRequest) error
}

// Cycle is one polling round for a single target: decide, then (for
// BuildNow) check the version out and record it as the new local state.
// The decided version is passed from Poll to Apply by the caller.
type Cycle struct {
	logger        *logging.Logger
	target        contracts.TargetConfig
	store         contracts.SnapshotStore
	poller        decider
	checkout      installer
	recorder      *StateRecorder
	changelog     *Changelog
	journal       contracts.FileWriter
	changelogPath string
}

func NewCycle(
	target contracts.TargetConfig,
	store contracts.SnapshotStore,
	poller decider,
	checkout installer,
	journal contracts.FileWriter,
	changelogPath string,
) *Cycle {
	return &Cycle{
		target:        target,
		store:         store,
		poller:        poller,
		checkout:      checkout,
		recorder:      NewStateRecorder(store),
		changelog:     NewChangelog(),
		journal:       journal,
		changelogPath: changelogPath,
	}
}

func (this *Cycle) Run() (contracts.Decision, error) {
	local := this.load()
	decision := this.decide(local)
	return decision, this.apply(local, decision)
}

func (this *Cycle) Poll() contracts.Decision {
	return this.decide(this.load())
}

// Apply processes a decision made by an earlier Poll. The local snapshot is
// read before the checkout touches the local path.
func (this *Cycle) Apply(decision contracts.Decision) error {
	if !decision.ShouldBuild() {
		return nil
	}
	return this.apply(this.load(), decision)
}

func (this *Cycle) load() contracts.RepositorySnapshot {
	return this.store.Load(this.target.Coordinate())
}

func (this *Cycle) decide(local contracts.RepositorySnapshot) contracts.Decision {
	coordinate := this.target.Coordinate()
	decision := this.poller.Decide(coordinate, NewVersionFilter(this.target.VersionFilter), local)
	this.logger.Printf("[INFO] %s: %s", coordinate, decision)
	return decision
}

func (this *Cycle) apply(local contracts.RepositorySnapshot, decision contracts.Decision) error {
	if !decision.ShouldBuild() {
		return nil
	}
	coordinate := this.target.Coordinate()
	err := this.checkout.Install(CheckoutRequest{
		Coordinate: coordinate,
		Version:    decision.Version,
		LocalPath:  this.target.LocalPath,
		Download:   this.target.Download,
	})
	if err != nil {
		return err
	}
	if _, err = this.recorder.Record(local, coordinate, decision.Version); err != nil {
		return err
	}
	return this.writeChangelog(coordinate, local, decision)
}

func (this *Cycle) writeChangelog(coordinate contracts.Coordinate, previous contracts.RepositorySnapshot, decision contracts.Decision) error {
	if this.changelogPath == "" {
		return nil
	}
	content := this.changelog.Render(coordinate, previous, decision)
	if err := this.journal.WriteFile(this.changelogPath, []byte(content)); err != nil {
		return fmt.Errorf("could not write changelog: %w", err)
	}
	return nil
}
