package poller

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/smartystreets/logging"

	"github.com/smartystreets/artifact-poller/contracts"
)

type poller interface {
	Poll() contracts.Decision
}

// PollApp only decides; the decision goes to the trigger and the caller
// maps it to an exit code.
type PollApp struct {
	poller  poller
	trigger contracts.BuildTrigger
}

func NewPollApp(poller poller, trigger contracts.BuildTrigger) *PollApp {
	return &PollApp{poller: poller, trigger: trigger}
}

func (this *PollApp) Run() (contracts.Decision, error) {
	decision := this.poller.Poll()
	return decision, this.trigger.Trigger(decision)
}

type applier interface {
	Apply(decision contracts.Decision) error
}

// CheckoutApp acts on a decision produced earlier by PollApp, so the
// version that was decided on is the version that gets checked out.
type CheckoutApp struct {
	logger  *logging.Logger
	source  io.Reader
	applier applier
}

func NewCheckoutApp(source io.Reader, applier applier) *CheckoutApp {
	return &CheckoutApp{source: source, applier: applier}
}

func (this *CheckoutApp) Run() error {
	var decision contracts.Decision
	if err := json.NewDecoder(this.source).Decode(&decision); err != nil {
		return fmt.Errorf("could not read decision: %w", err)
	}
	if !decision.ShouldBuild() {
		this.logger.Println("[INFO] decision is no-change; nothing to check out.")
		return nil
	}
	return this.applier.Apply(decision)
}

// ReposApp lists the LOCAL repositories of the server, one key per line.
type ReposApp struct {
	lister contracts.RepositoryLister
	output io.Writer
}

func NewReposApp(lister contracts.RepositoryLister, output io.Writer) *ReposApp {
	return &ReposApp{lister: lister, output: output}
}

func (this *ReposApp) Run() error {
	repositories, err := this.lister.Repositories()
	if err != nil {
		return err
	}
	for _, repository := range repositories {
		if repository.Type != contracts.LocalRepositoryType {
			continue
		}
		if _, err = fmt.Fprintln(this.output, repository.Key); err != nil {
			return err
		}
	}
	return nil
}

// CheckApp verifies that the configured artifact exists on the server.
type CheckApp struct {
	logger     *logging.Logger
	checker    contracts.ArtifactChecker
	coordinate contracts.Coordinate
}

func NewCheckApp(checker contracts.ArtifactChecker, coordinate contracts.Coordinate) *CheckApp {
	return &CheckApp{checker: checker, coordinate: coordinate}
}

func (this *CheckApp) Run() error {
	exists, err := this.checker.Exists(this.coordinate)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", errArtifactNotFound, this.coordinate)
	}
	this.logger.Printf("[INFO] found %s", this.coordinate)
	return nil
}
