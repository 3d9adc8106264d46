package poller

import (
	"time"

	"github.com/smartystreets/clock"
	"github.com/smartystreets/logging"

	"github.com/smartystreets/artifact-poller/contracts"
)

type cycle interface {
	Run() (contracts.Decision, error)
}

// RunApp polls, checks out and records in one process. With a positive
// interval it keeps going, logging failed cycles instead of stopping.
type RunApp struct {
	logger   *logging.Logger
	sleeper  *clock.Sleeper
	cycle    cycle
	trigger  contracts.BuildTrigger
	interval time.Duration
	rounds   int // zero means forever
}

func NewRunApp(cycle cycle, trigger contracts.BuildTrigger, interval time.Duration) *RunApp {
	return &RunApp{cycle: cycle, trigger: trigger, interval: interval}
}

func (this *RunApp) Run() error {
	for round := 1; ; round++ {
		err := this.runOnce()
		if this.interval <= 0 {
			return err
		}
		if err != nil {
			this.logger.Println("[WARN]", err)
		}
		if this.rounds > 0 && round >= this.rounds {
			return nil
		}
		this.sleeper.Sleep(this.interval)
	}
}

func (this *RunApp) runOnce() error {
	decision, err := this.cycle.Run()
	if err != nil {
		return err
	}
	if !decision.ShouldBuild() {
		return nil
	}
	return this.trigger.Trigger(decision)
}
