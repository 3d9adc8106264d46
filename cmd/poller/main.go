package poller

import (
	"io"

	"github.com/smartystreets/artifact-poller/contracts"
)

func RunMain(config contracts.PollConfig, output io.Writer) error {
	components, err := wire(config)
	if err != nil {
		return err
	}
	defer func() { _ = components.Close() }()
	return NewRunApp(components.cycle, NewJSONTrigger(output), config.Interval).Run()
}

func PollMain(config contracts.PollConfig, output io.Writer) (contracts.Decision, error) {
	components, err := wire(config)
	if err != nil {
		return contracts.NoChangeDecision(), err
	}
	defer func() { _ = components.Close() }()
	return NewPollApp(components.cycle, NewJSONTrigger(output)).Run()
}

func CheckoutMain(config contracts.PollConfig, source io.Reader) error {
	components, err := wire(config)
	if err != nil {
		return err
	}
	defer func() { _ = components.Close() }()
	return NewCheckoutApp(source, components.cycle).Run()
}

func ReposMain(config contracts.PollConfig, output io.Writer) error {
	return NewReposApp(newArtifactoryClient(config), output).Run()
}

func CheckMain(config contracts.PollConfig) error {
	return NewCheckApp(newArtifactoryClient(config), config.Target.Coordinate()).Run()
}
