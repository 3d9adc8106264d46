package core

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/smartystreets/logging"

	"github.com/smartystreets/artifact-poller/contracts"
)

type ConfigLoader struct {
	logger      *logging.Logger
	parser      CredentialParser
	storage     contracts.FileReader
	environment contracts.Environment
	stdin       io.Reader
	stderr      io.Writer
}

func NewConfigLoader(storage contracts.FileReader, environment contracts.Environment, stdin io.Reader, stderr io.Writer) *ConfigLoader {
	return &ConfigLoader{
		parser:      NewGoogleCredentialParser(storage, environment),
		storage:     storage,
		environment: environment,
		stdin:       stdin,
		stderr:      stderr,
	}
}

func (this *ConfigLoader) LoadConfig(name string, args []string) (config contracts.PollConfig, err error) {
	config, err = this.parseCLI(name, args)
	if err != nil {
		return contracts.PollConfig{}, err
	}

	config.Target, err = this.parseConfigFile(config.JSONPath)
	if err != nil {
		return contracts.PollConfig{}, err
	}

	err = this.applyEnvironment(&config.Target)
	if err != nil {
		return contracts.PollConfig{}, err
	}

	this.applyDefaults(&config.Target)

	err = this.validate(config)
	if err != nil {
		return contracts.PollConfig{}, err
	}

	if IsGoogleCloudStorageLocation(config.StateLocation) {
		config.GoogleCredentials, err = this.parser.Parse()
		if err != nil {
			return contracts.PollConfig{}, err
		}
	}

	return config, nil
}

func (this *ConfigLoader) parseCLI(name string, args []string) (config contracts.PollConfig, err error) {
	flags := flag.NewFlagSet("artifact-poller "+name, flag.ContinueOnError)
	flags.SetOutput(this.stderr)
	flags.StringVar(&config.JSONPath,
		"json",
		"artifact-poller.json",
		"Path to the target config file or, if equal to _STDIN_, read from stdin.",
	)
	flags.StringVar(&config.StateLocation,
		"state",
		contracts.DefaultStateFolder,
		"Where the local snapshot lives: a directory, sqlite://path/to.db or gcs://bucket/prefix.",
	)
	flags.StringVar(&config.ChangelogPath,
		"changelog",
		"",
		"When set, write a changelog of each processed version to this path.",
	)
	flags.StringVar(&config.DecisionPath,
		"decision",
		contracts.StdinPath,
		"Path to a decision emitted by 'poll' or, if equal to _STDIN_, read from stdin (checkout only).",
	)
	flags.DurationVar(&config.Interval,
		"interval",
		0,
		"When positive, keep polling with this pause between cycles.",
	)
	flags.Usage = func() {
		_, _ = fmt.Fprintf(this.stderr, "Usage of artifact-poller %s:\n", name)
		flags.PrintDefaults()
		_, _ = fmt.Fprintln(this.stderr, `
exit code 0: success (for 'poll': a build should run)
exit code 1: general failure (see stderr for details)
exit code 2: no change detected ('poll' only)`)
	}
	err = flags.Parse(args)

	return config, err
}

func (this *ConfigLoader) parseConfigFile(path string) (config contracts.TargetConfig, err error) {
	data, err := this.readRawJSON(path)
	if err != nil {
		return contracts.TargetConfig{}, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return contracts.TargetConfig{}, fmt.Errorf("malformed config %q: %w", path, err)
	}
	return config, nil
}

func (this *ConfigLoader) readRawJSON(path string) (data []byte, err error) {
	if path == "" {
		return nil, blankJSONPathErr
	}
	if path == contracts.StdinPath {
		return io.ReadAll(this.stdin)
	} else {
		return this.storage.ReadFile(path)
	}
}

func (this *ConfigLoader) applyEnvironment(target *contracts.TargetConfig) error {
	if target.Server != nil {
		return nil
	}
	raw, found := this.environment.LookupEnv("ARTIFACTORY_URL")
	raw = strings.TrimSpace(raw)
	if !found || raw == "" {
		return nil
	}
	address, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid ARTIFACTORY_URL: %w", err)
	}
	server := contracts.URL(*address)
	target.Server = &server
	return nil
}

func (this *ConfigLoader) applyDefaults(target *contracts.TargetConfig) {
	if target.Server != nil {
		server := target.Server.WithTrailingSlash()
		target.Server = &server
	}
	if strings.TrimSpace(target.LocalPath) == "" {
		this.logger.Printf("[INFO] local_path not set, defaulting to %q.", contracts.DefaultLocalPath)
		target.LocalPath = contracts.DefaultLocalPath
	}
}

func (this *ConfigLoader) validate(config contracts.PollConfig) error {
	if config.Interval < 0 {
		return negativeIntervalErr
	}
	if strings.TrimSpace(config.StateLocation) == "" {
		return blankStateLocationErr
	}
	target := config.Target
	if target.Server == nil || target.Server.Host == "" {
		return nilServerErr
	}
	if target.Repo == "" {
		return blankRepoErr
	}
	if target.GroupID == "" {
		return blankGroupIDErr
	}
	if target.ArtifactID == "" {
		return blankArtifactIDErr
	}
	if target.VersionFilter == "" {
		return blankVersionFilterErr
	}
	if !target.Download {
		return nil
	}
	for _, path := range ProtectedPaths(config) {
		if Encloses(target.LocalPath, path) {
			return fmt.Errorf("%w: %q is inside local_path %q", localPathOverlapErr, path, target.LocalPath)
		}
	}
	return nil
}

func IsGoogleCloudStorageLocation(location string) bool {
	return strings.HasPrefix(location, "gcs://")
}

var (
	blankJSONPathErr      = errors.New("json flag must be populated")
	negativeIntervalErr   = errors.New("interval must not be negative")
	blankStateLocationErr = errors.New("state location should not be blank")
	nilServerErr          = errors.New("server should be set (config file or ARTIFACTORY_URL)")
	blankRepoErr          = errors.New("repo should not be blank")
	blankGroupIDErr       = errors.New("group id should not be blank")
	blankArtifactIDErr    = errors.New("artifact id should not be blank")
	blankVersionFilterErr = errors.New("version filter should not be blank")
	localPathOverlapErr   = errors.New("local_path is emptied on checkout and must not hold the config or the state")
)
