package contracts

import (
	"time"

	"github.com/smartystreets/gcs"
)

type PollConfig struct {
	JSONPath          string
	StateLocation     string
	ChangelogPath     string
	DecisionPath      string
	Interval          time.Duration
	GoogleCredentials gcs.Credentials
	Target            TargetConfig
}

type TargetConfig struct {
	Server        *URL   `json:"server"`
	Repo          string `json:"repo"`
	GroupID       string `json:"group_id"`
	ArtifactID    string `json:"artifact_id"`
	VersionFilter string `json:"version_filter"`
	LocalPath     string `json:"local_path"`
	Download      bool   `json:"download"`
}

func (this TargetConfig) Coordinate() Coordinate {
	return Coordinate{Repo: this.Repo, GroupID: this.GroupID, ArtifactID: this.ArtifactID}
}

const (
	StdinPath          = "_STDIN_"
	DefaultLocalPath   = "artifacts"
	DefaultStateFolder = ".artifact-poller"
)
