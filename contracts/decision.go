package contracts

import (
	"encoding/json"
	"fmt"
)

type Action string

const (
	NoChange Action = "no-change"
	BuildNow Action = "build-now"
)

// Origin names the snapshot a BuildNow version was taken from: the remote
// listing (new upstream data) or the local record (data gone upstream).
type Origin string

const (
	RemoteOrigin Origin = "remote"
	LocalOrigin  Origin = "local"
)

// Decision is the outcome of one polling cycle. For BuildNow it carries the
// version that should be processed next; callers pass it on explicitly.
type Decision struct {
	Action  Action
	Version VersionSnapshot
	Origin  Origin
}

func NoChangeDecision() Decision {
	return Decision{Action: NoChange}
}

func BuildNowDecision(version VersionSnapshot) Decision {
	return Decision{Action: BuildNow, Version: version, Origin: RemoteOrigin}
}

func (this Decision) WithOrigin(origin Origin) Decision {
	if this.ShouldBuild() {
		this.Origin = origin
	}
	return this
}

func (this Decision) ShouldBuild() bool {
	return this.Action == BuildNow
}

func (this Decision) String() string {
	if this.ShouldBuild() {
		return fmt.Sprintf("%s(%s)", this.Action, this.Version.Version())
	}
	return string(this.Action)
}

type decisionDocument struct {
	Action  Action           `json:"action"`
	Origin  Origin           `json:"origin,omitempty"`
	Version *VersionSnapshot `json:"version,omitempty"`
}

func (this Decision) MarshalJSON() ([]byte, error) {
	document := decisionDocument{Action: this.Action}
	if this.ShouldBuild() {
		version := this.Version
		document.Version = &version
		document.Origin = this.Origin
	}
	return json.Marshal(document)
}

func (this *Decision) UnmarshalJSON(raw []byte) error {
	var document decisionDocument
	if err := json.Unmarshal(raw, &document); err != nil {
		return err
	}
	switch document.Action {
	case NoChange:
		*this = NoChangeDecision()
	case BuildNow:
		if document.Version == nil {
			return errMissingDecisionVersion
		}
		*this = BuildNowDecision(*document.Version)
		switch document.Origin {
		case "", RemoteOrigin:
		case LocalOrigin:
			*this = this.WithOrigin(LocalOrigin)
		default:
			return fmt.Errorf("unknown decision origin: %q", document.Origin)
		}
	default:
		return fmt.Errorf("unknown decision action: %q", document.Action)
	}
	return nil
}

var errMissingDecisionVersion = fmt.Errorf("%q decision requires a version", BuildNow)
