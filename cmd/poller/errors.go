package poller

import "errors"

var errArtifactNotFound = errors.New("artifact not found")
