package core

import (
	"fmt"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/smartystreets/clock"

	"github.com/smartystreets/artifact-poller/contracts"
)

// Changelog renders what a BuildNow decision changes relative to the local
// snapshot as a unified diff of file listings. The new side is labelled after
// the snapshot the decided version came from.
type Changelog struct {
	clock *clock.Clock
}

func NewChangelog() *Changelog {
	return &Changelog{}
}

func (this *Changelog) Render(coordinate contracts.Coordinate, local contracts.RepositorySnapshot, decision contracts.Decision) string {
	if !decision.ShouldBuild() {
		return ""
	}
	next := decision.Version
	previous, _ := local.Version(next.Version())
	origin := decision.Origin
	if origin == "" {
		origin = contracts.RemoteOrigin
	}
	now := this.clock.UTCNow().Format(time.RFC3339)
	diff := difflib.UnifiedDiff{
		A:        listing(previous),
		B:        listing(next),
		FromFile: "recorded/" + next.Version(),
		ToFile:   string(origin) + "/" + next.Version(),
		FromDate: now,
		ToDate:   now,
		Context:  3,
	}
	body, err := difflib.GetUnifiedDiffString(diff)
	if err != nil || body == "" {
		body = "(no file level changes)\n"
	}
	header := fmt.Sprintf("%s %s @ %s", decision.Action, coordinate, next.Version())
	if origin == contracts.LocalOrigin {
		header += " (removed upstream, restoring recorded files)"
	}
	return header + "\n" + body
}

func listing(version contracts.VersionSnapshot) (lines []string) {
	for _, entry := range version.Files() {
		lines = append(lines, fmt.Sprintf("%s md5=%s sha1=%s size=%d\n",
			entry.Filename, entry.Fingerprint.MD5, entry.Fingerprint.SHA1, entry.Fingerprint.SizeBytes))
	}
	return lines
}
