package core

import (
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
)

func TestVersionFilterFixture(t *testing.T) {
	gunit.Run(new(VersionFilterFixture), t)
}

type VersionFilterFixture struct {
	*gunit.Fixture
}

func (this *VersionFilterFixture) TestDegenerateFiltersMatchEverything() {
	for _, candidate := range []string{"1", "3.20.2.0", "", "anything-at-all"} {
		this.So(MatchVersion("+", candidate), should.BeTrue)
		this.So(MatchVersion("", candidate), should.BeTrue)
		this.So(MatchVersion("   ", candidate), should.BeTrue)
	}
}

func (this *VersionFilterFixture) TestDynamicSuffixMatchesRemainingSegments() {
	this.So(MatchVersion("3.20.2.+", "3.20.2.5"), should.BeTrue)
	this.So(MatchVersion("3.20.2.+", "3.20.2.5.1"), should.BeTrue)
	this.So(MatchVersion("3.20.2.+", "3.20.3.0"), should.BeFalse)
	this.So(MatchVersion("3.+", "3.21.0.0"), should.BeTrue)
	this.So(MatchVersion("3.+", "4.0"), should.BeFalse)
}

func (this *VersionFilterFixture) TestSegmentEndingInPlusIsDynamic() {
	this.So(MatchVersion("3.2+", "3.20.1"), should.BeTrue)
	this.So(MatchVersion("3.2+", "3.99"), should.BeTrue)
	this.So(MatchVersion("3. + ", "3.1"), should.BeTrue)
}

func (this *VersionFilterFixture) TestLiteralPatternsRequireEqualSegments() {
	this.So(MatchVersion("3.20.2.0", "3.20.2.0"), should.BeTrue)
	this.So(MatchVersion("3.20.2.0", "3.20.2.1"), should.BeFalse)
	this.So(MatchVersion("1.2", "1.20"), should.BeFalse)
}

func (this *VersionFilterFixture) TestLiteralPrefixOfLongerCandidateMatches() {
	this.So(MatchVersion("3.20", "3.20.2.0"), should.BeTrue)
}

func (this *VersionFilterFixture) TestPatternLongerThanCandidateIsRejected() {
	this.So(MatchVersion("3.20.2.0", "3.20"), should.BeFalse)
	this.So(MatchVersion("3.20.2.+", "3.20"), should.BeFalse)
}

func (this *VersionFilterFixture) TestDynamicSegmentRightAfterCandidateEnds() {
	this.So(MatchVersion("3.20.+", "3.20"), should.BeTrue)
}

func (this *VersionFilterFixture) TestPatternIsRetained() {
	this.So(NewVersionFilter("1.2.+").Pattern(), should.Equal, "1.2.+")
}
