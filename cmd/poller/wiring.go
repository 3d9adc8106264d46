package poller

import (
	"io"
	"net/http"

	"github.com/smartystreets/artifact-poller/contracts"
	"github.com/smartystreets/artifact-poller/core"
	"github.com/smartystreets/artifact-poller/shell"
)

type components struct {
	documents io.Closer
	cycle     *core.Cycle
}

func wire(config contracts.PollConfig) (*components, error) {
	client := shell.NewHTTPClient()
	documents, closer, err := OpenDocuments(config, client)
	if err != nil {
		return nil, err
	}
	return &components{documents: closer, cycle: newCycle(config, documents, client)}, nil
}

func newCycle(config contracts.PollConfig, documents contracts.DocumentStorage, client *http.Client) *core.Cycle {
	artifactory := shell.NewArtifactoryClient(client, *config.Target.Server)
	disk := shell.NewDiskFileSystem("")
	checkout := core.NewCheckout(artifactory, disk)
	checkout.Protect(core.ProtectedPaths(config)...)
	return core.NewCycle(
		config.Target,
		core.NewSnapshotStore(documents, config.Target.VersionFilter),
		core.NewPoller(core.NewRemoteSnapshotBuilder(artifactory)),
		checkout,
		disk,
		config.ChangelogPath,
	)
}

func (this *components) Close() error {
	return this.documents.Close()
}

func newArtifactoryClient(config contracts.PollConfig) *shell.ArtifactoryClient {
	return shell.NewArtifactoryClient(shell.NewHTTPClient(), *config.Target.Server)
}
