package shell

import (
	"sort"
	"sync"

	"github.com/smartystreets/artifact-poller/contracts"
)

type InMemoryDocuments struct {
	lock      sync.Mutex
	documents map[string][]byte
	Writes    int
}

func NewInMemoryDocuments() *InMemoryDocuments {
	return &InMemoryDocuments{documents: make(map[string][]byte)}
}

func (this *InMemoryDocuments) ReadDocument(name string) ([]byte, error) {
	this.lock.Lock()
	defer this.lock.Unlock()
	content, found := this.documents[name]
	if !found {
		return nil, contracts.ErrDocumentNotFound
	}
	return append([]byte(nil), content...), nil
}

func (this *InMemoryDocuments) WriteDocument(name string, content []byte) error {
	this.lock.Lock()
	defer this.lock.Unlock()
	this.documents[name] = append([]byte(nil), content...)
	this.Writes++
	return nil
}

func (this *InMemoryDocuments) Names() (names []string) {
	this.lock.Lock()
	defer this.lock.Unlock()
	for name := range this.documents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
