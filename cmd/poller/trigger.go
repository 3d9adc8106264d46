package poller

import (
	"encoding/json"
	"io"

	"github.com/smartystreets/artifact-poller/contracts"
)

// JSONTrigger hands the decision to whatever reads the writer, typically the
// CI system consuming stdout.
type JSONTrigger struct {
	output io.Writer
}

func NewJSONTrigger(output io.Writer) *JSONTrigger {
	return &JSONTrigger{output: output}
}

func (this *JSONTrigger) Trigger(decision contracts.Decision) error {
	encoder := json.NewEncoder(this.output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(decision)
}
