package pipeline

import (
	"io"

	"github.com/matzehuels/clustergraph/pkg/topology"
)

// Stdin is the path that makes [Load] read from its reader argument.
// Stdout is the output path that means standard output.
const (
	Stdin  = "-"
	Stdout = "-"
)

// Load reads a topology from path, or from stdin when path is [Stdin] or
// empty.
func Load(path string, stdin io.Reader) (*topology.Topology, error) {
	if path == "" || path == Stdin {
		return topology.Read(stdin)
	}
	return topology.ReadFile(path)
}
