// Package engines constructs layout engines by name.
package engines

import (
	"slices"
	"strings"

	cgerrors "github.com/matzehuels/clustergraph/pkg/errors"
	"github.com/matzehuels/clustergraph/pkg/layout"
	"github.com/matzehuels/clustergraph/pkg/layout/graphviz"
	"github.com/matzehuels/clustergraph/pkg/layout/layered"
)

// Engine names accepted by [New].
const (
	Layered  = "layered"
	Graphviz = "graphviz"
)

// Default is the engine used when no name is given.
const Default = Layered

// Names returns the accepted engine names in sorted order.
func Names() []string {
	names := []string{Layered, Graphviz}
	slices.Sort(names)
	return names
}

// Canonical maps an accepted spelling of an engine name to the name [New]
// resolves it to. Unknown names come back trimmed and lower-cased.
func Canonical(name string) string {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "":
		return Default
	case "dot":
		return Graphviz
	default:
		return n
	}
}

// New returns a fresh engine for name, or an INVALID_ENGINE error.
// An empty name selects [Default].
func New(name string) (layout.Engine, error) {
	switch Canonical(name) {
	case Layered:
		return layered.New(), nil
	case Graphviz:
		return graphviz.New(), nil
	default:
		return nil, cgerrors.New(cgerrors.ErrCodeInvalidEngine, "unknown layout engine %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
}
