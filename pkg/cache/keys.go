package cache

import "github.com/matzehuels/clustergraph/pkg/diagram"

// KeyVersion is mixed into every key. Bump it when the stored encoding
// changes so stale entries stop matching.
const KeyVersion = "v1"

// Key prefixes, also used as the key type reported to cache hooks.
const (
	PrefixLayout = "layout"
	PrefixFlow   = "flow"
)

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a diagram computed from a topology.
	LayoutKey(topologyHash string, opts LayoutKeyOpts) string
	// FlowKey identifies a flow document derived from a diagram.
	FlowKey(topologyHash string, opts FlowKeyOpts) string
}

// LayoutKeyOpts holds every setting that changes a diagram.
type LayoutKeyOpts struct {
	Engine string         `json:"engine"`
	Config diagram.Config `json:"config"`
}

// FlowKeyOpts holds every setting that changes a flow document on top of
// its diagram.
type FlowKeyOpts struct {
	Layout   LayoutKeyOpts `json:"layout"`
	Absolute bool          `json:"absolute,omitempty"`
	NoPairs  bool          `json:"noPairs,omitempty"`
}

// DefaultKeyer hashes the inputs into "prefix:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(topologyHash string, opts LayoutKeyOpts) string {
	return hashKey(PrefixLayout, KeyVersion, topologyHash, opts)
}

func (DefaultKeyer) FlowKey(topologyHash string, opts FlowKeyOpts) string {
	return hashKey(PrefixFlow, KeyVersion, topologyHash, opts)
}

var _ Keyer = DefaultKeyer{}
