package diagram

import (
	cgerrors "github.com/matzehuels/clustergraph/pkg/errors"
	"github.com/matzehuels/clustergraph/pkg/layout"
)

// Defaults for [DefaultConfig].
const (
	DefaultNodeWidth      = 150
	DefaultNodeHeight     = 40
	DefaultClusterPadding = 40
	DefaultInnerMargin    = 20
	DefaultInnerNodeSep   = 50
	DefaultInnerRankSep   = 50
	DefaultMacroNodeSep   = 50
	DefaultMacroRankSep   = 70
)

// Config holds the constants that decide whether clusters render without
// overlap.
type Config struct {
	NodeWidth  float64
	NodeHeight float64
	// ClusterPadding is added to both dimensions of every subcategory box
	// to leave room for its border and label.
	ClusterPadding float64
	// Inner configures each subcategory's local layout.
	Inner layout.Options
	// Macro configures the single top-level layout.
	Macro layout.Options
	// Workers bounds concurrent inner layouts. Zero or less selects
	// GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		NodeWidth:      DefaultNodeWidth,
		NodeHeight:     DefaultNodeHeight,
		ClusterPadding: DefaultClusterPadding,
		Inner: layout.Options{
			RankDir: layout.TopBottom,
			NodeSep: DefaultInnerNodeSep,
			RankSep: DefaultInnerRankSep,
			MarginX: DefaultInnerMargin,
			MarginY: DefaultInnerMargin,
		},
		Macro: layout.Options{
			RankDir: layout.TopBottom,
			NodeSep: DefaultMacroNodeSep,
			RankSep: DefaultMacroRankSep,
		},
	}
}

// Validate reports an INVALID_CONFIG error for unusable settings. Macro
// spacing must be at least the inner spacing, since macro nodes are boxes
// holding whole inner drawings.
func (c Config) Validate() error {
	if c.NodeWidth <= 0 || c.NodeHeight <= 0 {
		return cgerrors.New(cgerrors.ErrCodeInvalidConfig, "node size must be positive, got %gx%g", c.NodeWidth, c.NodeHeight)
	}
	if c.ClusterPadding < 0 {
		return cgerrors.New(cgerrors.ErrCodeInvalidConfig, "cluster padding must not be negative, got %g", c.ClusterPadding)
	}
	if _, err := c.Inner.Normalize(); err != nil {
		return cgerrors.Wrap(cgerrors.ErrCodeInvalidConfig, err, "inner layout")
	}
	if _, err := c.Macro.Normalize(); err != nil {
		return cgerrors.Wrap(cgerrors.ErrCodeInvalidConfig, err, "macro layout")
	}
	if c.Macro.NodeSep < c.Inner.NodeSep || c.Macro.RankSep < c.Inner.RankSep {
		return cgerrors.New(cgerrors.ErrCodeInvalidConfig,
			"macro spacing (%g/%g) must not be smaller than inner spacing (%g/%g)",
			c.Macro.NodeSep, c.Macro.RankSep, c.Inner.NodeSep, c.Inner.RankSep)
	}
	return nil
}
