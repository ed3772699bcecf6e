// Package pipeline runs the load → validate → layout → render pipeline
// shared by the CLI and the HTTP server.
//
// # Stages
//
//  1. Validate: reject malformed topologies before any layout work
//  2. Layout: compute a [diagram.Diagram], cached by topology hash, engine
//     and engine settings
//  3. Render: produce the requested formats (diagram JSON, flow JSON, SVG)
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, topo, pipeline.Options{
//	    Formats: []string{pipeline.FormatFlow},
//	})
//	if err != nil {
//	    return err
//	}
//	flow := result.Artifacts[pipeline.FormatFlow]
package pipeline

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/clustergraph/pkg/diagram"
	cgerrors "github.com/matzehuels/clustergraph/pkg/errors"
	"github.com/matzehuels/clustergraph/pkg/layout/engines"
	"github.com/matzehuels/clustergraph/pkg/present"
)

// Output formats.
const (
	FormatDiagram = "diagram"
	FormatFlow    = "flow"
	FormatSVG     = "svg"
)

// DefaultTTL is how long computed diagrams stay cached.
const DefaultTTL = 24 * time.Hour

// Formats returns the supported output formats.
func Formats() []string {
	return []string{FormatDiagram, FormatFlow, FormatSVG}
}

// Options configures one pipeline run.
type Options struct {
	// Engine overrides the runner's layout engine.
	Engine string `json:"engine,omitempty"`
	// Formats lists the artifacts to render; empty selects FormatFlow.
	Formats []string `json:"formats,omitempty"`
	// Absolute keeps flow child positions in the diagram frame.
	Absolute bool `json:"absolute,omitempty"`
	// NoPairs disables reciprocal edge pairing in the flow.
	NoPairs bool `json:"noPairs,omitempty"`
	// Lenient skips topology validation and lets the engine tolerate
	// dangling references.
	Lenient bool `json:"lenient,omitempty"`
	// Refresh ignores cached results and overwrites them.
	Refresh bool `json:"-"`
}

// Validate reports an unknown format or engine.
func (o Options) Validate() error {
	for _, f := range o.Formats {
		if !slices.Contains(Formats(), f) {
			return cgerrors.New(cgerrors.ErrCodeInvalidInput, "unknown format %q (want one of %s)", f, strings.Join(Formats(), ", "))
		}
	}
	if o.Engine != "" {
		if _, err := engines.New(o.Engine); err != nil {
			return err
		}
	}
	return nil
}

func (o Options) formats() []string {
	if len(o.Formats) == 0 {
		return []string{FormatFlow}
	}
	return o.Formats
}

func (o Options) presentOptions() []present.Option {
	var opts []present.Option
	if o.Absolute {
		opts = append(opts, present.WithAbsolutePositions())
	}
	if o.NoPairs {
		opts = append(opts, present.WithoutPairing())
	}
	return opts
}

// Result is the output of [Runner.Execute].
type Result struct {
	Diagram *diagram.Diagram
	// Artifacts maps each requested format to its encoded bytes.
	Artifacts map[string][]byte
	// TopologyHash identifies the input in cache keys and API responses.
	TopologyHash string
	Stats        Stats
	CacheInfo    CacheInfo
}

// Stats holds stage timings.
type Stats struct {
	ValidateTime time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo reports which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	FlowHit   bool
}

func (s Stats) String() string {
	return fmt.Sprintf("validate %s, layout %s, render %s", s.ValidateTime, s.LayoutTime, s.RenderTime)
}
