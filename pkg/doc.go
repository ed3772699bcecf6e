// Package pkg provides the core libraries for clustergraph layouts.
//
// # Overview
//
// clustergraph positions a two-level compound graph: leaf nodes grouped into
// subcategories, subcategories grouped into categories. The pkg directory is
// organized as:
//
//  1. [topology] - input model, validation and relationship resolution
//  2. [layout] - the directed layered layout primitive and its engines
//  3. [diagram] - inner cluster layout, macro layout and composition
//  4. [present] - canvas flow documents and SVG previews
//  5. [pipeline] - orchestration with caching (validate → layout → render)
//  6. [cache], [config], [server], [observability] - infrastructure
//
// # Architecture
//
//	topology JSON
//	     ↓
//	[topology] Validate, ResolveRelationships
//	     ↓
//	[diagram] per-subcategory layouts → macro layout → composition
//	     ↓
//	[present] flow JSON / SVG
//
// # Quick Start
//
//	t, _ := topology.ReadFile("topology.json")
//	eng := diagram.New(layered.New(), diagram.DefaultConfig())
//	d, _ := eng.Layout(ctx, t)
//	flow := present.Convert(d)
//
// [topology]: github.com/matzehuels/clustergraph/pkg/topology
// [layout]: github.com/matzehuels/clustergraph/pkg/layout
// [diagram]: github.com/matzehuels/clustergraph/pkg/diagram
// [present]: github.com/matzehuels/clustergraph/pkg/present
// [pipeline]: github.com/matzehuels/clustergraph/pkg/pipeline
// [cache]: github.com/matzehuels/clustergraph/pkg/cache
// [config]: github.com/matzehuels/clustergraph/pkg/config
// [server]: github.com/matzehuels/clustergraph/pkg/server
// [observability]: github.com/matzehuels/clustergraph/pkg/observability
package pkg
