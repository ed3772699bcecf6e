package pipeline

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/clustergraph/pkg/cache"
	"github.com/matzehuels/clustergraph/pkg/diagram"
	"github.com/matzehuels/clustergraph/pkg/present"
)

// Render encodes d in every requested format. It never touches a cache.
func Render(d *diagram.Diagram, opts Options) (map[string][]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(opts.formats()))
	for _, f := range opts.formats() {
		data, err := renderFormat(d, f, opts)
		if err != nil {
			return nil, err
		}
		out[f] = data
	}
	return out, nil
}

func renderFormat(d *diagram.Diagram, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatDiagram:
		return json.MarshalIndent(d, "", "  ")
	case FormatSVG:
		return present.RenderSVG(d, opts.presentOptions()...), nil
	default:
		return present.RenderJSON(d, opts.presentOptions()...)
	}
}

// renderCached renders every format, serving the flow document from the
// cache when its key is known.
func (r *Runner) renderCached(ctx context.Context, d *diagram.Diagram, hash string, opts Options) (map[string][]byte, bool, error) {
	flowKey := r.Keyer.FlowKey(hash, cache.FlowKeyOpts{
		Layout:   r.layoutKeyOpts(opts),
		Absolute: opts.Absolute,
		NoPairs:  opts.NoPairs,
	})
	out := make(map[string][]byte, len(opts.formats()))
	flowHit := false
	for _, f := range opts.formats() {
		if f == FormatFlow && !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, flowKey); err == nil && hit {
				out[f], flowHit = data, true
				continue
			}
		}
		data, err := renderFormat(d, f, opts)
		if err != nil {
			return nil, false, err
		}
		out[f] = data
		if f == FormatFlow {
			r.store(ctx, flowKey, data)
		}
	}
	return out, flowHit, nil
}
