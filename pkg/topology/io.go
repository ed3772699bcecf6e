package topology

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	cgerrors "github.com/matzehuels/clustergraph/pkg/errors"
)

// Read decodes a JSON topology from r.
//
// The input uses the field names of the upstream data converter:
//
//	{
//	  "graphNodes": [{"id": "n1", "label": "Auth"}],
//	  "graphEdges": [{"id": "e1", "source": "n1", "target": "n2"}],
//	  "c1Outputs": [{"id": "cat1", "label": "Platform"}],
//	  "c2Subcategories": [{"id": "sub1", "c2Name": "A", "c1CategoryId": "cat1", "nodeIds": ["n1"]}],
//	  "c2Relationships": [{"id": "c2_relationship_1", "fromC2": "A", "toC2": "B"}],
//	  "crossC1C2Relationships": []
//	}
//
// Read only decodes; call [Topology.Validate] to check references. Read does
// not close r.
func Read(r io.Reader) (*Topology, error) {
	var t Topology
	dec := json.NewDecoder(r)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &t, nil
}

// ReadFile reads and decodes the JSON topology at path. A missing file is
// reported as FILE_NOT_FOUND.
func ReadFile(path string) (*Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cgerrors.Wrap(cgerrors.ErrCodeFileNotFound, err, "topology file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Write encodes t as indented JSON. The output can be re-read with [Read].
func Write(t *Topology, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes t as JSON to path.
func WriteFile(t *Topology, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(t, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
