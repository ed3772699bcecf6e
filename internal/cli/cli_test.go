package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/clustergraph/pkg/diagram"
	cgerrors "github.com/matzehuels/clustergraph/pkg/errors"
	"github.com/matzehuels/clustergraph/pkg/pipeline"
	"github.com/matzehuels/clustergraph/pkg/present"
)

const scenario = "testdata/scenario.json"

// newTestCLI isolates the cache directory and config lookup from the host.
func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(envConfig, "")

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.Out = &out
	c.Err = io.Discard
	return c, &out
}

func execute(c *CLI, args ...string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestLayoutWritesFormats(t *testing.T) {
	c, out := newTestCLI(t)
	base := filepath.Join(t.TempDir(), "scene")

	if err := execute(c, "layout", scenario, "-f", "diagram,flow,svg", "-o", base, "--no-cache"); err != nil {
		t.Fatalf("layout: %v", err)
	}

	var d diagram.Diagram
	readJSON(t, base+".diagram.json", &d)
	if len(d.Nodes) != 4 || len(d.Subcategories) != 2 || len(d.Categories) != 1 {
		t.Errorf("diagram has %d nodes, %d subcategories, %d categories; want 4, 2, 1",
			len(d.Nodes), len(d.Subcategories), len(d.Categories))
	}

	var f present.Flow
	readJSON(t, base+".flow.json", &f)
	if len(f.Nodes) != 7 {
		t.Errorf("flow has %d nodes, want 7", len(f.Nodes))
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg output starts with %q", svg[:min(len(svg), 20)])
	}

	for _, want := range []string{"Layout complete", base + ".svg", "4 nodes", "fresh"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestLayoutStdinToStdout(t *testing.T) {
	c, out := newTestCLI(t)
	in, err := os.Open(scenario)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	c.Stdin = in

	if err := execute(c, "layout", "-", "-o", "-", "-f", "diagram", "--no-cache"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	var d diagram.Diagram
	if err := json.Unmarshal(out.Bytes(), &d); err != nil {
		t.Fatalf("stdout is not a diagram: %v\n%s", err, out.String())
	}
	if _, ok := d.Subcategory("subA"); !ok {
		t.Error("subA missing from stdout diagram")
	}
}

func TestLayoutUsesFileCache(t *testing.T) {
	c, out := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "scene.flow.json")

	if err := execute(c, "layout", scenario, "-o", path); err != nil {
		t.Fatalf("first layout: %v", err)
	}
	if !strings.Contains(out.String(), "fresh") {
		t.Errorf("first run should compute:\n%s", out.String())
	}

	out.Reset()
	if err := execute(c, "layout", scenario, "-o", path); err != nil {
		t.Fatalf("second layout: %v", err)
	}
	if !strings.Contains(out.String(), "cached") {
		t.Errorf("second run should hit the cache:\n%s", out.String())
	}

	out.Reset()
	if err := execute(c, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared file cache") {
		t.Errorf("cache clear output:\n%s", out.String())
	}
}

func TestLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code cgerrors.Code
	}{
		{"stdout needs one format", []string{"layout", scenario, "-o", "-", "-f", "flow,svg"}, cgerrors.ErrCodeInvalidInput},
		{"unknown engine", []string{"layout", scenario, "--engine", "spring"}, cgerrors.ErrCodeInvalidEngine},
		{"unknown format", []string{"layout", scenario, "-f", "png", "--no-cache"}, cgerrors.ErrCodeInvalidInput},
		{"negative padding", []string{"layout", scenario, "--padding", "-1"}, cgerrors.ErrCodeInvalidConfig},
		{"missing file", []string{"layout", "testdata/missing.json"}, cgerrors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI(t)
			err := execute(c, tt.args...)
			if !cgerrors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateCommand(t *testing.T) {
	c, out := newTestCLI(t)
	if err := execute(c, "validate", scenario); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out.String(), "Topology is valid") {
		t.Errorf("output:\n%s", out.String())
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	doc := `{"graphNodes": [{"id": "n1"}, {"id": "n1"}], "graphEdges": [], "c1Outputs": [], "c2Subcategories": []}`
	if err := os.WriteFile(bad, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, _ = newTestCLI(t)
	if err := execute(c, "validate", bad); !cgerrors.Is(err, cgerrors.ErrCodeDuplicateID) {
		t.Errorf("error = %v, want DUPLICATE_ID", err)
	}
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clustergraph.toml")
	if err := os.WriteFile(path, []byte("[cluster]\npadding = 60\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, out := newTestCLI(t)
	if err := execute(c, "config", "--config", path); err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{"[cache]", `backend = "file"`, "padding = 60"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("config output missing %q:\n%s", want, out.String())
		}
	}
}

func TestCachePath(t *testing.T) {
	c, out := newTestCLI(t)
	if err := execute(c, "cache", "path"); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		formats []string
		want    map[string]string
	}{
		{
			name:    "derived from input",
			input:   "graphs/shop.json",
			formats: []string{pipeline.FormatFlow, pipeline.FormatSVG},
			want:    map[string]string{"flow": "graphs/shop.flow.json", "svg": "graphs/shop.svg"},
		},
		{
			name:    "explicit single file",
			input:   "shop.json",
			output:  "out/x.json",
			formats: []string{pipeline.FormatDiagram},
			want:    map[string]string{"diagram": "out/x.json"},
		},
		{
			name:    "explicit base for several",
			input:   "shop.json",
			output:  "out/x.json",
			formats: []string{pipeline.FormatDiagram, pipeline.FormatFlow},
			want:    map[string]string{"diagram": "out/x.diagram.json", "flow": "out/x.flow.json"},
		},
		{
			name:    "stdin input",
			input:   pipeline.Stdin,
			formats: []string{pipeline.FormatSVG},
			want:    map[string]string{"svg": "topology.svg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.input, tt.output, tt.formats)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("outputPaths() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"flow"}},
		{"svg", []string{"svg"}},
		{"diagram, flow,,svg", []string{"diagram", "flow", "svg"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseFormats(tt.in)); diff != "" {
			t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
}
