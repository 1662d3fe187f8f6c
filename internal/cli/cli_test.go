package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/lotplan/pkg/config"
	"github.com/matzehuels/lotplan/pkg/errors"
	lotio "github.com/matzehuels/lotplan/pkg/io"
	"github.com/matzehuels/lotplan/pkg/layout"
	"github.com/matzehuels/lotplan/pkg/observability"
)

// workspace runs each test in its own directory with no user config.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, k := range []string{config.EnvStoreURL, config.EnvAddr, config.EnvStrictResize} {
		t.Setenv(k, "")
	}
	t.Cleanup(observability.Reset)
	return dir
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func mustRun(t *testing.T, args ...string) {
	t.Helper()
	if err := run(t, args...); err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
}

func loadDraft(t *testing.T, path string) *layout.State {
	t.Helper()
	s, err := lotio.ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON(%s): %v", path, err)
	}
	return s
}

func TestNewAddAccept(t *testing.T) {
	workspace(t)

	mustRun(t, "new", "--width", "400", "--height", "300")
	mustRun(t, "add")
	mustRun(t, "accept")

	s := loadDraft(t, defaultDraft)
	if got := s.Canvas(); got.Width != 400 || got.Height != 300 {
		t.Errorf("Canvas() = %+v, want 400x300", got)
	}
	spots := s.Spots()
	if len(spots) != 2 {
		t.Fatalf("len(Spots()) = %d, want 2", len(spots))
	}
	if spots[1].X != 60 || spots[1].Y != 0 {
		t.Errorf("accepted spot at (%v, %v), want (60, 0)", spots[1].X, spots[1].Y)
	}
}

func TestNewRefusesOverwrite(t *testing.T) {
	workspace(t)

	mustRun(t, "new")
	mustRun(t, "add")

	err := run(t, "new")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("second new: err = %v, want INVALID_INPUT", err)
	}
	if got := loadDraft(t, defaultDraft).Len(); got != 1 {
		t.Errorf("Len() = %d after refused new, want 1", got)
	}

	mustRun(t, "new", "--force")
	if got := loadDraft(t, defaultDraft).Len(); got != 0 {
		t.Errorf("Len() = %d after new --force, want 0", got)
	}
}

func TestRejectedEditLeavesDraft(t *testing.T) {
	workspace(t)

	mustRun(t, "new", "--width", "400", "--height", "300")
	mustRun(t, "add", "--at", "100,100")
	before, err := os.ReadFile(defaultDraft)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"overlapping add", []string{"add", "--at", "120,120"}, errors.ErrCodeOverlap},
		{"move off canvas", []string{"move", "1", "380", "100"}, errors.ErrCodeOutOfBounds},
		{"unknown spot", []string{"rotate", "7"}, errors.ErrCodeSpotNotFound},
		{"empty label", []string{"relabel", "1", " "}, errors.ErrCodeInvalidLabel},
		{"tiny canvas", []string{"resize", "10", "10"}, errors.ErrCodeInvalidCanvas},
		{"bad id", []string{"remove", "one"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			after, err := os.ReadFile(defaultDraft)
			if err != nil {
				t.Fatal(err)
			}
			if string(after) != string(before) {
				t.Error("draft changed after a rejected edit")
			}
		})
	}
}

func TestSpotCommands(t *testing.T) {
	workspace(t)

	mustRun(t, "new", "--width", "400", "--height", "300")
	mustRun(t, "add", "--at", "100,100")
	mustRun(t, "add")
	mustRun(t, "move", "1", "200", "150")
	mustRun(t, "rotate", "1", "--by", "90")
	mustRun(t, "relabel", "1", "Entrance")
	mustRun(t, "rm", "2")

	s := loadDraft(t, defaultDraft)
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	sp, ok := s.Spot(1)
	if !ok {
		t.Fatal("spot 1 missing")
	}
	want := layout.Spot{ID: 1, Label: "Entrance", X: 200, Y: 150, Rotation: 90}
	if sp != want {
		t.Errorf("spot = %+v, want %+v", sp, want)
	}
	if got := s.NextID(); got != 3 {
		t.Errorf("NextID() = %d, want 3", got)
	}
}

func TestResize(t *testing.T) {
	t.Run("permissive", func(t *testing.T) {
		workspace(t)
		mustRun(t, "new", "--width", "400", "--height", "300")
		mustRun(t, "add", "--at", "300,150")
		mustRun(t, "resize", "300", "300")

		s := loadDraft(t, defaultDraft)
		if got := s.Violations(); len(got) != 1 || got[0] != 1 {
			t.Errorf("Violations() = %v, want [1]", got)
		}
	})

	t.Run("strict from config", func(t *testing.T) {
		dir := workspace(t)
		cfg := filepath.Join(dir, "config.toml")
		if err := os.WriteFile(cfg, []byte("[editor]\nstrict_resize = true\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		mustRun(t, "--config", cfg, "new", "--width", "400", "--height", "300")
		mustRun(t, "--config", cfg, "add", "--at", "300,150")

		err := run(t, "--config", cfg, "resize", "300", "300")
		if !errors.Is(err, errors.ErrCodeOutOfBounds) {
			t.Fatalf("err = %v, want OUT_OF_BOUNDS", err)
		}
		if got := loadDraft(t, defaultDraft).Canvas().Width; got != 400 {
			t.Errorf("Width = %v, want 400", got)
		}
	})
}

func TestMissingDraft(t *testing.T) {
	workspace(t)

	err := run(t, "show")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
	if !strings.Contains(errors.UserMessage(err), "lotplan new") {
		t.Errorf("message %q does not point at lotplan new", errors.UserMessage(err))
	}
}

func TestCustomDraftFile(t *testing.T) {
	dir := workspace(t)
	path := filepath.Join(dir, "north.json")

	mustRun(t, "-f", path, "new")
	mustRun(t, "-f", path, "add")

	if got := loadDraft(t, path).Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
	if _, err := os.Stat(defaultDraft); !os.IsNotExist(err) {
		t.Errorf("default draft written: %v", err)
	}
}

func TestRender(t *testing.T) {
	workspace(t)
	mustRun(t, "new")
	mustRun(t, "add")

	mustRun(t, "render")
	data, err := os.ReadFile("lot.svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") || !strings.Contains(string(data), `class="ghost"`) {
		t.Error("lot.svg missing the drawing or the ghost")
	}

	mustRun(t, "render", "--dot", "-o", "plan.dot")
	data, err = os.ReadFile("plan.dot")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "graph") {
		t.Errorf("plan.dot does not start with a graph: %.40q", data)
	}
}

func TestPublish(t *testing.T) {
	dir := workspace(t)
	lot := `name = "Harbour Lot"
address = "1 Quay Street"
latitude = 53.54
longitude = 9.98
price_per_hour = 2.5
`
	if err := os.WriteFile("lot.toml", []byte(lot), 0o644); err != nil {
		t.Fatal(err)
	}
	mustRun(t, "new")
	mustRun(t, "add")
	mustRun(t, "accept")

	out := filepath.Join(dir, "out")
	mustRun(t, "publish", "--store", "file://"+out)

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || filepath.Ext(entries[0].Name()) != ".json" {
		t.Fatalf("store contents = %v, want one publication", entries)
	}
	data, err := os.ReadFile(filepath.Join(out, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"Harbour Lot"`, `"P2"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("publication missing %s", want)
		}
	}
}

func TestPublishRefusesViolations(t *testing.T) {
	workspace(t)
	if err := os.WriteFile("lot.yaml", []byte("name: Yard\naddress: Back Lane\nlatitude: 1\nlongitude: 2\nprice_per_hour: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	mustRun(t, "new", "--width", "400", "--height", "300")
	mustRun(t, "add", "--at", "300,150")
	mustRun(t, "resize", "300", "300")

	err := run(t, "publish", "--lot", "lot.yaml")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
	if _, err := os.Stat("published"); !os.IsNotExist(err) {
		t.Error("publication store created for a refused publish")
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		x, y    float64
		wantErr bool
	}{
		{"10,20", 10, 20, false},
		{" 1.5 , -2 ", 1.5, -2, false},
		{"10", 0, 0, true},
		{"a,2", 0, 0, true},
		{"1,b", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			x, y, err := parsePoint(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePoint(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && (x != tt.x || y != tt.y) {
				t.Errorf("parsePoint(%q) = (%v, %v), want (%v, %v)", tt.in, x, y, tt.x, tt.y)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	for _, in := range []string{"0", "-1", "x", ""} {
		if _, err := parseID(in); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("parseID(%q) err = %v, want INVALID_INPUT", in, err)
		}
	}
	if id, err := parseID("12"); err != nil || id != 12 {
		t.Errorf("parseID(12) = %d, %v", id, err)
	}
}

func TestValidateRenderOpts(t *testing.T) {
	tests := []struct {
		name    string
		opts    renderOpts
		wantErr bool
	}{
		{"native svg", renderOpts{engine: "native", format: "svg"}, false},
		{"case folded", renderOpts{engine: "GraphViz", format: "PNG"}, false},
		{"native png", renderOpts{engine: "native", format: "png"}, true},
		{"dot ignores engine for png", renderOpts{engine: "native", format: "png", dotOnly: true}, false},
		{"unknown engine", renderOpts{engine: "cairo", format: "svg"}, true},
		{"unknown format", renderOpts{engine: "graphviz", format: "pdf"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRenderOpts(&tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateRenderOpts() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
