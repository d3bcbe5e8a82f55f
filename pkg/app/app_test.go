package app

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/josephg/hyperlines/pkg/compiler"
	"github.com/josephg/hyperlines/pkg/vm"
)

const gridSource = `// title: Grid
_get_hyp() {|t|
  grid(2, 2) {|g|
    each(g) {|p|
      line(p, addVecs(p, Vec(1, 0)))
    }
  }
}
`

const particlesSource = `// title: Particles
_get_hyp() {|t|
  grid(2, 2) {|g|
    each(g) {|p|
      particle(p, \p0 -> addVecs(p0, Vec(0, 0.1))) {|p0, p1|
        line(p0, p1)
      }
    }
  }
}
`

func testPrograms() fstest.MapFS {
	return fstest.MapFS{
		"programs/grid.hl":      {Data: []byte(gridSource)},
		"programs/particles.hl": {Data: []byte(particlesSource)},
	}
}

// run executes the application headless and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, name := range []string{"HEADLESS", "TIMEOUT", "LOG_LEVEL", "MAX_STEPS", "SEED"} {
		t.Setenv(name, "")
	}
	var out bytes.Buffer
	app := New(testPrograms())
	app.stdout = &out
	err := app.Run(append([]string{"--headless", "-l", "error"}, args...))
	return out.String(), err
}

func TestRun_Headless(t *testing.T) {
	out, err := run(t, "grid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Grid: 4 segments in 7 steps\n" +
		"0,0 -> 1,0\n" +
		"1,0 -> 2,0\n" +
		"0,1 -> 1,1\n" +
		"1,1 -> 2,1\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRun_DefaultProgramIsTruncated(t *testing.T) {
	out, err := run(t, "-s", "20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	status, _, _ := strings.Cut(out, "\n")
	if !strings.HasPrefix(status, "Particles: ") || !strings.Contains(status, "in 20 steps (truncated)") {
		t.Errorf("unexpected status %q", status)
	}
}

func TestRun_Print(t *testing.T) {
	out, err := run(t, "--print", "grid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `_get_hyp() {|t|
  grid(2, 2) {|g|
    each(g) {|p|
      line(p, addVecs(p, Vec(1, 0)))
    }
  }
}
`
	if out != want {
		t.Errorf("printed\n%s\nwant\n%s", out, want)
	}
}

func TestRun_MutationsAreReproducible(t *testing.T) {
	first, err := run(t, "--print", "--seed", "7", "-m", "4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := run(t, "--print", "--seed", "7", "-m", "4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("same seed printed different programs:\n%s\n%s", first, second)
	}
	if _, err := compiler.CompileChecked(vm.DefaultRegistry(), first); err != nil {
		t.Errorf("mutated program does not compile: %v\n%s", err, first)
	}
}

func TestRun_WritesPictures(t *testing.T) {
	dir := t.TempDir()
	svgPath := filepath.Join(dir, "out.svg")
	pngPath := filepath.Join(dir, "out.png")

	if _, err := run(t, "--svg", svgPath, "--png", pngPath, "grid"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svg, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatalf("SVG not written: %v", err)
	}
	if n := strings.Count(string(svg), "<line "); n != 4 {
		t.Errorf("expected 4 line elements, got %d", n)
	}

	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatalf("PNG not written: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
}

func TestRun_List(t *testing.T) {
	out, err := run(t, "--list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 programs, got %q", out)
	}
	if f := strings.Fields(lines[0]); len(f) != 2 || f[0] != "grid" || f[1] != "Grid" {
		t.Errorf("unexpected entry %q", lines[0])
	}
	if f := strings.Fields(lines[1]); len(f) != 2 || f[0] != "particles" || f[1] != "Particles" {
		t.Errorf("unexpected entry %q", lines[1])
	}
}

func TestRun_ExternalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.hl")
	src := "_get_hyp() {|t|\n  line([0, 0], [1, 2])\n}\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("failed to write program: %v", err)
	}

	out, err := run(t, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "single: 1 segments in 2 steps\n0,0 -> 1,2\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.hl")
	if err := os.WriteFile(broken, []byte("_get_hyp() {|t|\n  line([0, 0]\n}\n"), 0644); err != nil {
		t.Fatalf("failed to write program: %v", err)
	}
	illTyped := filepath.Join(dir, "typed.hl")
	if err := os.WriteFile(illTyped, []byte("_get_hyp() {|t|\n  line(t, t)\n}\n"), 0644); err != nil {
		t.Fatalf("failed to write program: %v", err)
	}

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"bad flag", []string{"--nope"}, "failed to parse args"},
		{"missing file", []string{filepath.Join(dir, "missing.hl")}, "failed to load program"},
		{"syntax error", []string{broken}, "broken.hl: "},
		{"type error", []string{illTyped}, "type check failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}
