package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Chain 0 -> 1 -> 2 as truth, single edge 0 -> 1 as guess.
const (
	truthMtx = "%%MatrixMarket matrix coordinate pattern general\n3 3 2\n1 2\n2 3\n"
	guessMtx = "%%MatrixMarket matrix coordinate pattern general\n3 3 1\n1 2\n"
)

func writeGraphs(t *testing.T) (truthPath, guessPath string) {
	t.Helper()
	dir := t.TempDir()
	truthPath = filepath.Join(dir, "truth.mtx")
	guessPath = filepath.Join(dir, "guess.mtx")
	if err := os.WriteFile(truthPath, []byte(truthMtx), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(guessPath, []byte(guessMtx), 0o644); err != nil {
		t.Fatal(err)
	}
	return truthPath, guessPath
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written to it.
func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	runErr := fn()
	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if runErr != nil {
		t.Fatalf("command error = %v", runErr)
	}
	return string(out)
}

func TestComputeCommandJSON(t *testing.T) {
	truthPath, guessPath := writeGraphs(t)
	c := newTestCLI()
	c.Config.Cache.Enabled = false
	c.Config.Store.Backend = StoreBackendNone

	root := c.RootCommand()
	root.SetArgs([]string{"compute", truthPath, guessPath, "--metric", "parent-aid", "--json", "--no-cache"})

	out := captureStdout(t, root.Execute)

	var result computeOutput
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if result.Metric != "parent-aid" {
		t.Errorf("metric = %q", result.Metric)
	}
	if result.Mistakes != 2 || result.Pairs != 6 {
		t.Errorf("result = %+v, want 2 mistakes over 6 pairs", result)
	}
}

func TestComputeCommandSelectedPairs(t *testing.T) {
	truthPath, guessPath := writeGraphs(t)
	c := newTestCLI()
	c.Config.Cache.Enabled = false

	root := c.RootCommand()
	root.SetArgs([]string{
		"compute", truthPath, guessPath,
		"--metric", "parent-aid", "--treatments", "2", "--effects", "0,1",
		"--json", "--no-cache",
	})

	out := captureStdout(t, root.Execute)

	var result computeOutput
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if result.Mistakes != 2 || result.Pairs != 2 {
		t.Errorf("result = %+v, want 2 mistakes over 2 pairs", result)
	}
}

func TestComputeCommandSavesRun(t *testing.T) {
	truthPath, guessPath := writeGraphs(t)
	c := newTestCLI()
	c.Config.Cache.Enabled = false
	c.Config.Store.Dir = t.TempDir()

	root := c.RootCommand()
	root.SetArgs([]string{"compute", truthPath, guessPath, "--metric", "shd", "--json", "--no-cache", "--save"})

	out := captureStdout(t, root.Execute)

	var result computeOutput
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if result.RunID == "" {
		t.Fatal("run not persisted")
	}
	if _, err := os.Stat(filepath.Join(c.Config.Store.Dir, result.RunID+".json")); err != nil {
		t.Errorf("run file missing: %v", err)
	}
}

func TestComputeCommandUnknownMetric(t *testing.T) {
	truthPath, guessPath := writeGraphs(t)
	c := newTestCLI()

	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"compute", truthPath, guessPath, "--metric", "hamming", "--json", "--no-cache"})

	if err := root.Execute(); err == nil {
		t.Error("Execute() accepted unknown metric")
	}
}

func TestRenderCommandDOT(t *testing.T) {
	truthPath, guessPath := writeGraphs(t)
	c := newTestCLI()
	outPath := filepath.Join(t.TempDir(), "cmp.dot")

	root := c.RootCommand()
	root.SetArgs([]string{"render", truthPath, guessPath, "--format", "dot", "--output", outPath})

	captureStdout(t, root.Execute)

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "digraph") {
		t.Errorf("output is not DOT:\n%s", data)
	}
}
