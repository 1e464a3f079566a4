package render

import (
	"strings"
	"testing"

	"github.com/causalbench/adjid/pkg/graph"
)

func mustGraph(t *testing.T, n int, edges []graph.Edge) *graph.Graph {
	t.Helper()
	g, err := graph.FromEdges(n, edges)
	if err != nil {
		t.Fatalf("FromEdges() error = %v", err)
	}
	return g
}

func TestGraphDOT(t *testing.T) {
	g := mustGraph(t, 3, []graph.Edge{{From: 0, To: 1}, {From: 1, To: 2}})
	dot := GraphDOT(g, Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=TB;",
		`"0" -> "1";`,
		`"1" -> "2";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestGraphDOTNames(t *testing.T) {
	g := mustGraph(t, 2, []graph.Edge{{From: 0, To: 1}})
	dot := GraphDOT(g, Options{Names: []string{"smoking", "cancer"}, RankDir: "LR"})

	if !strings.Contains(dot, `"smoking" -> "cancer";`) {
		t.Errorf("DOT missing named edge:\n%s", dot)
	}
	if !strings.Contains(dot, "rankdir=LR;") {
		t.Errorf("DOT missing rank direction:\n%s", dot)
	}
}

func TestComparisonDOT(t *testing.T) {
	truth := mustGraph(t, 4, []graph.Edge{
		{From: 0, To: 1}, // shared
		{From: 1, To: 2}, // reversed in guess
		{From: 2, To: 3}, // missing from guess
	})
	guess := mustGraph(t, 4, []graph.Edge{
		{From: 0, To: 1},
		{From: 2, To: 1},
		{From: 0, To: 3}, // extra
	})

	dot := ComparisonDOT(truth, guess, Options{})

	for _, want := range []string{
		`"0" -> "1";`,
		`"1" -> "2" [color=purple`,
		`"2" -> "3" [color=red, style=dashed];`,
		`"0" -> "3" [color=orange, style=dashed];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// The reversed guess edge must not additionally show up as extra.
	if strings.Contains(dot, `"2" -> "1"`) {
		t.Errorf("reversed edge duplicated as extra:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="8pt" height="6pt" viewBox="0.00 0.00 100.60 60.25" xmlns="http://www.w3.org/2000/svg">`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.60 60.25"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="101" height="60"`) {
		t.Errorf("width/height not rewritten: %s", out)
	}

	// SVG without a viewBox passes through untouched.
	plain := []byte("<svg>")
	if got := normalizeViewBox(plain); string(got) != "<svg>" {
		t.Errorf("plain svg changed: %s", got)
	}
}
