package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/causalbench/adjid/pkg/cache"
	"github.com/causalbench/adjid/pkg/errors"
	"github.com/causalbench/adjid/pkg/results"
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

func quietLogger() *log.Logger {
	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel)
	return logger
}

func TestExecuteComputesAndCaches(t *testing.T) {
	truthPath, guessPath := writeGraphs(t)
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fileCache, nil, quietLogger())
	ctx := context.Background()

	opts := Options{TruthPath: truthPath, GuessPath: guessPath, Metric: MetricParentAID}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.Cached {
		t.Error("first execution should not be cached")
	}
	if first.Distance.Mistakes != 2 || first.Distance.Pairs != 6 {
		t.Errorf("Distance = %v, want 2 mistakes over 6 pairs", first.Distance)
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !second.Cached {
		t.Error("second execution should hit the cache")
	}
	if second.Distance != first.Distance {
		t.Errorf("cached distance %v differs from computed %v", second.Distance, first.Distance)
	}
}

func TestExecuteMetricDispatch(t *testing.T) {
	truthPath, guessPath := writeGraphs(t)
	runner := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	tests := []struct {
		metric   string
		mistakes int
	}{
		{MetricParentAID, 2},
		{MetricAncestorAID, 2},
		{MetricOsetAID, 2},
		{MetricSID, 2},
		{MetricSHD, 1},
	}

	for _, tt := range tests {
		t.Run(tt.metric, func(t *testing.T) {
			res, err := runner.Execute(ctx, Options{
				TruthPath: truthPath, GuessPath: guessPath, Metric: tt.metric,
			})
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if res.Distance.Mistakes != tt.mistakes {
				t.Errorf("mistakes = %d, want %d", res.Distance.Mistakes, tt.mistakes)
			}
		})
	}
}

func TestExecuteSelectedPairs(t *testing.T) {
	truthPath, guessPath := writeGraphs(t)
	runner := NewRunner(nil, nil, quietLogger())

	res, err := runner.Execute(context.Background(), Options{
		TruthPath:  truthPath,
		GuessPath:  guessPath,
		Metric:     MetricParentAID,
		Treatments: []int{2},
		Effects:    []int{0, 1},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Distance.Mistakes != 2 || res.Distance.Pairs != 2 {
		t.Errorf("Distance = %v, want 2 mistakes over 2 pairs", res.Distance)
	}
}

func TestExecutePersistsRun(t *testing.T) {
	truthPath, guessPath := writeGraphs(t)
	store, err := results.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(nil, nil, quietLogger())
	runner.Store = store
	ctx := context.Background()

	res, err := runner.Execute(ctx, Options{
		TruthPath: truthPath, GuessPath: guessPath, Metric: MetricOsetAID,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Run == nil {
		t.Fatal("Run not persisted")
	}

	saved, err := store.Get(ctx, res.Run.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if saved.Metric != MetricOsetAID || saved.Result != res.Distance {
		t.Errorf("stored run = %+v, want metric %s result %v", saved, MetricOsetAID, res.Distance)
	}
}

func TestExecuteRendersDOT(t *testing.T) {
	truthPath, guessPath := writeGraphs(t)
	runner := NewRunner(nil, nil, quietLogger())

	res, err := runner.Execute(context.Background(), Options{
		TruthPath: truthPath,
		GuessPath: guessPath,
		Metric:    MetricSHD,
		Formats:   []string{FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(res.Artifacts[FormatDOT]) == 0 {
		t.Error("DOT artifact missing")
	}
}

func TestExecuteRemoteFixtures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/truth.mtx", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, truthMtx)
	})
	mux.HandleFunc("/guess.mtx", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, guessMtx)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	runner := NewRunner(nil, nil, quietLogger())
	res, err := runner.Execute(context.Background(), Options{
		TruthPath: srv.URL + "/truth.mtx",
		GuessPath: srv.URL + "/guess.mtx",
		Metric:    MetricParentAID,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Distance.Mistakes != 2 || res.Distance.Pairs != 6 {
		t.Errorf("Distance = %v, want 2 mistakes over 6 pairs", res.Distance)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{"missing paths", Options{Metric: MetricSHD}, errors.ErrCodeInvalidPath},
		{"unknown metric", Options{TruthPath: "a", GuessPath: "b", Metric: "hamming"}, errors.ErrCodeUnsupported},
		{"shd with selection", Options{TruthPath: "a", GuessPath: "b", Metric: MetricSHD, Treatments: []int{0}}, errors.ErrCodeInvalidSelection},
		{"unknown format", Options{TruthPath: "a", GuessPath: "b", Metric: MetricSHD, Formats: []string{"pdf"}}, errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want code %v", err, tt.wantCode)
			}
		})
	}

	defaulted := Options{TruthPath: "a", GuessPath: "b"}
	if err := defaulted.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("defaults error = %v", err)
	}
	if defaulted.Metric != MetricParentAID || defaulted.CacheTTL != DefaultCacheTTL {
		t.Errorf("defaults not applied: %+v", defaulted)
	}
}
