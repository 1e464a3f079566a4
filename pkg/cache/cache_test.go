package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/causalbench/adjid/pkg/graph"
	"github.com/causalbench/adjid/pkg/matrix"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "absent"); err != nil || ok {
		t.Fatalf("Get(absent) = ok %v, err %v; want miss", ok, err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || string(data) != "v" {
		t.Fatalf("Get(k) = %q, ok %v, err %v", data, ok, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key error = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expired entry should miss")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("NullCache.Get = ok %v, err %v; want miss", ok, err)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return errors.New("permanent")
	})
	if err == nil || calls != 1 {
		t.Errorf("permanent error retried: calls = %d, err = %v", calls, err)
	}

	if !IsRetryable(Retryable(errors.New("transient"))) {
		t.Error("Retryable error not detected")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain error detected as retryable")
	}
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
}

func TestGraphHashFormatInvariant(t *testing.T) {
	// The same DAG through two different loaders hashes identically.
	rows := [][]int8{
		{0, 1, 1},
		{0, 0, 1},
		{0, 0, 0},
	}
	a, err := matrix.FromRows(rows, matrix.RowToColumn)
	if err != nil {
		t.Fatalf("FromRows() error = %v", err)
	}
	b, err := matrix.FromCSR(3, []int{0, 2, 3, 3}, []int{1, 2, 2}, matrix.RowToColumn)
	if err != nil {
		t.Fatalf("FromCSR() error = %v", err)
	}
	if GraphHash(a) != GraphHash(b) {
		t.Error("equal graphs hash differently")
	}

	other, err := graph.FromEdges(3, []graph.Edge{{From: 0, To: 1}})
	if err != nil {
		t.Fatalf("FromEdges() error = %v", err)
	}
	if GraphHash(a) == GraphHash(other) {
		t.Error("different graphs hash the same")
	}
}

func TestKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	base := k.ResultKey("parent-aid", "h1", "h2", nil, nil)
	if base != k.ResultKey("parent-aid", "h1", "h2", nil, nil) {
		t.Error("keys are not deterministic")
	}
	if base == k.ResultKey("ancestor-aid", "h1", "h2", nil, nil) {
		t.Error("metric name must distinguish keys")
	}
	if base == k.ResultKey("parent-aid", "h2", "h1", nil, nil) {
		t.Error("graph order must distinguish keys")
	}
	if base == k.ResultKey("parent-aid", "h1", "h2", []int{1}, []int{2}) {
		t.Error("selections must distinguish keys")
	}

	scoped := NewScopedKeyer(k, "run42")
	got := scoped.ResultKey("parent-aid", "h1", "h2", nil, nil)
	if got != "run42:"+base {
		t.Errorf("scoped key = %q, want prefix run42: on %q", got, base)
	}
}
