package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/causalbench/adjid/pkg/graph"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// GraphHash returns the canonical hash of a DAG: node count followed by the
// sorted edge list. Any input representation of the same graph hashes the
// same, so cache keys survive format changes.
func GraphHash(g *graph.Graph) string {
	h := sha256.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(g.NodeCount()))
	h.Write(buf[:])
	for _, e := range g.Edges() {
		binary.BigEndian.PutUint64(buf[:], uint64(e.From))
		h.Write(buf[:])
		binary.BigEndian.PutUint64(buf[:], uint64(e.To))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Keyer derives cache keys for the things the engine computes.
type Keyer interface {
	// ResultKey identifies one distance computation: the metric name, both
	// graphs by canonical hash, and the treatment/effect selection (nil
	// means all pairs).
	ResultKey(metric, truthHash, guessHash string, treatments, effects []int) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ResultKey generates a key for a distance result.
func (k *DefaultKeyer) ResultKey(metric, truthHash, guessHash string, treatments, effects []int) string {
	return hashKey("result", metric, truthHash, guessHash, treatments, effects)
}

// ScopedKeyer wraps a Keyer with a prefix so separate runs or tenants get
// disjoint cache namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ResultKey generates a prefixed key for a distance result.
func (k *ScopedKeyer) ResultKey(metric, truthHash, guessHash string, treatments, effects []int) string {
	return k.prefix + k.inner.ResultKey(metric, truthHash, guessHash, treatments, effects)
}
