package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a layout of a document.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds everything that changes a layout besides the document.
type LayoutKeyOpts struct {
	View    string `json:"view"`
	Options any    `json:"options,omitempty"` // view options after defaults
}

// ArtifactKeyOpts holds everything that changes a rendered artifact besides
// the layout.
type ArtifactKeyOpts struct {
	Format      string            `json:"format"`
	Scale       float64           `json:"scale,omitempty"`
	Colors      map[string]string `json:"colors,omitempty"`
	Bases       bool              `json:"bases,omitempty"`
	Interactive bool              `json:"interactive,omitempty"`
}

// DefaultKeyer produces keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// hashKey hashes the JSON encoding of parts. Map keys are sorted by the
// encoder, so equal inputs give equal keys.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON returns the hash of the JSON encoding of v.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// ScopedKeyer prefixes every key of an inner Keyer.
//
//	tenant := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "lab:42:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(docHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
