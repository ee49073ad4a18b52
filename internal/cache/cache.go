// Package cache stores generation results on disk so repeated `gen`
// runs over an unchanged target and rule table can skip rewriting the
// artifact.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"atomica/internal/atomics"
)

// Bump when the Payload layout changes; stale entries are then misses.
const schemaVersion uint16 = 1

// Digest is a SHA-256 over the inputs that determine a generation
// result.
type Digest [sha256.Size]byte

// Payload is one cached generation result.
type Payload struct {
	Schema       uint16
	Target       string
	Missing      []uint8 // width ordinals, canonical order
	ArtifactSHA  Digest
	ArtifactSize uint32
}

// NewPayload captures a generation result for caching.
func NewPayload(targetRaw string, s atomics.Set, artifact []byte) (*Payload, error) {
	size, err := safecast.Conv[uint32](len(artifact))
	if err != nil {
		return nil, fmt.Errorf("artifact too large to cache: %w", err)
	}
	var missing []uint8
	for _, w := range s.Missing() {
		missing = append(missing, uint8(w))
	}
	return &Payload{
		Schema:       schemaVersion,
		Target:       targetRaw,
		Missing:      missing,
		ArtifactSHA:  sha256.Sum256(artifact),
		ArtifactSize: size,
	}, nil
}

// Matches reports whether the cached result still describes artifact.
func (p *Payload) Matches(artifact []byte) bool {
	if p == nil || p.Schema != schemaVersion {
		return false
	}
	size, err := safecast.Conv[uint32](len(artifact))
	if err != nil {
		return false
	}
	return p.ArtifactSize == size && p.ArtifactSHA == sha256.Sum256(artifact)
}

// Disk is a filesystem-backed cache under the XDG cache directory.
// Thread-safe for concurrent access.
type Disk struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes the cache at the standard location for app.
func Open(app string) (*Disk, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Disk{dir: dir}, nil
}

// Key derives the cache key for one generation: the target identifier,
// the digest of the rule table in effect, and the output shape.
func Key(targetRaw string, rules []atomics.Rule, pkg string) Digest {
	h := sha256.New()
	fmt.Fprintf(h, "target=%s\npackage=%s\n", targetRaw, pkg)
	for _, r := range rules {
		fmt.Fprintf(h, "rule=%s:%s:none=%t:missing=%v\n", r.Match, r.Pattern, r.None, r.Missing)
	}
	var d Digest
	h.Sum(d[:0])
	return d
}

func (c *Disk) pathFor(key Digest) string {
	return filepath.Join(c.dir, "gen", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload, replacing atomically.
func (c *Disk) Put(key Digest, payload *Payload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads a payload. A missing entry is (false, nil).
func (c *Disk) Get(key Digest, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}
