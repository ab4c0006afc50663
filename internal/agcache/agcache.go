// Package agcache persists a finished analysis to disk with the
// github.com/dekarrin/rezi binary codec, so that re-running the CLI
// against an unchanged grammar file can skip recomputation.
package agcache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"

	"github.com/dekarrin/rezi"

	"github.com/dekarrin/attrflow/internal/agerrors"
)

// Entry is the cached form of one analysis run: the rendered dumps, keyed
// by a hash of the grammar source text that produced them.
type Entry struct {
	SourceHash      string
	Dependencies    string
	ExecutionOrders string
	Groups          string
}

// MarshalBinary implements encoding.BinaryMarshaler so Entry can be passed
// directly to rezi.EncBinary.
func (e Entry) MarshalBinary() ([]byte, error) {
	var data []byte
	for _, s := range []string{e.SourceHash, e.Dependencies, e.ExecutionOrders, e.Groups} {
		enc, err := rezi.Enc(s)
		if err != nil {
			return nil, err
		}
		data = append(data, enc...)
	}
	return data, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler so Entry can be
// passed directly to rezi.DecBinary.
func (e *Entry) UnmarshalBinary(data []byte) error {
	fields := []*string{&e.SourceHash, &e.Dependencies, &e.ExecutionOrders, &e.Groups}
	for _, f := range fields {
		n, err := rezi.Dec(data, f)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// HashSource returns the cache key for a grammar's source text.
func HashSource(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

// Load reads and decodes a single cached Entry from path.
func Load(path string) (Entry, error) {
	var e Entry
	data, err := os.ReadFile(path)
	if err != nil {
		return e, agerrors.Wrap(err, "reading cache file "+path)
	}
	if _, err := rezi.DecBinary(data, &e); err != nil {
		return e, agerrors.Wrap(err, "decoding cache file "+path)
	}
	return e, nil
}

// Save encodes e and writes it to path, creating or truncating it.
func Save(path string, e Entry) error {
	data := rezi.EncBinary(e)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return agerrors.Wrap(err, "writing cache file "+path)
	}
	return nil
}
