// Package id generates identifiers for engine entities.
package id

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/oklog/ulid/v2"
)

// Generate creates a prefixed unique ID using NanoID
// Format: prefix-nanoid (e.g., "ann-V1StGXR8_Z5jdHi6B-myT")
//
// Used for annotations and bookmarks, where ordering is carried by the
// owning collection rather than the id itself.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

var (
	monoMu      sync.Mutex
	monoEntropy = ulid.Monotonic(rand.Reader, 0)
)

// NewMonotonic creates a prefixed ULID stamped with t.
// IDs produced within the same millisecond still sort in creation order,
// so books can be ordered by id and an id is never handed out twice.
// Format: prefix-ULID (e.g., "book-01HZX3J8W4Q9V6M2T5R7K0N1PB")
func NewMonotonic(prefix string, t time.Time) (string, error) {
	monoMu.Lock()
	defer monoMu.Unlock()

	u, err := ulid.New(ulid.Timestamp(t), monoEntropy)
	if err != nil {
		return "", fmt.Errorf("generate ulid: %w", err)
	}
	return prefix + "-" + u.String(), nil
}
