package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey derives a cache key of the form "kind:<sha256 hex>" from the key
// components (a block input hash plus the solver or render options that
// shape the cached value). JSON marshaling keeps the derivation stable
// across processes, which is what lets the CLI and the server share a
// Redis instance.
func hashKey(kind string, parts ...any) string {
	payload, _ := json.Marshal(parts)
	sum := sha256.Sum256(payload)
	return kind + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the sha256 hex digest of data. The pipeline uses it to
// content-address block inputs and solved layouts; the full 64-character
// digest is kept so distinct blocks can never collide in practice.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
