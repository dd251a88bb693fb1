package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 digest of data. Stage outputs are keyed
// by these digests, which is what makes the cache content-addressed; the
// full 64-character digest is kept so distinct inputs cannot share a
// key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey derives a namespaced key from its parts. Parts are JSON
// encoded before hashing so structured values key identically across
// processes and backends.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
