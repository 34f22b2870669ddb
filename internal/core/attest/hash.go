package attest

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash derives the identity of a canonical hypothesis string.
func ContentHash(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return "0x" + hex.EncodeToString(sum[:])
}
