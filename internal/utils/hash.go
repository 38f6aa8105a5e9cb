package utils

import (
	"crypto/sha256"
	"encoding/base64"
)

// HashDocument computes the SHA-256 hash of a signed document and
// Base64-URL-encodes it. The result is stored alongside the signed PDF
// as a tamper-evidence fingerprint.
func HashDocument(data []byte) string {
	sum := sha256.Sum256(data)
	return base64.URLEncoding.EncodeToString(sum[:])
}

// HashToken hashes an opaque string token the same way.
func HashToken(raw string) string {
	return HashDocument([]byte(raw))
}
