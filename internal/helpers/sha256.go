package helpers

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256 returns the hex digest of the input string.
func SHA256(input string) string {
	return SHA256Bytes([]byte(input))
}

// SHA256Bytes returns the hex digest of the input bytes.
func SHA256Bytes(input []byte) string {
	hash := sha256.Sum256(input)
	return hex.EncodeToString(hash[:])
}

// ShortID returns the first eight hex characters of the SHA256 digest of source.
// Compiled helpers use it as a stable identifier in log records.
func ShortID(source string) string {
	return SHA256(source)[:8]
}
