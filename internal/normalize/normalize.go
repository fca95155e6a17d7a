// Package normalize holds the text cleanup and hashing helpers shared by the
// adapters and the dedup pipeline.
package normalize

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// Text collapses every run of whitespace (spaces, tabs, newlines) into a
// single space and trims the ends. Empty input stays empty.
func Text(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Hash returns the SHA-1 digest of s as a 40-character hex string. It is used
// only as a deterministic dedup key, not for anything security sensitive.
func Hash(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
