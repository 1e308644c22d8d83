// Package util contains internal helpers (fingerprinting, padding).
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

import "strconv"

// Fingerprint returns a short, stable, non-reversible identifier for a
// connection URI, suitable for logs and error messages. Connection URIs
// embed credentials and must never appear verbatim in output; a 64-bit
// FNV-1a hash is enough to correlate log lines per backend without
// leaking the secret.
func Fingerprint(uri string) string {
	return strconv.FormatUint(fnv64a(uri), 16)
}

const (
	fnvOffset64 = 1469598103934665603
	fnvPrime64  = 1099511628211
)

func fnv64a(s string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}
