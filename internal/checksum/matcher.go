// Package checksum fingerprints uploaded files so a run can be traced back to
// the exact bytes it was computed from.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// Sum returns the hex sha256 of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Matcher verifies a file against a fingerprint recorded by an earlier run.
type Matcher struct {
	expected string
}

func NewMatcher(expected string) *Matcher {
	return &Matcher{expected: strings.ToLower(strings.TrimSpace(expected))}
}

// Match reports whether data hashes to the expected fingerprint.
func (m *Matcher) Match(data []byte) (bool, error) {
	if m.expected == "" {
		return false, errors.New("expected checksum is not set")
	}
	return Sum(data) == m.expected, nil
}
