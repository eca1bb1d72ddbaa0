package download

import (
	"encoding/hex"
	"hash"
	"strings"
)

type checksum struct {
	hash.Hash
	expected string
}

// verify compares the digest of everything written so far with the
// expected hex string, ignoring case.
func (c *checksum) verify() error {
	actual := hex.EncodeToString(c.Sum(nil))
	if strings.EqualFold(actual, c.expected) {
		return nil
	}

	return &MismatchError{Err: ErrChecksumMismatch, Expected: c.expected, Actual: actual}
}
