package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash is the hex SHA-256 of an input file, so two reports can be traced to
// the same participant table.
type Hash string

func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

func (h Hash) String() string { return string(h) }

// Short is the 12 character prefix printed in report headers.
func (h Hash) Short() string {
	const n = 12
	if len(h) <= n {
		return string(h)
	}
	return string(h[:n])
}
