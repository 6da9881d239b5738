// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire defines the minimal transaction-shaped data types the
// txscript signature checker needs to compute a sighash and compare
// locktimes: it is not a full wire protocol implementation.
package wire

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HashSize is the number of bytes in a double-SHA256 digest.
const HashSize = 32

// Hash is a double-SHA256 digest, most commonly a transaction or block id.
type Hash [HashSize]byte

// String returns the Hash as the reversed (big-endian, display order) hex
// string conventional for Bitcoin-family transaction ids.
func (h Hash) String() string {
	for i := 0; i < HashSize/2; i++ {
		h[i], h[HashSize-1-i] = h[HashSize-1-i], h[i]
	}
	return hex.EncodeToString(h[:])
}

// IsEqual reports whether h and target represent the same digest.
func (h *Hash) IsEqual(target *Hash) bool {
	if h == nil && target == nil {
		return true
	}
	if h == nil || target == nil {
		return false
	}
	return *h == *target
}

// SetBytes copies newHash into h unchanged (internal byte order, the
// reverse of String's display order), returning an error if newHash is
// not exactly HashSize bytes.
func (h *Hash) SetBytes(newHash []byte) error {
	if len(newHash) != HashSize {
		return fmt.Errorf("invalid hash length of %d, want %d", len(newHash), HashSize)
	}
	copy(h[:], newHash)
	return nil
}

// DoubleHashH computes hash256(b) (SHA256(SHA256(b))) and returns it as a
// Hash.
func DoubleHashH(b []byte) Hash {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return Hash(second)
}
