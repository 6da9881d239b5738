// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"crypto/sha1"
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// calcSha1 returns the SHA1 digest of b.
func calcSha1(b []byte) []byte {
	h := sha1.Sum(b)
	return h[:]
}

// calcSha256 returns the single SHA256 digest of b.
func calcSha256(b []byte) []byte {
	h := sha256.Sum256(b)
	return h[:]
}

// calcRipemd160 returns the RIPEMD160 digest of b.
func calcRipemd160(b []byte) []byte {
	h := ripemd160.New()
	h.Write(b)
	return h.Sum(nil)
}

// calcHash160 returns RIPEMD160(SHA256(b)), the digest used for P2PKH/P2SH/
// P2WPKH addressing.
func calcHash160(b []byte) []byte {
	return calcRipemd160(calcSha256(b))
}

// calcHash256 returns SHA256(SHA256(b)), the digest used throughout the
// legacy and BIP143 sighash algorithms.
func calcHash256(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}
