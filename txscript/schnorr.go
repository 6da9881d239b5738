// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"crypto/sha256"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
)

// taggedHash implements the BIP340 tagged-hash construction:
// SHA256(SHA256(tag) || SHA256(tag) || msg).
func taggedHash(tag string, msg []byte) [32]byte {
	tagHash := sha256.Sum256([]byte(tag))
	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	h.Write(msg)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// SchnorrSign is the BIP340 signer a completed taproot implementation
// would use to produce key-path and tapscript signatures. It is not
// called by any verification path in this package; taproot signature
// checking reports ErrTaprootNotImplemented rather than reaching here.
func SchnorrSign(msg, aux, sk [32]byte) (sig [64]byte, err error) {
	curve := btcec.S256()
	n := curve.N

	d, _ := btcec.PrivKeyFromBytes(curve, sk[:])
	dScalar := new(big.Int).Set(d.D)
	if d.PubKey().SerializeCompressed()[0] == 0x03 {
		dScalar.Sub(n, dScalar)
	}

	auxHash := taggedHash("BIP0340/aux", aux[:])
	var maskedKey [32]byte
	dBytes := dScalar.FillBytes(make([]byte, 32))
	for i := range maskedKey {
		maskedKey[i] = dBytes[i] ^ auxHash[i]
	}

	pubKeyX := d.PubKey().SerializeCompressed()[1:]
	nonceInput := append(append(append([]byte{}, maskedKey[:]...), pubKeyX...), msg[:]...)
	nonceHash := taggedHash("BIP0340/nonce", nonceInput)

	kScalar := new(big.Int).Mod(new(big.Int).SetBytes(nonceHash[:]), n)
	rx, ry := curve.ScalarBaseMult(kScalar.Bytes())
	if ry.Bit(0) == 1 {
		kScalar.Sub(n, kScalar)
	}
	rxBytes := rx.FillBytes(make([]byte, 32))

	challengeInput := append(append(append([]byte{}, rxBytes...), pubKeyX...), msg[:]...)
	e := new(big.Int).Mod(new(big.Int).SetBytes(taggedHash("BIP0340/challenge", challengeInput)[:]), n)

	s := new(big.Int).Mod(new(big.Int).Add(kScalar, new(big.Int).Mul(e, dScalar)), n)

	copy(sig[:32], rxBytes)
	copy(sig[32:], s.FillBytes(make([]byte, 32)))
	return sig, nil
}
