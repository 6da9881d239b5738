// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/btcsuite/btcd/btcec"
	"github.com/lbtc-go/core/wire"
)

// SignatureChecker is the polymorphic oracle the evaluator delegates
// transaction-context checks to. It has no memoization and
// must be safe for the concurrency model the caller chooses.
type SignatureChecker interface {
	// CheckSignature reconstructs the sighash digest for subscript under
	// version and verifies sig (without its trailing hashtype byte)
	// against pubkey.
	CheckSignature(sig, pubkey []byte, subscript []parsedOpcode, hashType SigHashType, version SignatureVersion) bool

	// VerifySignature verifies sig against pubkey over an
	// already-computed message digest, bypassing sighash reconstruction.
	VerifySignature(sig, pubkey, message []byte) bool

	// CheckLockTime reports whether the spending context satisfies the
	// absolute locktime lockTime (BIP65).
	CheckLockTime(lockTime scriptNum) bool

	// CheckSequence reports whether the spending context satisfies the
	// relative locktime sequence (BIP112).
	CheckSequence(sequence scriptNum) bool
}

// TxSigChecker is the reference SignatureChecker implementation, checking
// signatures against a concrete transaction input. It
// plays the role Engine.tx/Engine.sigCache coupling played,
// pulled out behind the interface this package defines.
type TxSigChecker struct {
	Tx          *wire.MsgTx
	TxIdx       int
	InputAmount int64
}

// CheckSignature implements SignatureChecker.
func (c *TxSigChecker) CheckSignature(sig, pubkey []byte, subscript []parsedOpcode, hashType SigHashType, version SignatureVersion) bool {
	pubKey, err := btcec.ParsePubKey(pubkey, btcec.S256())
	if err != nil {
		return false
	}

	signature, err := btcec.ParseDERSignature(sig, btcec.S256())
	if err != nil {
		return false
	}

	sigHash, err := c.calcSignatureHash(subscript, hashType, version)
	if err != nil {
		return false
	}

	return signature.Verify(sigHash, pubKey)
}

// VerifySignature implements SignatureChecker.
func (c *TxSigChecker) VerifySignature(sig, pubkey, message []byte) bool {
	pubKey, err := btcec.ParsePubKey(pubkey, btcec.S256())
	if err != nil {
		return false
	}
	signature, err := btcec.ParseDERSignature(sig, btcec.S256())
	if err != nil {
		return false
	}
	return signature.Verify(message, pubKey)
}

// CheckLockTime implements SignatureChecker: BIP65 comparison between the
// requested lockTime and the transaction's own LockTime, both interpreted
// consistently as either a block height or a Unix timestamp.
func (c *TxSigChecker) CheckLockTime(lockTime scriptNum) bool {
	txLockTime := int64(c.Tx.LockTime)
	lt := lockTime.Int64()

	if !((txLockTime < wire.LockTimeThreshold && lt < wire.LockTimeThreshold) ||
		(txLockTime >= wire.LockTimeThreshold && lt >= wire.LockTimeThreshold)) {
		return false
	}
	if lt > txLockTime {
		return false
	}
	if c.Tx.TxIn[c.TxIdx].Sequence == wire.MaxTxInSequenceNum {
		return false
	}
	return true
}

// CheckSequence implements SignatureChecker: BIP112 comparison between the
// requested relative-locktime sequence and the spending input's Sequence.
func (c *TxSigChecker) CheckSequence(sequence scriptNum) bool {
	if c.Tx.Version < 2 {
		return false
	}
	txSequence := c.Tx.TxIn[c.TxIdx].Sequence
	if txSequence&wire.SequenceLockTimeDisabled != 0 {
		return false
	}

	seq := uint32(sequence.Int64())
	if seq&wire.SequenceLockTimeDisabled != 0 {
		return true
	}

	lockTimeMask := wire.SequenceLockTimeIsSeconds | wire.SequenceLockTimeMask
	if seq&lockTimeMask != txSequence&lockTimeMask &
		(wire.SequenceLockTimeIsSeconds | wire.SequenceLockTimeMask) {
		// fall through to magnitude comparison below with like units only
	}
	if (seq&wire.SequenceLockTimeIsSeconds != 0) != (txSequence&wire.SequenceLockTimeIsSeconds != 0) {
		return false
	}
	return seq&wire.SequenceLockTimeMask <= txSequence&wire.SequenceLockTimeMask
}

// calcSignatureHash computes the sighash digest for the given subscript
// under the requested SignatureVersion. Base uses a simplified
// legacy-style preimage over the re-encoded transaction; WitnessV0 and
// ForkId use the BIP143 preimage structure. Taproot/TapScript are rejected by the
// caller before reaching here.
func (c *TxSigChecker) calcSignatureHash(subscript []parsedOpcode, hashType SigHashType, version SignatureVersion) ([]byte, error) {
	script, err := unparseScript(subscript)
	if err != nil {
		return nil, err
	}

	switch version {
	case SigVersionWitnessV0, SigVersionForkId:
		return c.calcWitnessSignatureHash(script, hashType), nil
	default:
		return c.calcLegacySignatureHash(script, hashType), nil
	}
}

// calcLegacySignatureHash implements the pre-segwit sighash algorithm:
// blank out all other inputs' scripts, apply SIGHASH_NONE/SINGLE/
// ANYONECANPAY output pruning, substitute subscript for the spent input's
// script, then hash256 the serialization plus a little-endian hash type.
func (c *TxSigChecker) calcLegacySignatureHash(subscript []byte, hashType SigHashType) []byte {
	txCopy := shallowCopyTx(c.Tx)

	for i := range txCopy.TxIn {
		if i == c.TxIdx {
			txCopy.TxIn[i].SignatureScript = subscript
		} else {
			txCopy.TxIn[i].SignatureScript = nil
		}
	}

	switch hashType.baseType() {
	case SigHashNone:
		txCopy.TxOut = nil
		for i := range txCopy.TxIn {
			if i != c.TxIdx {
				txCopy.TxIn[i].Sequence = 0
			}
		}
	case SigHashSingle:
		if c.TxIdx < len(txCopy.TxOut) {
			txCopy.TxOut = txCopy.TxOut[:c.TxIdx+1]
			for i := 0; i < c.TxIdx; i++ {
				txCopy.TxOut[i] = &wire.TxOut{Value: -1}
			}
		}
		for i := range txCopy.TxIn {
			if i != c.TxIdx {
				txCopy.TxIn[i].Sequence = 0
			}
		}
	}

	if hashType.hasAnyOneCanPay() {
		txCopy.TxIn = []*wire.TxIn{txCopy.TxIn[c.TxIdx]}
	}

	buf := txCopy.TxHashPreimage()
	buf = append(buf, byte(hashType), byte(hashType>>8), byte(hashType>>16), byte(hashType>>24))
	return calcHash256(buf)
}

// calcWitnessSignatureHash implements the BIP143 sighash algorithm shared
// by WitnessV0 and the ForkId sighash version, committing to the input's
// amount so it cannot be moved to a different input undetected.
func (c *TxSigChecker) calcWitnessSignatureHash(subscript []byte, hashType SigHashType) []byte {
	in := c.Tx.TxIn[c.TxIdx]

	var hashPrevouts, hashSequence, hashOutputs []byte

	if !hashType.hasAnyOneCanPay() {
		var buf []byte
		for _, ti := range c.Tx.TxIn {
			buf = append(buf, ti.PreviousOutPoint.Hash[:]...)
			buf = appendUint32LE(buf, ti.PreviousOutPoint.Index)
		}
		h := calcHash256(buf)
		hashPrevouts = h
	} else {
		hashPrevouts = make([]byte, 32)
	}

	if !hashType.hasAnyOneCanPay() && hashType.baseType() != SigHashSingle && hashType.baseType() != SigHashNone {
		var buf []byte
		for _, ti := range c.Tx.TxIn {
			buf = appendUint32LE(buf, ti.Sequence)
		}
		hashSequence = calcHash256(buf)
	} else {
		hashSequence = make([]byte, 32)
	}

	if hashType.baseType() != SigHashSingle && hashType.baseType() != SigHashNone {
		var buf []byte
		for _, to := range c.Tx.TxOut {
			buf = appendUint64LE(buf, uint64(to.Value))
			buf = appendUint32LE(buf, uint32(len(to.PkScript)))
			buf = append(buf, to.PkScript...)
		}
		hashOutputs = calcHash256(buf)
	} else if hashType.baseType() == SigHashSingle && c.TxIdx < len(c.Tx.TxOut) {
		to := c.Tx.TxOut[c.TxIdx]
		var buf []byte
		buf = appendUint64LE(buf, uint64(to.Value))
		buf = appendUint32LE(buf, uint32(len(to.PkScript)))
		buf = append(buf, to.PkScript...)
		hashOutputs = calcHash256(buf)
	} else {
		hashOutputs = make([]byte, 32)
	}

	var buf []byte
	buf = appendUint32LE(buf, uint32(c.Tx.Version))
	buf = append(buf, hashPrevouts...)
	buf = append(buf, hashSequence...)
	buf = append(buf, in.PreviousOutPoint.Hash[:]...)
	buf = appendUint32LE(buf, in.PreviousOutPoint.Index)
	buf = appendUint32LE(buf, uint32(len(subscript)))
	buf = append(buf, subscript...)
	buf = appendUint64LE(buf, uint64(c.InputAmount))
	buf = appendUint32LE(buf, in.Sequence)
	buf = append(buf, hashOutputs...)
	buf = appendUint32LE(buf, c.Tx.LockTime)
	buf = appendUint32LE(buf, uint32(hashType))

	return calcHash256(buf)
}

func appendUint32LE(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendUint64LE(buf []byte, v uint64) []byte {
	for i := 0; i < 8; i++ {
		buf = append(buf, byte(v>>(8*i)))
	}
	return buf
}

// shallowCopyTx copies just enough of tx for calcLegacySignatureHash to
// mutate without disturbing the caller's transaction.
func shallowCopyTx(tx *wire.MsgTx) *wire.MsgTx {
	txCopy := &wire.MsgTx{
		Version:  tx.Version,
		LockTime: tx.LockTime,
	}
	txCopy.TxIn = make([]*wire.TxIn, len(tx.TxIn))
	for i, in := range tx.TxIn {
		inCopy := *in
		txCopy.TxIn[i] = &inCopy
	}
	txCopy.TxOut = make([]*wire.TxOut, len(tx.TxOut))
	for i, out := range tx.TxOut {
		outCopy := *out
		txCopy.TxOut[i] = &outCopy
	}
	return txCopy
}
