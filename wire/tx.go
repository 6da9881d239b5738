// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// MaxTxInSequenceNum is the sequence number that disables absolute
// locktime enforcement for a given input.
const MaxTxInSequenceNum uint32 = 0xffffffff

// SequenceLockTimeDisabled is bit 31 of a relative-locktime sequence
// number: when set, OP_CHECKSEQUENCEVERIFY is a no-op for that input.
const SequenceLockTimeDisabled uint32 = 1 << 31

// SequenceLockTimeIsSeconds is bit 22: when set, the lower 16 bits of the
// sequence number are a 512-second granularity time-based relative lock
// instead of a block-height-based one.
const SequenceLockTimeIsSeconds uint32 = 1 << 22

// SequenceLockTimeMask masks the relative-locktime value out of a
// sequence number.
const SequenceLockTimeMask uint32 = 0x0000ffff

// LockTimeThreshold is the boundary between block-height-based and
// Unix-time-based absolute locktimes.
const LockTimeThreshold = 500000000

// OutPoint identifies a transaction output being spent.
type OutPoint struct {
	Hash  Hash
	Index uint32
}

// NewOutPoint builds an OutPoint from its parts.
func NewOutPoint(hash *Hash, index uint32) *OutPoint {
	return &OutPoint{Hash: *hash, Index: index}
}

// TxIn is one transaction input: a previous output reference, the
// unlocking script, the witness stack (empty for non-segwit inputs), and
// a relative-locktime/RBF sequence number.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Witness          [][]byte
	Sequence         uint32
}

// TxOut is one transaction output: an amount and its encumbrance script.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// MsgTx is the transaction-shaped context a SignatureChecker needs:
// inputs, outputs, version, and an absolute locktime. It is not a
// serialization format; wire framing is out of this module's scope.
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// TxHash returns the hash256 digest of a deterministic legacy-style
// encoding of the transaction. Used only as an identifier in tests; it is
// not consensus serialization.
func (msg *MsgTx) TxHash() Hash {
	return DoubleHashH(msg.legacyBytes())
}

// TxHashPreimage returns the same deterministic encoding TxHash hashes,
// without the trailing sighash-type bytes a legacy signature hash
// preimage appends. It is exported for txscript's signature checker.
func (msg *MsgTx) TxHashPreimage() []byte {
	return msg.legacyBytes()
}

// legacyBytes produces a minimal, deterministic (but non-canonical)
// byte encoding sufficient to derive a stable identifier in tests.
func (msg *MsgTx) legacyBytes() []byte {
	var buf []byte
	putU32 := func(v uint32) {
		buf = append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
	putU64 := func(v uint64) {
		for i := 0; i < 8; i++ {
			buf = append(buf, byte(v>>(8*i)))
		}
	}
	putU32(uint32(msg.Version))
	putU32(uint32(len(msg.TxIn)))
	for _, in := range msg.TxIn {
		buf = append(buf, in.PreviousOutPoint.Hash[:]...)
		putU32(in.PreviousOutPoint.Index)
		putU32(uint32(len(in.SignatureScript)))
		buf = append(buf, in.SignatureScript...)
		putU32(in.Sequence)
	}
	putU32(uint32(len(msg.TxOut)))
	for _, out := range msg.TxOut {
		putU64(uint64(out.Value))
		putU32(uint32(len(out.PkScript)))
		buf = append(buf, out.PkScript...)
	}
	putU32(msg.LockTime)
	return buf
}
