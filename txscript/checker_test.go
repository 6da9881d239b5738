package txscript

import (
	"testing"

	"github.com/lbtc-go/core/wire"
)

func TestCheckLockTimeHeightVsTime(t *testing.T) {
	tx := &wire.MsgTx{
		LockTime: 600000, // a block height, well under LockTimeThreshold
		TxIn:     []*wire.TxIn{{Sequence: 0}},
	}
	checker := &TxSigChecker{Tx: tx, TxIdx: 0}

	if !checker.CheckLockTime(scriptNum(500000)) {
		t.Errorf("a lower block-height locktime should be satisfied")
	}
	if checker.CheckLockTime(scriptNum(700000)) {
		t.Errorf("a higher block-height locktime should not be satisfied")
	}

	// Mixing units (a height requirement against a timestamp txLockTime,
	// or vice versa) must never succeed regardless of magnitude.
	tx.LockTime = uint32(wire.LockTimeThreshold) + 1000
	if checker.CheckLockTime(scriptNum(500000)) {
		t.Errorf("height-unit requirement against a timestamp locktime should fail")
	}
}

func TestCheckLockTimeFinalInputSequence(t *testing.T) {
	tx := &wire.MsgTx{
		LockTime: 600000,
		TxIn:     []*wire.TxIn{{Sequence: wire.MaxTxInSequenceNum}},
	}
	checker := &TxSigChecker{Tx: tx, TxIdx: 0}
	if checker.CheckLockTime(scriptNum(100)) {
		t.Errorf("a final (MaxTxInSequenceNum) input disables locktime checks")
	}
}

func TestCheckSequenceRequiresVersion2(t *testing.T) {
	tx := &wire.MsgTx{
		Version: 1,
		TxIn:    []*wire.TxIn{{Sequence: 5}},
	}
	checker := &TxSigChecker{Tx: tx, TxIdx: 0}
	if checker.CheckSequence(scriptNum(5)) {
		t.Errorf("CheckSequence should require tx.Version >= 2")
	}
}

func TestCheckSequenceDisabledBitShortCircuits(t *testing.T) {
	tx := &wire.MsgTx{
		Version: 2,
		TxIn:    []*wire.TxIn{{Sequence: 5}},
	}
	checker := &TxSigChecker{Tx: tx, TxIdx: 0}
	disabled := scriptNum(wire.SequenceLockTimeDisabled)
	if !checker.CheckSequence(disabled) {
		t.Errorf("a requested sequence with the disable bit set should always be satisfied")
	}
}

func TestCheckSequenceBlockBasedComparison(t *testing.T) {
	tx := &wire.MsgTx{
		Version: 2,
		TxIn:    []*wire.TxIn{{Sequence: 10}},
	}
	checker := &TxSigChecker{Tx: tx, TxIdx: 0}

	if !checker.CheckSequence(scriptNum(5)) {
		t.Errorf("requiring fewer blocks than the input's sequence should be satisfied")
	}
	if checker.CheckSequence(scriptNum(20)) {
		t.Errorf("requiring more blocks than the input's sequence should not be satisfied")
	}
}
