package txscript

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/lbtc-go/core/wire"
)

func TestOpcodeHashFunctions(t *testing.T) {
	data := []byte("abc")

	vm := &Engine{}
	vm.dstack.PushByteArray(data)
	if err := opcodeSha256(nil, vm); err != nil {
		t.Fatalf("opcodeSha256 returned error: %v", err)
	}
	got, _ := vm.dstack.PopByteArray()
	if !bytes.Equal(got, calcSha256(data)) {
		t.Errorf("opcodeSha256 mismatch")
	}

	vm2 := &Engine{}
	vm2.dstack.PushByteArray(data)
	if err := opcodeHash160(nil, vm2); err != nil {
		t.Fatalf("opcodeHash160 returned error: %v", err)
	}
	got2, _ := vm2.dstack.PopByteArray()
	if !bytes.Equal(got2, calcHash160(data)) {
		t.Errorf("opcodeHash160 mismatch")
	}

	vm3 := &Engine{}
	vm3.dstack.PushByteArray(data)
	if err := opcodeHash256(nil, vm3); err != nil {
		t.Fatalf("opcodeHash256 returned error: %v", err)
	}
	got3, _ := vm3.dstack.PopByteArray()
	if !bytes.Equal(got3, calcHash256(data)) {
		t.Errorf("opcodeHash256 mismatch")
	}

	vm4 := &Engine{}
	vm4.dstack.PushByteArray(data)
	if err := opcodeRipemd160(nil, vm4); err != nil {
		t.Fatalf("opcodeRipemd160 returned error: %v", err)
	}
	got4, _ := vm4.dstack.PopByteArray()
	if !bytes.Equal(got4, calcRipemd160(data)) {
		t.Errorf("opcodeRipemd160 mismatch")
	}
}

// newTestCheckSigVM builds a single-input, single-output legacy (Base
// sighash) transaction spending pkScript, and an Engine positioned to
// run opcodeCheckSig/opcodeCheckMultiSig against it with script set to
// pkScript itself (so subScript() returns the whole thing).
func newTestCheckSigVM(t *testing.T, pkScript []byte) *Engine {
	t.Helper()
	tx := &wire.MsgTx{
		Version: 1,
		TxIn: []*wire.TxIn{
			{
				PreviousOutPoint: wire.OutPoint{Index: 0},
				Sequence:         wire.MaxTxInSequenceNum,
			},
		},
		TxOut: []*wire.TxOut{
			{Value: 1000, PkScript: []byte{OP_TRUE}},
		},
	}

	pops, err := parseScript(pkScript)
	if err != nil {
		t.Fatalf("parseScript failed: %v", err)
	}

	return &Engine{
		script:     pops,
		sigVersion: SigVersionBase,
		sigChecker: &TxSigChecker{Tx: tx, TxIdx: 0},
	}
}

func signLegacy(t *testing.T, priv *btcec.PrivateKey, checker *TxSigChecker, subscript []parsedOpcode, hashType SigHashType) []byte {
	t.Helper()
	digest, err := checker.calcSignatureHash(subscript, hashType, SigVersionBase)
	if err != nil {
		t.Fatalf("calcSignatureHash failed: %v", err)
	}
	sig, err := priv.Sign(digest)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	return append(sig.Serialize(), byte(hashType))
}

func TestCheckSigValidAndInvalid(t *testing.T) {
	priv, pub := btcec.PrivKeyFromBytes(btcec.S256(), bytes.Repeat([]byte{0x05}, 32))
	pubKey := pub.SerializeCompressed()

	pkScript, err := NewScriptBuilder().AddData(pubKey).AddOp(OP_CHECKSIG).Script()
	if err != nil {
		t.Fatalf("building script failed: %v", err)
	}

	vm := newTestCheckSigVM(t, pkScript)
	checker := vm.sigChecker.(*TxSigChecker)
	sig := signLegacy(t, priv, checker, vm.subScript(), SigHashAll)

	vm.dstack.PushByteArray(sig)
	vm.dstack.PushByteArray(pubKey)
	ok, err := vm.checkSig()
	if err != nil {
		t.Fatalf("checkSig returned error: %v", err)
	}
	if !ok {
		t.Errorf("checkSig on a correctly-signed script returned false")
	}

	// Flip a byte in the signature; verification must fail cleanly, not
	// error.
	vm2 := newTestCheckSigVM(t, pkScript)
	badSig := append([]byte{}, sig...)
	badSig[5] ^= 0xff
	vm2.dstack.PushByteArray(badSig)
	vm2.dstack.PushByteArray(pubKey)
	ok2, err := vm2.checkSig()
	if err != nil {
		t.Fatalf("checkSig on a tampered signature returned error: %v", err)
	}
	if ok2 {
		t.Errorf("checkSig on a tampered signature should not succeed")
	}
}

func TestCheckMultiSigTwoOfThree(t *testing.T) {
	priv1, pub1 := btcec.PrivKeyFromBytes(btcec.S256(), bytes.Repeat([]byte{0x01}, 32))
	priv2, pub2 := btcec.PrivKeyFromBytes(btcec.S256(), bytes.Repeat([]byte{0x02}, 32))
	_, pub3 := btcec.PrivKeyFromBytes(btcec.S256(), bytes.Repeat([]byte{0x03}, 32))

	pk1 := pub1.SerializeCompressed()
	pk2 := pub2.SerializeCompressed()
	pk3 := pub3.SerializeCompressed()

	pkScript, err := NewScriptBuilder().
		AddOp(OP_2).
		AddData(pk1).AddData(pk2).AddData(pk3).
		AddOp(OP_3).
		AddOp(OP_CHECKMULTISIG).
		Script()
	if err != nil {
		t.Fatalf("building script failed: %v", err)
	}

	vm := newTestCheckSigVM(t, pkScript)
	checker := vm.sigChecker.(*TxSigChecker)
	sig1 := signLegacy(t, priv1, checker, vm.subScript(), SigHashAll)
	sig2 := signLegacy(t, priv2, checker, vm.subScript(), SigHashAll)

	// Legacy CHECKMULTISIG dummy element, then sigs in the same relative
	// order as their pubkeys (sig1 before sig2), then the sig/key counts.
	vm.dstack.PushByteArray(nil)
	vm.dstack.PushByteArray(sig1)
	vm.dstack.PushByteArray(sig2)
	vm.dstack.PushInt(scriptNum(2))
	vm.dstack.PushByteArray(pk1)
	vm.dstack.PushByteArray(pk2)
	vm.dstack.PushByteArray(pk3)
	vm.dstack.PushInt(scriptNum(3))

	ok, err := vm.checkMultiSig()
	if err != nil {
		t.Fatalf("checkMultiSig returned error: %v", err)
	}
	if !ok {
		t.Errorf("2-of-3 checkMultiSig with valid sigs in order returned false")
	}
}

func TestCheckMultiSigWrongOrderFails(t *testing.T) {
	priv1, pub1 := btcec.PrivKeyFromBytes(btcec.S256(), bytes.Repeat([]byte{0x01}, 32))
	priv2, pub2 := btcec.PrivKeyFromBytes(btcec.S256(), bytes.Repeat([]byte{0x02}, 32))

	pk1 := pub1.SerializeCompressed()
	pk2 := pub2.SerializeCompressed()

	pkScript, err := NewScriptBuilder().
		AddOp(OP_2).
		AddData(pk1).AddData(pk2).
		AddOp(OP_2).
		AddOp(OP_CHECKMULTISIG).
		Script()
	if err != nil {
		t.Fatalf("building script failed: %v", err)
	}

	vm := newTestCheckSigVM(t, pkScript)
	checker := vm.sigChecker.(*TxSigChecker)
	sig1 := signLegacy(t, priv1, checker, vm.subScript(), SigHashAll)
	sig2 := signLegacy(t, priv2, checker, vm.subScript(), SigHashAll)

	// Signatures pushed in reverse (key-1's sig popped first against
	// key-2) must fail: the greedy pairing only advances forward.
	vm.dstack.PushByteArray(nil)
	vm.dstack.PushByteArray(sig2)
	vm.dstack.PushByteArray(sig1)
	vm.dstack.PushInt(scriptNum(2))
	vm.dstack.PushByteArray(pk1)
	vm.dstack.PushByteArray(pk2)
	vm.dstack.PushInt(scriptNum(2))

	ok, err := vm.checkMultiSig()
	if err != nil {
		t.Fatalf("checkMultiSig returned error: %v", err)
	}
	if ok {
		t.Errorf("out-of-order signatures should not satisfy checkMultiSig")
	}
}
