package wire

import "testing"

func TestTxHashDeterministic(t *testing.T) {
	tx := &MsgTx{
		Version: 1,
		TxIn: []*TxIn{
			{PreviousOutPoint: OutPoint{Index: 0}, Sequence: MaxTxInSequenceNum},
		},
		TxOut: []*TxOut{{Value: 1000, PkScript: []byte{0x51}}},
	}
	h1 := tx.TxHash()
	h2 := tx.TxHash()
	if !h1.IsEqual(&h2) {
		t.Errorf("TxHash is not deterministic across calls")
	}

	tx.TxOut[0].Value = 2000
	h3 := tx.TxHash()
	if h1.IsEqual(&h3) {
		t.Errorf("changing an output value should change TxHash")
	}
}

func TestHashSetBytesRejectsWrongLength(t *testing.T) {
	var h Hash
	if err := h.SetBytes(make([]byte, 10)); err == nil {
		t.Errorf("expected SetBytes to reject a short byte slice")
	}
	if err := h.SetBytes(make([]byte, HashSize)); err != nil {
		t.Errorf("SetBytes with a correctly sized slice failed: %v", err)
	}
}

func TestDoubleHashH(t *testing.T) {
	a := DoubleHashH([]byte("abc"))
	b := DoubleHashH([]byte("abc"))
	if !a.IsEqual(&b) {
		t.Errorf("DoubleHashH is not deterministic for identical input")
	}
	c := DoubleHashH([]byte("abd"))
	if a.IsEqual(&c) {
		t.Errorf("DoubleHashH should differ for different input")
	}
}
