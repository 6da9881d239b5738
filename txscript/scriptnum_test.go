package txscript

import (
	"bytes"
	"testing"
)

func TestScriptNumBytes(t *testing.T) {
	tests := []struct {
		num      scriptNum
		expected []byte
	}{
		{0, nil},
		{1, []byte{0x01}},
		{-1, []byte{0x81}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x00}},
		{-128, []byte{0x80, 0x80}},
		{256, []byte{0x00, 0x01}},
		{-256, []byte{0x00, 0x81}},
		{32767, []byte{0xff, 0x7f}},
		{-32767, []byte{0xff, 0xff}},
	}

	for i, test := range tests {
		got := test.num.Bytes()
		if !bytes.Equal(got, test.expected) {
			t.Errorf("test %d: Bytes() = %x, want %x", i, got, test.expected)
		}
	}
}

func TestMakeScriptNumMinimalRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 127, 128, -128, 32767, -32767, 1 << 30}
	for _, v := range values {
		n, err := makeScriptNum(scriptNum(v).Bytes(), true, defaultScriptNumLen)
		if err != nil {
			t.Fatalf("makeScriptNum(%d) returned error: %v", v, err)
		}
		if n.Int64() != v {
			t.Errorf("round trip mismatch: got %d, want %d", n.Int64(), v)
		}
	}
}

func TestMakeScriptNumRejectsNonMinimal(t *testing.T) {
	// 0x00 0x80 decodes to zero but could be represented with an empty
	// slice, so minimal-encoding checks must reject it.
	nonMinimal := []byte{0x00, 0x80}
	if _, err := makeScriptNum(nonMinimal, true, defaultScriptNumLen); err == nil {
		t.Fatalf("expected non-minimal encoding to be rejected")
	}
	if _, err := makeScriptNum(nonMinimal, false, defaultScriptNumLen); err != nil {
		t.Fatalf("non-minimal encoding should be accepted when requireMinimal is false: %v", err)
	}
}

func TestMakeScriptNumRejectsOverflow(t *testing.T) {
	tooLong := make([]byte, defaultScriptNumLen+1)
	tooLong[len(tooLong)-1] = 0x01
	if _, err := makeScriptNum(tooLong, true, defaultScriptNumLen); err == nil {
		t.Fatalf("expected oversized operand to be rejected")
	}
}

func TestScriptNumInt32Saturates(t *testing.T) {
	n := scriptNum(int64(1) << 40)
	if got := n.Int32(); got != 1<<31-1 {
		t.Errorf("Int32() = %d, want clamp to max int32", got)
	}
	n = scriptNum(-(int64(1) << 40))
	if got := n.Int32(); got != -(1 << 31) {
		t.Errorf("Int32() = %d, want clamp to min int32", got)
	}
}
