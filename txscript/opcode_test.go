package txscript

import (
	"bytes"
	"testing"
)

func TestParseUnparseScriptRoundTrip(t *testing.T) {
	script, err := NewScriptBuilder().
		AddOp(OP_DUP).
		AddOp(OP_HASH160).
		AddData(bytes.Repeat([]byte{0xab}, 20)).
		AddOp(OP_EQUALVERIFY).
		AddOp(OP_CHECKSIG).
		Script()
	if err != nil {
		t.Fatalf("building script failed: %v", err)
	}

	pops, err := parseScript(script)
	if err != nil {
		t.Fatalf("parseScript failed: %v", err)
	}
	if len(pops) != 5 {
		t.Fatalf("parsed %d opcodes, want 5", len(pops))
	}

	reencoded, err := unparseScript(pops)
	if err != nil {
		t.Fatalf("unparseScript failed: %v", err)
	}
	if !bytes.Equal(reencoded, script) {
		t.Errorf("round trip mismatch:\ngot  %x\nwant %x", reencoded, script)
	}
}

func TestParseScriptTruncatedPushFails(t *testing.T) {
	// OP_DATA_5 claims 5 bytes of data but only 2 follow.
	script := []byte{OP_DATA_5, 0x01, 0x02}
	if _, err := parseScript(script); err == nil {
		t.Fatalf("expected truncated push to fail parsing")
	}
}

func TestIsSmallIntAndAsSmallInt(t *testing.T) {
	if !isSmallInt(OP_0) || !isSmallInt(OP_16) || !isSmallInt(OP_1) {
		t.Fatalf("isSmallInt false negative on small-int opcodes")
	}
	if isSmallInt(OP_DUP) {
		t.Fatalf("isSmallInt false positive on OP_DUP")
	}
	if asSmallInt(OP_1) != 1 || asSmallInt(OP_16) != 16 || asSmallInt(OP_0) != 0 {
		t.Fatalf("asSmallInt decoding mismatch")
	}
}

func TestCheckMinimalDataPush(t *testing.T) {
	tests := []struct {
		name  string
		pop   parsedOpcode
		valid bool
	}{
		{
			name:  "single byte value 5 via OP_DATA_1",
			pop:   parsedOpcode{opcode: &opcodeArray[OP_DATA_1], data: []byte{5}},
			valid: false, // should have used OP_5
		},
		{
			name:  "value 5 via OP_5",
			pop:   parsedOpcode{opcode: &opcodeArray[OP_5], data: []byte{5}},
			valid: true,
		},
		{
			name:  "empty push via OP_0",
			pop:   parsedOpcode{opcode: &opcodeArray[OP_0], data: nil},
			valid: true,
		},
		{
			name:  "-1 via OP_1NEGATE",
			pop:   parsedOpcode{opcode: &opcodeArray[OP_1NEGATE], data: []byte{0x81}},
			valid: true,
		},
		{
			name:  "20 bytes via direct push",
			pop:   parsedOpcode{opcode: &opcodeArray[OP_DATA_20], data: bytes.Repeat([]byte{0x11}, 20)},
			valid: true,
		},
	}

	for _, test := range tests {
		err := test.pop.checkMinimalDataPush()
		if test.valid && err != nil {
			t.Errorf("%s: expected valid, got error: %v", test.name, err)
		}
		if !test.valid && err == nil {
			t.Errorf("%s: expected an error, got none", test.name)
		}
	}
}

func TestIsDisabledGatedByFlags(t *testing.T) {
	cat := parsedOpcode{opcode: &opcodeArray[OP_CAT]}
	if !cat.isDisabled(0) {
		t.Errorf("OP_CAT should be disabled with no flags set")
	}
	if cat.isDisabled(ScriptVerifyConcat) {
		t.Errorf("OP_CAT should not be disabled when ScriptVerifyConcat is set")
	}

	invert := parsedOpcode{opcode: &opcodeArray[OP_INVERT]}
	if !invert.isDisabled(ScriptVerifyConcat | ScriptVerifySplit | ScriptVerifyAnd | ScriptVerifyOr | ScriptVerifyXor) {
		t.Errorf("OP_INVERT has no resurrection flag and must always be disabled")
	}
}
