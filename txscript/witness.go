// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// witnessV0PubKeyHashLen and witnessV0ScriptHashLen are the only two
// program lengths segwit v0 defines (P2WPKH and P2WSH respectively).
const (
	witnessV0PubKeyHashLen = 20
	witnessV0ScriptHashLen = 32
	witnessV1TaprootLen    = 32
	taprootAnnexTag        = 0x50
)

// isWitnessProgram reports whether pops is exactly a small-int version
// opcode followed by a single 2-to-40-byte data push, the shape BIP141
// assigns to segwit scriptPubKeys.
func isWitnessProgram(pops []parsedOpcode) bool {
	if len(pops) != 2 {
		return false
	}
	if !isSmallInt(pops[0].opcode.value) {
		return false
	}
	if pops[1].opcode.value > OP_DATA_75 {
		return false
	}
	l := len(pops[1].data)
	return l >= 2 && l <= 40
}

// extractWitnessProgram returns the version and program bytes of a
// witness program previously confirmed by isWitnessProgram.
func extractWitnessProgram(pops []parsedOpcode) (int, []byte) {
	return asSmallInt(pops[0].opcode.value), pops[1].data
}

// isScriptHash reports whether pkScript is OP_HASH160 <20 bytes> OP_EQUAL,
// the BIP16 P2SH pattern.
func isScriptHash(pops []parsedOpcode) bool {
	return len(pops) == 3 &&
		pops[0].opcode.value == OP_HASH160 &&
		pops[1].opcode.value == OP_DATA_20 &&
		pops[2].opcode.value == OP_EQUAL
}

// verifyWitnessProgram dispatches a segwit v0/v1 program to its handler;
// unassigned versions succeed trivially unless upgrades are discouraged.
func verifyWitnessProgram(witness [][]byte, version int, program []byte, flags ScriptFlags, checker SignatureChecker) error {
	switch version {
	case 0:
		return verifyWitnessV0Program(witness, program, flags, checker)
	case 1:
		if len(program) == witnessV1TaprootLen && flags.hasFlag(ScriptVerifyTaproot) {
			return verifyWitnessV1Program(witness, program, flags, checker)
		}
		fallthrough
	default:
		if flags.hasFlag(ScriptVerifyDiscourageUpgradableWitnessProgram) {
			return scriptError(ErrDiscourageUpgradableWitnessProgram, "new witness program versions are reserved for soft-fork upgrades")
		}
		return nil
	}
}

// verifyWitnessV0Program implements BIP141 for the two v0 program shapes:
// P2WPKH (20-byte program, synthesizes the legacy P2PKH script) and
// P2WSH (32-byte program, the last witness element is the script).
func verifyWitnessV0Program(witness [][]byte, program []byte, flags ScriptFlags, checker SignatureChecker) error {
	switch len(program) {
	case witnessV0PubKeyHashLen:
		if len(witness) != 2 {
			return scriptError(ErrWitnessProgramMismatch, "P2WPKH witness must have exactly 2 items")
		}
		if err := checkWitnessElementSizes(witness); err != nil {
			return err
		}
		sig, pubKey := witness[0], witness[1]
		if !bytesEqual(calcHash160(pubKey), program) {
			return scriptError(ErrWitnessProgramMismatch, "witness program hash mismatch")
		}
		pkScript, err := NewScriptBuilder().
			AddOp(OP_DUP).AddOp(OP_HASH160).AddData(program).
			AddOp(OP_EQUALVERIFY).AddOp(OP_CHECKSIG).Script()
		if err != nil {
			return err
		}
		vm, err := NewEngine(pkScript, flags, SigVersionWitnessV0, checker)
		if err != nil {
			return err
		}
		vm.SetStack([][]byte{sig, pubKey})
		if _, err := vm.Execute(); err != nil {
			return err
		}
		return checkWitnessScriptResult(vm)

	case witnessV0ScriptHashLen:
		if len(witness) == 0 {
			return scriptError(ErrWitnessProgramEmpty, "P2WSH witness stack is empty")
		}
		script := witness[len(witness)-1]
		if len(script) > MaxScriptSize {
			return scriptError(ErrScriptSize, "witness script exceeds the maximum allowed size")
		}
		if err := checkWitnessElementSizes(witness[:len(witness)-1]); err != nil {
			return err
		}
		if !bytesEqual(calcSha256(script), program) {
			return scriptError(ErrWitnessProgramMismatch, "witness program hash mismatch")
		}
		vm, err := NewEngine(script, flags, SigVersionWitnessV0, checker)
		if err != nil {
			return err
		}
		vm.SetStack(witness[:len(witness)-1])
		if _, err := vm.Execute(); err != nil {
			return err
		}
		return checkWitnessScriptResult(vm)

	default:
		return scriptError(ErrWitnessProgramWrongLength, "version 0 witness program must be 20 or 32 bytes")
	}
}

// checkWitnessElementSizes rejects any witness stack item (other than the
// witness/redeem script itself, which has its own larger MaxScriptSize
// limit) that exceeds the ordinary push-data element size.
func checkWitnessElementSizes(items [][]byte) error {
	for _, item := range items {
		if len(item) > MaxScriptElementSize {
			return scriptError(ErrElementTooBig, "witness item exceeds the maximum allowed element size")
		}
	}
	return nil
}

// checkWitnessScriptResult reports whether a witness script run left
// exactly one, truthy element on the stack. Unlike CheckErrorCondition's
// cleanStack mode, more than one remaining element is treated the same as
// a falsy result rather than a distinct clean-stack violation.
func checkWitnessScriptResult(vm *Engine) error {
	if vm.dstack.Depth() != 1 {
		return scriptError(ErrEvalFalse, "witness script did not leave exactly one item on the stack")
	}
	return vm.CheckErrorCondition(false)
}

// verifyWitnessV1Program frames a BIP341 taproot spend enough to
// distinguish key-path from script-path spends and strip the optional
// annex, without implementing Schnorr verification or tapscript
// execution (both report ErrTaprootNotImplemented).
//
// The control block is taken from the last remaining witness element and
// the leaf script from the element before it; neither is parsed or
// checked against program. A witness with fewer than 2 elements after
// annex-stripping is classed as a key-path spend. Both paths return
// ErrTaprootNotImplemented.
func verifyWitnessV1Program(witness [][]byte, program []byte, flags ScriptFlags, checker SignatureChecker) error {
	stack := witness
	if len(stack) >= 1 && len(stack[len(stack)-1]) > 0 && stack[len(stack)-1][0] == taprootAnnexTag {
		stack = stack[:len(stack)-1]
	}

	if len(stack) < 2 {
		// Key-path spend: a single 64 or 65 byte Schnorr signature
		// against the output key derived from program.
		return scriptError(ErrTaprootNotImplemented, "taproot key-path verification is not implemented")
	}

	control := stack[len(stack)-1]
	script := stack[len(stack)-2]
	_ = control
	_ = script

	return scriptError(ErrTaprootNotImplemented, "taproot script-path verification is not implemented")
}
