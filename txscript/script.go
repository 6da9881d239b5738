// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// isPushOnly reports whether every instruction in pops is a data push or
// small-integer push, the requirement BIP16 and the witness rules place
// on scriptSig.
func isPushOnly(pops []parsedOpcode) bool {
	for _, pop := range pops {
		if pop.opcode.value > OP_16 {
			return false
		}
	}
	return true
}

// VerifyScript runs the full envelope around eval_script: scriptSig,
// then scriptPubKey, with BIP16 pay-to-script-hash unwrapping and BIP141
// segregated witness dispatch layered on top, exactly as a transaction
// input's two-script (or three-script, under P2SH) validation works.
func VerifyScript(scriptSig, scriptPubKey []byte, witness [][]byte, flags ScriptFlags, sigVersion SignatureVersion, checker SignatureChecker) error {
	sigPops, err := parseScript(scriptSig)
	if err != nil {
		return err
	}
	if flags.hasFlag(ScriptVerifySigPushOnly) && !isPushOnly(sigPops) {
		return scriptError(ErrSigPushOnly, "signature script is not push only")
	}

	pkPops, err := parseScript(scriptPubKey)
	if err != nil {
		return err
	}
	isP2SH := flags.hasFlag(ScriptBip16) && isScriptHash(pkPops)
	if isP2SH && !isPushOnly(sigPops) {
		return scriptError(ErrSigPushOnly, "signature script for pay-to-script-hash is not push only")
	}

	sigVM, err := NewEngine(scriptSig, flags, sigVersion, checker)
	if err != nil {
		return err
	}
	if _, err := sigVM.Execute(); err != nil {
		return err
	}
	stackAfterSig := sigVM.GetStack()

	pkVM, err := NewEngine(scriptPubKey, flags, sigVersion, checker)
	if err != nil {
		return err
	}
	pkVM.SetStack(stackAfterSig)
	if _, err := pkVM.Execute(); err != nil {
		return err
	}
	if err := pkVM.CheckErrorCondition(false); err != nil {
		return err
	}

	witnessProgramFound := false
	finalStackSize := pkVM.dstack.Depth()

	switch {
	case flags.hasFlag(ScriptVerifyWitness) && isWitnessProgram(pkPops):
		if len(scriptSig) != 0 {
			return scriptError(ErrWitnessMalleated, "signature script for witness program must be empty")
		}
		witnessProgramFound = true
		version, program := extractWitnessProgram(pkPops)
		if err := verifyWitnessProgram(witness, version, program, flags, checker); err != nil {
			return err
		}
		finalStackSize = 1

	case isP2SH:
		redeemScript := stackAfterSig[len(stackAfterSig)-1]
		redeemStack := append([][]byte{}, stackAfterSig[:len(stackAfterSig)-1]...)

		redeemPops, err := parseScript(redeemScript)
		if err != nil {
			return err
		}

		if flags.hasFlag(ScriptVerifyWitness) && isWitnessProgram(redeemPops) {
			expected, err := NewScriptBuilder().AddData(redeemScript).Script()
			if err != nil {
				return err
			}
			if !bytesEqual(scriptSig, expected) {
				return scriptError(ErrWitnessMalleatedP2SH, "signature script for witness program nested in pay-to-script-hash must be a single push of the redeem script")
			}
			witnessProgramFound = true
			version, program := extractWitnessProgram(redeemPops)
			if err := verifyWitnessProgram(witness, version, program, flags, checker); err != nil {
				return err
			}
			finalStackSize = 1
			break
		}

		redeemVM, err := NewEngine(redeemScript, flags, sigVersion, checker)
		if err != nil {
			return err
		}
		redeemVM.SetStack(redeemStack)
		if _, err := redeemVM.Execute(); err != nil {
			return err
		}
		if err := redeemVM.CheckErrorCondition(false); err != nil {
			return err
		}
		finalStackSize = redeemVM.dstack.Depth()
	}

	if flags.hasFlag(ScriptVerifyWitness) && len(witness) != 0 && !witnessProgramFound {
		return scriptError(ErrWitnessUnexpected, "unexpected witness data")
	}

	if flags.hasFlag(ScriptVerifyCleanStack) && finalStackSize != 1 {
		return scriptError(ErrCleanStack, "stack contains additional unexpected items")
	}

	return nil
}
