// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

func opcodeRipemd160(pop *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(calcRipemd160(so))
	return nil
}

func opcodeSha1(pop *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(calcSha1(so))
	return nil
}

func opcodeSha256(pop *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(calcSha256(so))
	return nil
}

func opcodeHash160(pop *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(calcHash160(so))
	return nil
}

func opcodeHash256(pop *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(calcHash256(so))
	return nil
}

// opcodeCodeSeparator records the post-advance program counter as the
// start of the subscript used by subsequent signature checks.
func opcodeCodeSeparator(pop *parsedOpcode, vm *Engine) error {
	vm.lastCodeSep = vm.scriptOff
	return nil
}

// opcodeCheckSig implements OP_CHECKSIG.
func opcodeCheckSig(pop *parsedOpcode, vm *Engine) error {
	ok, err := vm.checkSig()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(ok)
	return nil
}

// opcodeCheckSigVerify implements OP_CHECKSIGVERIFY.
func opcodeCheckSigVerify(pop *parsedOpcode, vm *Engine) error {
	ok, err := vm.checkSig()
	if err != nil {
		return err
	}
	if !ok {
		return scriptError(ErrCheckSigVerify, "OP_CHECKSIGVERIFY failed")
	}
	return nil
}

// checkSig is the shared body of OP_CHECKSIG/OP_CHECKSIGVERIFY.
func (vm *Engine) checkSig() (bool, error) {
	pubKey, err := vm.dstack.PopByteArray()
	if err != nil {
		return false, err
	}
	sig, err := vm.dstack.PopByteArray()
	if err != nil {
		return false, err
	}

	if vm.sigVersion == SigVersionTaproot || vm.sigVersion == SigVersionTapScript {
		return false, scriptError(ErrTaprootNotImplemented, "taproot signature checking is not implemented")
	}

	subscript := vm.subScript()
	if len(sig) > 0 && vm.sigVersion.removesSignatureFromSubscript() {
		subscript = findAndDelete(subscript, sig)
	}

	if err := vm.checkSignatureEncodingFull(sig); err != nil {
		return false, err
	}
	if err := checkPubKeyEncoding(pubKey, vm.flags); err != nil {
		return false, err
	}

	if len(sig) == 0 {
		return false, nil
	}
	hashType := SigHashType(sig[len(sig)-1])
	sigNoHashType := sig[:len(sig)-1]

	return vm.sigChecker.CheckSignature(sigNoHashType, pubKey, subscript, hashType, vm.sigVersion), nil
}

// checkSignatureEncodingFull checks sig with checkSignatureEncoding under
// the engine's flags and signature version.
func (vm *Engine) checkSignatureEncodingFull(sig []byte) error {
	if err := checkSignatureEncoding(sig, vm.flags, vm.sigVersion); err != nil {
		return err
	}
	return nil
}

// opcodeCheckMultiSig implements OP_CHECKMULTISIG.
func opcodeCheckMultiSig(pop *parsedOpcode, vm *Engine) error {
	ok, err := vm.checkMultiSig()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(ok)
	return nil
}

// opcodeCheckMultiSigVerify implements OP_CHECKMULTISIGVERIFY.
func opcodeCheckMultiSigVerify(pop *parsedOpcode, vm *Engine) error {
	ok, err := vm.checkMultiSig()
	if err != nil {
		return err
	}
	if !ok {
		return scriptError(ErrCheckSigVerify, "OP_CHECKMULTISIGVERIFY failed")
	}
	return nil
}

// checkMultiSig is the shared body of OP_CHECKMULTISIG/VERIFY, following
// the classic (and intentionally preserved) off-by-one dummy-element pop:
// one extra stack item is consumed beyond what the signature and pubkey
// counts require, and its value is checked only under
// ScriptVerifyNullDummy.
func (vm *Engine) checkMultiSig() (bool, error) {
	if vm.sigVersion == SigVersionTaproot || vm.sigVersion == SigVersionTapScript {
		return false, scriptError(ErrTaprootNotImplemented, "taproot multisig checking is not implemented")
	}

	numKeysNum, err := vm.dstack.PopInt()
	if err != nil {
		return false, err
	}
	numKeys := int(numKeysNum)
	if numKeys < 0 || numKeys > MaxPubKeysPerMultiSig {
		return false, scriptError(ErrPubKeyCount, fmt.Sprintf("number of pubkeys %d is invalid", numKeys))
	}
	vm.numOps += numKeys
	if vm.numOps > MaxOpsPerScript {
		return false, scriptError(ErrTooManyOperations, "too many operations in script")
	}

	pubKeys := make([][]byte, numKeys)
	for i := 0; i < numKeys; i++ {
		pk, err := vm.dstack.PopByteArray()
		if err != nil {
			return false, err
		}
		pubKeys[i] = pk
	}

	numSigsNum, err := vm.dstack.PopInt()
	if err != nil {
		return false, err
	}
	numSigs := int(numSigsNum)
	if numSigs < 0 || numSigs > numKeys {
		return false, scriptError(ErrSigCount, fmt.Sprintf("number of signatures %d is invalid", numSigs))
	}

	sigs := make([][]byte, numSigs)
	for i := 0; i < numSigs; i++ {
		sig, err := vm.dstack.PopByteArray()
		if err != nil {
			return false, err
		}
		sigs[i] = sig
	}

	// Legacy off-by-one: one more element is always popped, even when
	// numSigs == 0.
	dummy, err := vm.dstack.PopByteArray()
	if err != nil {
		return false, err
	}
	if vm.flags.hasFlag(ScriptVerifyNullDummy) && len(dummy) != 0 {
		return false, scriptError(ErrSigNullDummy, "multisig dummy argument is not empty")
	}

	subscript := vm.subScript()
	for _, sig := range sigs {
		if len(sig) > 0 && vm.sigVersion.removesSignatureFromSubscript() {
			subscript = findAndDelete(subscript, sig)
		}
	}

	// Greedy pairing: walk signatures against keys in
	// order; a signature may skip keys but the key index only moves
	// forward. Abort as soon as the remaining keys can't possibly cover
	// the remaining signatures.
	success := true
	sigIdx, keyIdx := 0, 0
	for sigIdx < numSigs {
		if numSigs-sigIdx > numKeys-keyIdx {
			success = false
			break
		}

		sig := sigs[sigIdx]
		pubKey := pubKeys[keyIdx]

		if len(sig) > 0 {
			if err := vm.checkSignatureEncodingFull(sig); err != nil {
				return false, err
			}
			if err := checkPubKeyEncoding(pubKey, vm.flags); err != nil {
				return false, err
			}

			hashType := SigHashType(sig[len(sig)-1])
			sigNoHashType := sig[:len(sig)-1]
			if vm.sigChecker.CheckSignature(sigNoHashType, pubKey, subscript, hashType, vm.sigVersion) {
				sigIdx++
			}
		}
		keyIdx++
	}

	return success, nil
}
