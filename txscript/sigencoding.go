// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
)

// halfOrder is used to tame ECDSA malleability (BIP62 low-S).
var halfOrder = new(big.Int).Rsh(btcec.S256().N, 1)

// SigHashType enumerates the sighash byte that trails a DER signature.
type SigHashType uint32

const (
	SigHashOld          SigHashType = 0x0
	SigHashAll          SigHashType = 0x1
	SigHashNone         SigHashType = 0x2
	SigHashSingle       SigHashType = 0x3
	SigHashAnyOneCanPay SigHashType = 0x80

	// SigHashForkID is the Bitcoin Cash ForkId bit.
	SigHashForkID SigHashType = 0x40

	sigHashMask = 0x1f
)

// baseType strips the AnyOneCanPay and ForkId bits, leaving ALL/NONE/SINGLE.
func (t SigHashType) baseType() SigHashType {
	return t & sigHashMask
}

// hasForkID reports whether the ForkId bit is set.
func (t SigHashType) hasForkID() bool {
	return t&SigHashForkID != 0
}

// hasAnyOneCanPay reports whether the AnyOneCanPay bit is set.
func (t SigHashType) hasAnyOneCanPay() bool {
	return t&SigHashAnyOneCanPay != 0
}

// isDefinedSigHashType reports whether t is one of the sighash types this
// signature version recognizes.
func isDefinedSigHashType(version SignatureVersion, t SigHashType) bool {
	base := t.baseType()
	if base < SigHashAll || base > SigHashSingle {
		return false
	}
	if version == SigVersionForkId && !t.hasForkID() {
		return false
	}
	return true
}

// isValidSignatureEncoding reports whether sig (including its trailing
// sighash byte) is strict DER. It does not check the sighash byte itself
// or the low-S condition.
func isValidSignatureEncoding(sig []byte) bool {
	// Format: 0x30 <len> 0x02 <lenR> R 0x02 <lenS> S <sighash-byte>.
	// Including the sighash byte, length must be in [9, 73].
	if len(sig) < 1 {
		return false
	}
	body := sig[:len(sig)-1]

	if len(body) < 8 || len(body) > 72 {
		return false
	}
	if body[0] != 0x30 {
		return false
	}
	if int(body[1]) != len(body)-2 {
		return false
	}

	rLen := int(body[3])
	if 4+rLen >= len(body) {
		return false
	}
	sLenPos := 4 + rLen
	if body[2] != 0x02 {
		return false
	}
	if rLen == 0 {
		return false
	}
	if body[4]&0x80 != 0 {
		return false
	}
	if rLen > 1 && body[4] == 0x00 && body[5]&0x80 == 0 {
		return false
	}
	if body[sLenPos] != 0x02 {
		return false
	}
	if sLenPos+1 >= len(body) {
		return false
	}
	sLen := int(body[sLenPos+1])
	if sLen == 0 {
		return false
	}
	if sLenPos+2+sLen != len(body) {
		return false
	}
	sOff := sLenPos + 2
	if body[sOff]&0x80 != 0 {
		return false
	}
	if sLen > 1 && body[sOff] == 0x00 && body[sOff+1]&0x80 == 0 {
		return false
	}
	return true
}

// isLowDERSignature additionally requires S <= n/2.
func isLowDERSignature(sig []byte) bool {
	if !isValidSignatureEncoding(sig) {
		return false
	}
	body := sig[:len(sig)-1]
	rLen := int(body[3])
	sLenPos := 4 + rLen
	sLen := int(body[sLenPos+1])
	sOff := sLenPos + 2
	sValue := new(big.Int).SetBytes(body[sOff : sOff+sLen])
	return sValue.Cmp(halfOrder) <= 0
}

// checkSignatureEncoding validates sig against the strict-encoding rules
// gated by flags: DER + low-S + sighash type.
func checkSignatureEncoding(sig []byte, flags ScriptFlags, version SignatureVersion) error {
	if len(sig) == 0 {
		return nil
	}
	strict := flags.hasFlag(ScriptVerifyDERSignatures) ||
		flags.hasFlag(ScriptVerifyLowS) ||
		flags.hasFlag(ScriptVerifyStrictEncoding)
	if strict && !isValidSignatureEncoding(sig) {
		return scriptError(ErrSigDER, fmt.Sprintf("signature %x is not strict DER encoded", sig))
	}
	if flags.hasFlag(ScriptVerifyLowS) && !isLowDERSignature(sig) {
		return scriptError(ErrSigHighS, fmt.Sprintf("signature %x has high S value", sig))
	}

	hashType := SigHashType(sig[len(sig)-1])
	if flags.hasFlag(ScriptVerifyStrictEncoding) {
		if !isDefinedSigHashType(version, hashType) {
			return scriptError(ErrSigHashType, fmt.Sprintf("invalid hash type 0x%x", hashType))
		}
		switch version {
		case SigVersionForkId:
			if !hashType.hasForkID() {
				return scriptError(ErrSigMustUseForkID, "signature without ForkId flag under ForkId signature version")
			}
		default:
			if hashType.hasForkID() {
				return scriptError(ErrSigIllegalForkID, "illegal use of ForkId flag outside of ForkId signature version")
			}
		}
	}
	return nil
}

// checkPubKeyEncoding validates pubKey against the strict-encoding rule
// gated by the strictenc flag.
func checkPubKeyEncoding(pubKey []byte, flags ScriptFlags) error {
	if !flags.hasFlag(ScriptVerifyStrictEncoding) {
		return nil
	}
	if len(pubKey) == 33 && (pubKey[0] == 0x02 || pubKey[0] == 0x03) {
		return nil
	}
	if len(pubKey) == 65 && pubKey[0] == 0x04 {
		return nil
	}
	return scriptError(ErrPubKeyType, fmt.Sprintf("unsupported public key type: %x", pubKey))
}

// findAndDelete returns subscript without every push instruction whose
// data equals sig, whichever push opcode encodes it. Matching is per
// parsed instruction: a byte sequence equal to the push of sig that does
// not start at an instruction boundary is not removed.
func findAndDelete(subscript []parsedOpcode, sig []byte) []parsedOpcode {
	if len(sig) == 0 {
		return subscript
	}
	result := make([]parsedOpcode, 0, len(subscript))
	for _, pop := range subscript {
		if pop.opcode.length != 1 && len(pop.data) == len(sig) && bytesEqual(pop.data, sig) {
			continue
		}
		result = append(result, pop)
	}
	return result
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
