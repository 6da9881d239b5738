// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// ScriptFlags is a bitmask of individually togglable consensus/policy
// rules. All flags default off; callers
// opt into each consensus upgrade explicitly.
type ScriptFlags uint32

const (
	// ScriptBip16 defines whether the bip16 threshold has passed and
	// thus pay-to-script-hash transactions will be fully validated.
	ScriptBip16 ScriptFlags = 1 << iota

	// ScriptVerifyStrictEncoding enforces strict DER and pubkey encoding
	// rules for signatures and public keys.
	ScriptVerifyStrictEncoding

	// ScriptVerifyDERSignatures requires the signature to use the
	// strict DER encoding.
	ScriptVerifyDERSignatures

	// ScriptVerifyLowS requires signatures to use the low S value.
	ScriptVerifyLowS

	// ScriptVerifyNullDummy requires the dummy item popped by
	// OP_CHECKMULTISIG to be empty.
	ScriptVerifyNullDummy

	// ScriptVerifySigPushOnly requires scriptSig to contain only push
	// operations.
	ScriptVerifySigPushOnly

	// ScriptVerifyMinimalData requires all pushes to use minimal
	// encoding and numeric operands (including CLTV/CSV operands) to be
	// minimally encoded.
	ScriptVerifyMinimalData

	// ScriptDiscourageUpgradableNops fails OP_NOP1 and OP_NOP4..OP_NOP10
	// so they are reserved for future soft-fork assignment. OP_NOP2 and
	// OP_NOP3 are not rejected by this flag.
	ScriptDiscourageUpgradableNops

	// ScriptVerifyCleanStack requires exactly one item left on the
	// stack after a successful evaluation. Requires ScriptBip16.
	ScriptVerifyCleanStack

	// ScriptVerifyWitness enables segregated witness verification.
	// Requires ScriptBip16.
	ScriptVerifyWitness

	// ScriptVerifyDiscourageUpgradableWitnessProgram fails unknown
	// witness versions/lengths rather than treating them as anyone-can-
	// spend.
	ScriptVerifyDiscourageUpgradableWitnessProgram

	// ScriptVerifyCheckLockTimeVerify enables OP_CHECKLOCKTIMEVERIFY
	// (BIP65).
	ScriptVerifyCheckLockTimeVerify

	// ScriptVerifyCheckSequenceVerify enables OP_CHECKSEQUENCEVERIFY
	// (BIP112).
	ScriptVerifyCheckSequenceVerify

	// ScriptVerifyConcat resurrects OP_CAT (Bitcoin Cash fork opcode).
	ScriptVerifyConcat

	// ScriptVerifySplit resurrects OP_SUBSTR as OP_SPLIT.
	ScriptVerifySplit

	// ScriptVerifyAnd resurrects OP_AND.
	ScriptVerifyAnd

	// ScriptVerifyOr resurrects OP_OR.
	ScriptVerifyOr

	// ScriptVerifyXor resurrects OP_XOR.
	ScriptVerifyXor

	// ScriptVerifyDiv resurrects OP_DIV.
	ScriptVerifyDiv

	// ScriptVerifyMod resurrects OP_MOD.
	ScriptVerifyMod

	// ScriptVerifyBin2num resurrects OP_RIGHT as OP_BIN2NUM.
	ScriptVerifyBin2num

	// ScriptVerifyNum2bin resurrects OP_LEFT as OP_NUM2BIN.
	ScriptVerifyNum2bin

	// ScriptVerifyDiscourageOpSuccess names the tapscript OP_SUCCESSx
	// policy. No opcode is classed as OP_SUCCESSx here, so setting it
	// changes no verification result.
	ScriptVerifyDiscourageOpSuccess

	// ScriptVerifyTaproot enables witness v1 (taproot) program parsing.
	ScriptVerifyTaproot
)

// hasFlag reports whether flag is set in flags.
func (flags ScriptFlags) hasFlag(flag ScriptFlags) bool {
	return flags&flag == flag
}

// assertFlagPreconditions panics (a programming error, not a validation
// failure) if a flag is enabled without the flag it depends on:
// cleanstack and witness both require p2sh.
func assertFlagPreconditions(flags ScriptFlags) {
	if flags.hasFlag(ScriptVerifyCleanStack) && !flags.hasFlag(ScriptBip16) {
		panic("ScriptVerifyCleanStack requires ScriptBip16")
	}
	if flags.hasFlag(ScriptVerifyWitness) && !flags.hasFlag(ScriptBip16) {
		panic("ScriptVerifyWitness requires ScriptBip16")
	}
}

// SignatureVersion selects the sighash algorithm and opcode sub-semantics
// in effect for the script currently executing.
type SignatureVersion int

const (
	// SigVersionBase is the legacy pre-segwit sighash algorithm.
	SigVersionBase SignatureVersion = iota

	// SigVersionWitnessV0 is the BIP143 sighash algorithm used by P2WPKH
	// and P2WSH.
	SigVersionWitnessV0

	// SigVersionForkId is the Bitcoin Cash BIP143-derived sighash
	// algorithm committing to the input amount via the ForkId sighash
	// bit, used without a witness program.
	SigVersionForkId

	// SigVersionTaproot is the BIP341 key-path sighash algorithm.
	SigVersionTaproot

	// SigVersionTapScript is the BIP342 tapscript sighash algorithm.
	SigVersionTapScript
)

// removesSignatureFromSubscript reports whether this signature version
// strips the signature push from the subscript before hashing: true for
// Base/ForkId, a no-op under WitnessV0 and the taproot versions.
func (v SignatureVersion) removesSignatureFromSubscript() bool {
	switch v {
	case SigVersionBase, SigVersionForkId:
		return true
	default:
		return false
	}
}
