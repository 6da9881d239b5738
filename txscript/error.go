// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

// ErrorCode identifies a kind of script error.
type ErrorCode int

const (
	// Structural errors.
	ErrScriptSize ErrorCode = iota
	ErrElementTooBig
	ErrStackSize
	ErrTooManyOperations
	ErrBadOpcode
	ErrDisabledOpcode
	ErrUnbalancedConditional

	// Stack errors.
	ErrInvalidStackOperation
	ErrInvalidAltStackOperation
	ErrInvalidSplitRange
	ErrInvalidOperandSize

	// Numeric errors.
	ErrNumberTooBig
	ErrNegativeLockTime
	ErrUnsatisfiedLockTime
	ErrDivideByZero
	ErrImpossibleEncoding
	ErrMinimalData

	// Result errors.
	ErrEvalFalse
	ErrScriptFailed
	ErrVerify
	ErrEqualVerify
	ErrNumEqualVerify
	ErrCheckSigVerify
	ErrReturn

	// Signature errors.
	ErrSigDER
	ErrSigHighS
	ErrSigHashType
	ErrSigNullDummy
	ErrSigIllegalForkID
	ErrSigMustUseForkID
	ErrSigPushOnly

	// Pubkey errors.
	ErrPubKeyType
	ErrPubKeyCount
	ErrSigCount

	// Policy errors.
	ErrDiscourageUpgradableNOPs
	ErrDiscourageUpgradableWitnessProgram
	ErrDiscourageUpgradableOpSuccess

	// Witness / P2SH errors.
	ErrWitnessMalleated
	ErrWitnessMalleatedP2SH
	ErrWitnessProgramMismatch
	ErrWitnessProgramWrongLength
	ErrWitnessProgramEmpty
	ErrWitnessUnexpected
	ErrCleanStack

	// Taproot verification is deliberately not implemented.
	ErrTaprootNotImplemented
)

var errorCodeStrings = map[ErrorCode]string{
	ErrScriptSize:                         "ErrScriptSize",
	ErrElementTooBig:                      "ErrElementTooBig",
	ErrStackSize:                          "ErrStackSize",
	ErrTooManyOperations:                  "ErrTooManyOperations",
	ErrBadOpcode:                          "ErrBadOpcode",
	ErrDisabledOpcode:                     "ErrDisabledOpcode",
	ErrUnbalancedConditional:              "ErrUnbalancedConditional",
	ErrInvalidStackOperation:              "ErrInvalidStackOperation",
	ErrInvalidAltStackOperation:           "ErrInvalidAltStackOperation",
	ErrInvalidSplitRange:                  "ErrInvalidSplitRange",
	ErrInvalidOperandSize:                 "ErrInvalidOperandSize",
	ErrNumberTooBig:                       "ErrNumberTooBig",
	ErrNegativeLockTime:                   "ErrNegativeLockTime",
	ErrUnsatisfiedLockTime:                "ErrUnsatisfiedLockTime",
	ErrDivideByZero:                       "ErrDivideByZero",
	ErrImpossibleEncoding:                 "ErrImpossibleEncoding",
	ErrMinimalData:                        "ErrMinimalData",
	ErrEvalFalse:                          "ErrEvalFalse",
	ErrScriptFailed:                       "ErrScriptFailed",
	ErrVerify:                             "ErrVerify",
	ErrEqualVerify:                        "ErrEqualVerify",
	ErrNumEqualVerify:                     "ErrNumEqualVerify",
	ErrCheckSigVerify:                     "ErrCheckSigVerify",
	ErrReturn:                             "ErrReturn",
	ErrSigDER:                             "ErrSigDER",
	ErrSigHighS:                           "ErrSigHighS",
	ErrSigHashType:                        "ErrSigHashType",
	ErrSigNullDummy:                       "ErrSigNullDummy",
	ErrSigIllegalForkID:                   "ErrSigIllegalForkID",
	ErrSigMustUseForkID:                   "ErrSigMustUseForkID",
	ErrSigPushOnly:                        "ErrSigPushOnly",
	ErrPubKeyType:                         "ErrPubKeyType",
	ErrPubKeyCount:                        "ErrPubKeyCount",
	ErrSigCount:                           "ErrSigCount",
	ErrDiscourageUpgradableNOPs:           "ErrDiscourageUpgradableNOPs",
	ErrDiscourageUpgradableWitnessProgram: "ErrDiscourageUpgradableWitnessProgram",
	ErrDiscourageUpgradableOpSuccess:      "ErrDiscourageUpgradableOpSuccess",
	ErrWitnessMalleated:                   "ErrWitnessMalleated",
	ErrWitnessMalleatedP2SH:               "ErrWitnessMalleatedP2SH",
	ErrWitnessProgramMismatch:             "ErrWitnessProgramMismatch",
	ErrWitnessProgramWrongLength:          "ErrWitnessProgramWrongLength",
	ErrWitnessProgramEmpty:                "ErrWitnessProgramEmpty",
	ErrWitnessUnexpected:                  "ErrWitnessUnexpected",
	ErrCleanStack:                         "ErrCleanStack",
	ErrTaprootNotImplemented:              "ErrTaprootNotImplemented",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a script-validation failure along with a human-readable
// description of what went wrong. Callers that need to branch on failure
// category should switch on Code(), not on the error string.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface.
func (e Error) Error() string {
	return e.Description
}

// Code returns the machine-readable category of the error.
func (e Error) Code() ErrorCode {
	return e.ErrorCode
}

// scriptError creates an Error given a set of arguments.
func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode reports whether err is a script Error carrying the given code.
func IsErrorCode(err error, c ErrorCode) bool {
	serr, ok := err.(Error)
	return ok && serr.ErrorCode == c
}
