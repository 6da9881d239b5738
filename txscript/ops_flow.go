// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

// opCondFalse / opCondTrue / opCondSkip are the exec-stack entries tracked
// across nested OP_IF/OP_NOTIF branches.
const (
	opCondFalse = 0
	opCondTrue  = 1
	opCondSkip  = 2
)

// opcodePushData pushes the instruction's inline data (or nothing for
// OP_0) onto the main stack.
func opcodePushData(pop *parsedOpcode, vm *Engine) error {
	vm.dstack.PushByteArray(pop.data)
	return nil
}

// opcodeNumOneNegate pushes the scriptNum -1 (OP_1NEGATE).
func opcodeNumOneNegate(pop *parsedOpcode, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(-1))
	return nil
}

// opcodeNumN pushes the scriptNum value of an OP_1..OP_16 opcode.
func opcodeNumN(pop *parsedOpcode, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(asSmallInt(pop.opcode.value)))
	return nil
}

// opcodeNop is a no-op, failing only under ScriptDiscourageUpgradableNops
// for the reserved OP_NOP1/OP_NOP4..OP_NOP10 range.
func opcodeNop(pop *parsedOpcode, vm *Engine) error {
	switch pop.opcode.value {
	case OP_NOP1, OP_NOP4, OP_NOP5, OP_NOP6, OP_NOP7, OP_NOP8, OP_NOP9, OP_NOP10:
		if vm.flags.hasFlag(ScriptDiscourageUpgradableNops) {
			return scriptError(ErrDiscourageUpgradableNOPs, fmt.Sprintf("%s reserved for upgrades", pop.opcode.name))
		}
	}
	return nil
}

// opcodeReserved fails only if actually executed.
func opcodeReserved(pop *parsedOpcode, vm *Engine) error {
	return scriptError(ErrDisabledOpcode, fmt.Sprintf("attempt to execute reserved opcode %s", pop.opcode.name))
}

// opcodeVerConditional handles OP_VERIF/OP_VERNOTIF, which are fatal
// unconditionally.
func opcodeVerConditional(pop *parsedOpcode, vm *Engine) error {
	return scriptError(ErrDisabledOpcode, fmt.Sprintf("attempt to execute reserved conditional opcode %s", pop.opcode.name))
}

// opcodeDisabled is wired to the classically disabled opcodes that have
// no fork-specific resurrection.
func opcodeDisabled(pop *parsedOpcode, vm *Engine) error {
	return scriptError(ErrDisabledOpcode, fmt.Sprintf("attempt to execute disabled opcode %s", pop.opcode.name))
}

// opcodeInvalid is the catch-all for every byte value with no defined
// opcode; it always fails.
func opcodeInvalid(pop *parsedOpcode, vm *Engine) error {
	return scriptError(ErrBadOpcode, fmt.Sprintf("attempt to execute invalid opcode %s", pop.opcode.name))
}

// opcodeIf pops a bool (if the branch is executing; pushes false
// otherwise) and pushes the corresponding exec-stack entry.
func opcodeIf(pop *parsedOpcode, vm *Engine) error {
	condVal := opCondFalse
	if vm.isBranchExecuting() {
		ok, err := vm.dstack.PopBool()
		if err != nil {
			return err
		}
		if ok {
			condVal = opCondTrue
		}
	} else {
		condVal = opCondSkip
	}
	vm.condStack = append(vm.condStack, condVal)
	return nil
}

// opcodeNotIf is OP_IF with the popped condition negated.
func opcodeNotIf(pop *parsedOpcode, vm *Engine) error {
	condVal := opCondFalse
	if vm.isBranchExecuting() {
		ok, err := vm.dstack.PopBool()
		if err != nil {
			return err
		}
		if !ok {
			condVal = opCondTrue
		}
	} else {
		condVal = opCondSkip
	}
	vm.condStack = append(vm.condStack, condVal)
	return nil
}

// opcodeElse flips the top exec-stack entry.
func opcodeElse(pop *parsedOpcode, vm *Engine) error {
	if len(vm.condStack) == 0 {
		return scriptError(ErrUnbalancedConditional, fmt.Sprintf("encountered opcode %s with no matching OP_IF", pop.opcode.name))
	}
	idx := len(vm.condStack) - 1
	switch vm.condStack[idx] {
	case opCondTrue:
		vm.condStack[idx] = opCondFalse
	case opCondFalse:
		vm.condStack[idx] = opCondTrue
	case opCondSkip:
		// stays skipped
	}
	return nil
}

// opcodeEndif pops the exec-stack.
func opcodeEndif(pop *parsedOpcode, vm *Engine) error {
	if len(vm.condStack) == 0 {
		return scriptError(ErrUnbalancedConditional, fmt.Sprintf("encountered opcode %s with no matching OP_IF", pop.opcode.name))
	}
	vm.condStack = vm.condStack[:len(vm.condStack)-1]
	return nil
}

// opcodeVerify pops a value and fails ErrVerify if it is falsy.
func opcodeVerify(pop *parsedOpcode, vm *Engine) error {
	verified, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !verified {
		return scriptError(ErrVerify, "OP_VERIFY failed")
	}
	return nil
}

// opcodeReturn unconditionally fails.
func opcodeReturn(pop *parsedOpcode, vm *Engine) error {
	return scriptError(ErrReturn, "script returned early")
}

// opcodeCheckLockTimeVerify implements OP_CHECKLOCKTIMEVERIFY (BIP65):
// decode the top as a 5-byte Num, reject negative values, and delegate to
// the checker. The operand is left on the stack.
func opcodeCheckLockTimeVerify(pop *parsedOpcode, vm *Engine) error {
	if !vm.flags.hasFlag(ScriptVerifyCheckLockTimeVerify) {
		return opcodeNop(pop, vm)
	}

	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	lockTime, err := makeScriptNum(so, vm.dstack.verifyMinimalData, cltvMaxScriptNumLen)
	if err != nil {
		return err
	}
	if lockTime < 0 {
		return scriptError(ErrNegativeLockTime, fmt.Sprintf("negative lock time: %d", lockTime))
	}
	if !vm.sigChecker.CheckLockTime(lockTime) {
		return scriptError(ErrUnsatisfiedLockTime, fmt.Sprintf("locktime requirement not satisfied -- locktime is greater than the transaction locktime: %d", lockTime))
	}
	return nil
}

// opcodeCheckSequenceVerify implements OP_CHECKSEQUENCEVERIFY (BIP112):
// same decoding as CLTV, but the disable flag (bit 31) makes it a no-op.
func opcodeCheckSequenceVerify(pop *parsedOpcode, vm *Engine) error {
	if !vm.flags.hasFlag(ScriptVerifyCheckSequenceVerify) {
		return opcodeNop(pop, vm)
	}

	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	sequence, err := makeScriptNum(so, vm.dstack.verifyMinimalData, cltvMaxScriptNumLen)
	if err != nil {
		return err
	}
	if sequence < 0 {
		return scriptError(ErrNegativeLockTime, fmt.Sprintf("negative sequence: %d", sequence))
	}

	if sequence&scriptNum(1<<31) != 0 {
		return nil
	}

	if !vm.sigChecker.CheckSequence(sequence) {
		return scriptError(ErrUnsatisfiedLockTime, fmt.Sprintf("relative lock time requirement not satisfied: %d", sequence))
	}
	return nil
}
