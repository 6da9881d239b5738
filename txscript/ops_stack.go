// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

func opcodeToAltStack(pop *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.astack.PushByteArray(so)
	return nil
}

func opcodeFromAltStack(pop *parsedOpcode, vm *Engine) error {
	so, err := vm.astack.PopByteArray()
	if err != nil {
		return scriptError(ErrInvalidAltStackOperation, err.Error())
	}
	vm.dstack.PushByteArray(so)
	return nil
}

func opcode2Drop(pop *parsedOpcode, vm *Engine) error {
	return vm.dstack.DropN(2)
}

func opcode2Dup(pop *parsedOpcode, vm *Engine) error {
	return vm.dstack.DupN(2)
}

func opcode3Dup(pop *parsedOpcode, vm *Engine) error {
	return vm.dstack.DupN(3)
}

func opcode2Over(pop *parsedOpcode, vm *Engine) error {
	return vm.dstack.OverN(2)
}

func opcode2Rot(pop *parsedOpcode, vm *Engine) error {
	return vm.dstack.RotN(2)
}

func opcode2Swap(pop *parsedOpcode, vm *Engine) error {
	return vm.dstack.SwapN(2)
}

func opcodeIfDup(pop *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	if asBool(so) {
		vm.dstack.PushByteArray(so)
	}
	return nil
}

func opcodeDepth(pop *parsedOpcode, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(vm.dstack.Depth()))
	return nil
}

func opcodeDrop(pop *parsedOpcode, vm *Engine) error {
	return vm.dstack.DropN(1)
}

func opcodeDup(pop *parsedOpcode, vm *Engine) error {
	return vm.dstack.DupN(1)
}

func opcodeNip(pop *parsedOpcode, vm *Engine) error {
	return vm.dstack.NipN(1)
}

func opcodeOver(pop *parsedOpcode, vm *Engine) error {
	return vm.dstack.OverN(1)
}

func opcodePick(pop *parsedOpcode, vm *Engine) error {
	return pickRoll(pop, vm, (*stack).PickN)
}

func opcodeRoll(pop *parsedOpcode, vm *Engine) error {
	return pickRoll(pop, vm, (*stack).RollN)
}

func pickRoll(pop *parsedOpcode, vm *Engine, f func(*stack, int32) error) error {
	val, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	idx := val.Int32()
	if idx < 0 || int32(idx) >= vm.dstack.Depth() {
		return scriptError(ErrInvalidStackOperation, fmt.Sprintf("index %d is invalid for stack size %d", idx, vm.dstack.Depth()))
	}
	return f(&vm.dstack, idx)
}

func opcodeRot(pop *parsedOpcode, vm *Engine) error {
	return vm.dstack.RotN(1)
}

func opcodeSwap(pop *parsedOpcode, vm *Engine) error {
	return vm.dstack.SwapN(1)
}

func opcodeTuck(pop *parsedOpcode, vm *Engine) error {
	return vm.dstack.Tuck()
}

func opcodeSize(pop *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(scriptNum(len(so)))
	return nil
}

func opcodeEqual(pop *parsedOpcode, vm *Engine) error {
	a, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	b, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(bytesEqual(a, b))
	return nil
}

func opcodeEqualVerify(pop *parsedOpcode, vm *Engine) error {
	if err := opcodeEqual(pop, vm); err != nil {
		return err
	}
	ok, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !ok {
		return scriptError(ErrEqualVerify, "OP_EQUALVERIFY failed")
	}
	return nil
}
