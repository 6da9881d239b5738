// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

func opcode1Add(pop *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(n + 1)
	return nil
}

func opcode1Sub(pop *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(n - 1)
	return nil
}

func opcodeNegate(pop *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(-n)
	return nil
}

func opcodeAbs(pop *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if n < 0 {
		n = -n
	}
	vm.dstack.PushInt(n)
	return nil
}

func opcodeNot(pop *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(n == 0)
	return nil
}

func opcode0NotEqual(pop *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(n != 0)
	return nil
}

// popTwoNums pops b (the top, right operand) then a (the left operand),
// matching convention that the topmost item is the right
// operand / subtrahend.
func popTwoNums(vm *Engine) (a, b scriptNum, err error) {
	b, err = vm.dstack.PopInt()
	if err != nil {
		return 0, 0, err
	}
	a, err = vm.dstack.PopInt()
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func opcodeAdd(pop *parsedOpcode, vm *Engine) error {
	a, b, err := popTwoNums(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(a + b)
	return nil
}

func opcodeSub(pop *parsedOpcode, vm *Engine) error {
	a, b, err := popTwoNums(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(a - b)
	return nil
}

func opcodeDiv(pop *parsedOpcode, vm *Engine) error {
	a, b, err := popTwoNums(vm)
	if err != nil {
		return err
	}
	if b == 0 {
		return scriptError(ErrDivideByZero, "division by zero")
	}
	vm.dstack.PushInt(a / b)
	return nil
}

func opcodeMod(pop *parsedOpcode, vm *Engine) error {
	a, b, err := popTwoNums(vm)
	if err != nil {
		return err
	}
	if b == 0 {
		return scriptError(ErrDivideByZero, "division by zero")
	}
	vm.dstack.PushInt(a % b)
	return nil
}

func opcodeBoolAnd(pop *parsedOpcode, vm *Engine) error {
	a, b, err := popTwoNums(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a != 0 && b != 0)
	return nil
}

func opcodeBoolOr(pop *parsedOpcode, vm *Engine) error {
	a, b, err := popTwoNums(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a != 0 || b != 0)
	return nil
}

func opcodeNumEqual(pop *parsedOpcode, vm *Engine) error {
	a, b, err := popTwoNums(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a == b)
	return nil
}

func opcodeNumEqualVerify(pop *parsedOpcode, vm *Engine) error {
	if err := opcodeNumEqual(pop, vm); err != nil {
		return err
	}
	ok, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !ok {
		return scriptError(ErrNumEqualVerify, "OP_NUMEQUALVERIFY failed")
	}
	return nil
}

func opcodeNumNotEqual(pop *parsedOpcode, vm *Engine) error {
	a, b, err := popTwoNums(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a != b)
	return nil
}

func opcodeLessThan(pop *parsedOpcode, vm *Engine) error {
	a, b, err := popTwoNums(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a < b)
	return nil
}

func opcodeGreaterThan(pop *parsedOpcode, vm *Engine) error {
	a, b, err := popTwoNums(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a > b)
	return nil
}

func opcodeLessThanOrEqual(pop *parsedOpcode, vm *Engine) error {
	a, b, err := popTwoNums(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a <= b)
	return nil
}

func opcodeGreaterThanOrEqual(pop *parsedOpcode, vm *Engine) error {
	a, b, err := popTwoNums(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a >= b)
	return nil
}

func opcodeMin(pop *parsedOpcode, vm *Engine) error {
	a, b, err := popTwoNums(vm)
	if err != nil {
		return err
	}
	if a < b {
		vm.dstack.PushInt(a)
	} else {
		vm.dstack.PushInt(b)
	}
	return nil
}

func opcodeMax(pop *parsedOpcode, vm *Engine) error {
	a, b, err := popTwoNums(vm)
	if err != nil {
		return err
	}
	if a > b {
		vm.dstack.PushInt(a)
	} else {
		vm.dstack.PushInt(b)
	}
	return nil
}

func opcodeWithin(pop *parsedOpcode, vm *Engine) error {
	maxVal, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	minVal, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	x, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(x >= minVal && x < maxVal)
	return nil
}

// opcodeCat implements the Bitcoin-Cash-resurrected OP_CAT (flag
// `concat`): concatenate the top two items, length-bound by
// MaxScriptElementSize.
func opcodeCat(pop *parsedOpcode, vm *Engine) error {
	if !vm.flags.hasFlag(ScriptVerifyConcat) {
		return opcodeDisabled(pop, vm)
	}
	b, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	if len(a)+len(b) > MaxScriptElementSize {
		return scriptError(ErrElementTooBig, "concatenated value exceeds max element size")
	}
	vm.dstack.PushByteArray(append(append([]byte{}, a...), b...))
	return nil
}

// opcodeSplit implements OP_SUBSTR reinterpreted as OP_SPLIT (flag
// `split`): split the second-from-top item at index N (the top item)
// into two pushed items.
func opcodeSplit(pop *parsedOpcode, vm *Engine) error {
	if !vm.flags.hasFlag(ScriptVerifySplit) {
		return opcodeDisabled(pop, vm)
	}
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	data, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	idx := int(n)
	if idx < 0 || idx > len(data) {
		return scriptError(ErrInvalidSplitRange, fmt.Sprintf("invalid split position %d for %d byte value", idx, len(data)))
	}
	vm.dstack.PushByteArray(append([]byte{}, data[:idx]...))
	vm.dstack.PushByteArray(append([]byte{}, data[idx:]...))
	return nil
}

// opcodeNum2Bin implements OP_LEFT reinterpreted as OP_NUM2BIN (flag
// `num2bin`): pad the minimally-encoded top-of-stack Num to an N-byte
// fixed-width representation, relocating the sign bit.
func opcodeNum2Bin(pop *parsedOpcode, vm *Engine) error {
	if !vm.flags.hasFlag(ScriptVerifyNum2bin) {
		return opcodeDisabled(pop, vm)
	}
	sizeNum, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	data, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	size := int(sizeNum)
	if size < 0 || size > MaxScriptElementSize {
		return scriptError(ErrInvalidOperandSize, fmt.Sprintf("invalid num2bin size %d", size))
	}
	if len(data) > size {
		return scriptError(ErrImpossibleEncoding, "cannot fit value in requested size")
	}
	if len(data) == 0 {
		vm.dstack.PushByteArray(make([]byte, size))
		return nil
	}

	var sign byte
	last := len(data) - 1
	sign = data[last] & 0x80
	mag := append([]byte{}, data...)
	mag[last] &= 0x7f

	result := make([]byte, size)
	copy(result, mag)
	if sign != 0 {
		result[size-1] |= 0x80
	}
	vm.dstack.PushByteArray(result)
	return nil
}

// opcodeBin2Num implements OP_RIGHT reinterpreted as OP_BIN2NUM (flag
// `bin2num`): minimally re-encode bytes to a scriptNum.
func opcodeBin2Num(pop *parsedOpcode, vm *Engine) error {
	if !vm.flags.hasFlag(ScriptVerifyBin2num) {
		return opcodeDisabled(pop, vm)
	}
	data, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	n, err := makeScriptNum(data, false, len(data)+1)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(n)
	return nil
}

func bitwiseOp(vm *Engine, flag ScriptFlags, op func(a, b byte) byte) error {
	if !vm.flags.hasFlag(flag) {
		return scriptError(ErrDisabledOpcode, "bitwise opcode disabled")
	}
	b, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	if len(a) != len(b) {
		return scriptError(ErrInvalidOperandSize, "operands must be the same size")
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = op(a[i], b[i])
	}
	vm.dstack.PushByteArray(out)
	return nil
}

func opcodeAnd(pop *parsedOpcode, vm *Engine) error {
	return bitwiseOp(vm, ScriptVerifyAnd, func(a, b byte) byte { return a & b })
}

func opcodeOr(pop *parsedOpcode, vm *Engine) error {
	return bitwiseOp(vm, ScriptVerifyOr, func(a, b byte) byte { return a | b })
}

func opcodeXor(pop *parsedOpcode, vm *Engine) error {
	return bitwiseOp(vm, ScriptVerifyXor, func(a, b byte) byte { return a ^ b })
}
