// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// ScriptBuilder assembles raw scripts by appending opcodes and minimally
// encoded data pushes, deferring any encoding mistakes to Script()'s
// single error return instead of panicking mid-build.
type ScriptBuilder struct {
	script []byte
	err    error
}

// NewScriptBuilder returns a new, empty ScriptBuilder.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{}
}

// AddOp appends a single opcode byte.
func (b *ScriptBuilder) AddOp(op byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if len(b.script)+1 > MaxScriptSize {
		b.err = scriptError(ErrScriptSize, "adding opcode would exceed the maximum allowed script size")
		return b
	}
	b.script = append(b.script, op)
	return b
}

// AddInt64 appends the minimal-encoding data push for a scriptNum value.
func (b *ScriptBuilder) AddInt64(val int64) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if val == 0 {
		return b.AddOp(OP_0)
	}
	if val == -1 || (val >= 1 && val <= 16) {
		return b.AddOp(byte((OP_1 - 1) + val))
	}
	return b.AddData(scriptNum(val).Bytes())
}

// AddData appends the minimal-encoding data push for data.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if len(b.script)+len(data)+5 > MaxScriptSize {
		b.err = scriptError(ErrScriptSize, "adding data would exceed the maximum allowed script size")
		return b
	}
	b.script = addDataPush(b.script, data)
	return b
}

// addDataPush appends the canonical minimal push encoding of data to
// script and returns the result.
func addDataPush(script []byte, data []byte) []byte {
	dataLen := len(data)
	switch {
	case dataLen == 0:
		return append(script, OP_0)
	case dataLen == 1 && data[0] == 0x81:
		return append(script, OP_1NEGATE)
	case dataLen == 1 && data[0] >= 1 && data[0] <= 16:
		return append(script, OP_1+data[0]-1)
	case dataLen <= 75:
		script = append(script, byte(dataLen))
	case dataLen <= 255:
		script = append(script, OP_PUSHDATA1, byte(dataLen))
	case dataLen <= 65535:
		script = append(script, OP_PUSHDATA2, byte(dataLen), byte(dataLen>>8))
	default:
		script = append(script, OP_PUSHDATA4,
			byte(dataLen), byte(dataLen>>8), byte(dataLen>>16), byte(dataLen>>24))
	}
	return append(script, data...)
}

// Script returns the assembled script, or any error encountered while
// building it.
func (b *ScriptBuilder) Script() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.script, nil
}
