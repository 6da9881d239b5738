// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"

	"github.com/lbtc-go/core/logging"
)

// Consensus-critical limits.
const (
	MaxScriptSize         = 10000
	MaxScriptElementSize  = 520
	MaxOpsPerScript       = 201
	MaxPubKeysPerMultiSig = 20
	maxStackSize          = 1000
)

// Engine is the stack machine that evaluates a single parsed script
// against one main/alt stack pair under one signature-checking context.
// An Engine is single-use: construct one per script evaluation.
type Engine struct {
	script      []parsedOpcode
	scriptOff   int
	lastCodeSep int

	dstack stack // data stack
	astack stack // alt stack

	condStack []int
	numOps    int

	flags      ScriptFlags
	sigVersion SignatureVersion
	sigChecker SignatureChecker
}

// NewEngine parses script and returns an Engine ready to evaluate it
// under flags/sigVersion, delegating signature and locktime checks to
// checker.
func NewEngine(script []byte, flags ScriptFlags, sigVersion SignatureVersion, checker SignatureChecker) (*Engine, error) {
	assertFlagPreconditions(flags)

	if len(script) > MaxScriptSize {
		return nil, scriptError(ErrScriptSize, fmt.Sprintf("script size %d is larger than max allowed size %d", len(script), MaxScriptSize))
	}
	pops, err := parseScript(script)
	if err != nil {
		return nil, err
	}

	vm := &Engine{
		script:     pops,
		flags:      flags,
		sigVersion: sigVersion,
		sigChecker: checker,
	}
	vm.dstack.verifyMinimalData = flags.hasFlag(ScriptVerifyMinimalData)
	vm.astack.verifyMinimalData = flags.hasFlag(ScriptVerifyMinimalData)
	return vm, nil
}

// hasFlag reports whether flag is set on this Engine's flags.
func (vm *Engine) hasFlag(flag ScriptFlags) bool {
	return vm.flags.hasFlag(flag)
}

// isBranchExecuting reports whether every enclosing OP_IF/OP_NOTIF branch
// on the conditional stack is currently taken.
func (vm *Engine) isBranchExecuting() bool {
	for _, c := range vm.condStack {
		if c != opCondTrue {
			return false
		}
	}
	return true
}

// subScript returns the instructions since the last executed
// OP_CODESEPARATOR, the portion of the script that signature checks
// hash over.
func (vm *Engine) subScript() []parsedOpcode {
	return vm.script[vm.lastCodeSep:]
}

// disasm renders the instruction at idx for logging and disassembly.
func (vm *Engine) disasm(idx int) string {
	if idx < 0 || idx >= len(vm.script) {
		return ""
	}
	pop := vm.script[idx]
	return fmt.Sprintf("%04x: %s %x", idx, pop.opcode.name, pop.data)
}

// DisasmScript returns the disassembly of the full parsed script.
func (vm *Engine) DisasmScript() string {
	var out string
	for i := range vm.script {
		out += vm.disasm(i) + "\n"
	}
	return out
}

// executeOpcode applies the checks common to every instruction
// (always-illegal, disabled, reserved, op-count, element-size, minimal
// push) before dispatching to the opcode's handler.
func (vm *Engine) executeOpcode(pop *parsedOpcode) error {
	if pop.alwaysIllegal() {
		return opcodeVerConditional(pop, vm)
	}

	if pop.isDisabled(vm.flags) {
		return scriptError(ErrDisabledOpcode, fmt.Sprintf("attempt to execute disabled opcode %s", pop.opcode.name))
	}

	if len(pop.data) > MaxScriptElementSize {
		return scriptError(ErrElementTooBig, fmt.Sprintf("element size %d exceeds max allowed size %d", len(pop.data), MaxScriptElementSize))
	}

	if pop.isCountable() {
		vm.numOps++
		if vm.numOps > MaxOpsPerScript {
			return scriptError(ErrTooManyOperations, fmt.Sprintf("exceeded max operation limit of %d", MaxOpsPerScript))
		}
	}

	executing := vm.isBranchExecuting()

	if !executing && !pop.isConditional() {
		return nil
	}

	if executing && pop.isReservedWhenExecuting() {
		return scriptError(ErrDisabledOpcode, fmt.Sprintf("attempt to execute reserved opcode %s", pop.opcode.name))
	}

	if executing && vm.flags.hasFlag(ScriptVerifyMinimalData) && pop.opcode.value <= OP_PUSHDATA4 {
		if err := pop.checkMinimalDataPush(); err != nil {
			return err
		}
	}

	return pop.opcode.opfunc(pop, vm)
}

// Execute walks every instruction to completion and reports whether the
// run terminated with a truthy top-of-stack and a balanced conditional
// stack.
func (vm *Engine) Execute() (bool, error) {
	for vm.scriptOff < len(vm.script) {
		pop := vm.script[vm.scriptOff]
		vm.scriptOff++

		logging.CPrint(logging.TRACE, "stepping script", logging.LogFormat{
			"op":   vm.disasm(vm.scriptOff - 1),
			"cond": vm.condStack,
		})

		if err := vm.executeOpcode(&pop); err != nil {
			logging.CPrint(logging.ERROR, "script execution failed", logging.LogFormat{
				"error": err.Error(),
				"op":    pop.opcode.name,
			})
			return false, err
		}

		if vm.dstack.Depth()+vm.astack.Depth() > maxStackSize {
			return false, scriptError(ErrStackSize, fmt.Sprintf("combined stack size exceeds max of %d", maxStackSize))
		}
	}

	if len(vm.condStack) != 0 {
		return false, scriptError(ErrUnbalancedConditional, "conditional execution stack not empty at script end")
	}

	if vm.dstack.Depth() < 1 {
		return false, nil
	}
	top, err := vm.dstack.PeekBool(0)
	if err != nil {
		return false, err
	}
	return top, nil
}

// CheckErrorCondition reports whether a completed run's final stack has
// a single truthy element (cleanStack) or at least a truthy top element
// otherwise.
func (vm *Engine) CheckErrorCondition(cleanStack bool) error {
	if cleanStack && vm.dstack.Depth() != 1 {
		return scriptError(ErrCleanStack, fmt.Sprintf("stack contains %d unexpected items", vm.dstack.Depth()-1))
	}
	if vm.dstack.Depth() < 1 {
		return scriptError(ErrEvalFalse, "stack empty at end of script execution")
	}
	v, err := vm.dstack.PeekBool(0)
	if err != nil {
		return err
	}
	if !v {
		logging.CPrint(logging.ERROR, "script evaluated to false", logging.LogFormat{"script": vm.DisasmScript()})
		return scriptError(ErrEvalFalse, "false returned from final stack element")
	}
	return nil
}

// GetStack returns the contents of the main stack, bottom element first.
func (vm *Engine) GetStack() [][]byte {
	return getStack(&vm.dstack)
}

// SetStack replaces the main stack's contents, bottom element first.
func (vm *Engine) SetStack(data [][]byte) {
	setStack(&vm.dstack, data)
}

// getStack returns the contents of s, bottom element first.
func getStack(s *stack) [][]byte {
	out := make([][]byte, s.Depth())
	for i := range out {
		out[len(out)-i-1], _ = s.PeekByteArray(int32(i))
	}
	return out
}

// setStack replaces s's contents with data, given bottom element first.
func setStack(s *stack, data [][]byte) {
	if s.Depth() > 0 {
		_ = s.DropN(s.Depth())
	}
	for _, d := range data {
		s.PushByteArray(d)
	}
}

// EvalScript runs script to completion starting from stackIn, under
// sigVersion/flags/checker, and returns the resulting main-stack
// contents, or an error if the script failed.
func EvalScript(stackIn [][]byte, script []byte, flags ScriptFlags, sigVersion SignatureVersion, checker SignatureChecker) ([][]byte, error) {
	vm, err := NewEngine(script, flags, sigVersion, checker)
	if err != nil {
		return nil, err
	}
	vm.SetStack(stackIn)

	if _, err := vm.Execute(); err != nil {
		return nil, err
	}
	if err := vm.CheckErrorCondition(false); err != nil {
		return nil, err
	}
	return vm.GetStack(), nil
}
