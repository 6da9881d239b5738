// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// asBool casts a stack element to a bool: truthy iff some non-terminal
// byte is non-zero, or the last byte is neither 0x00 nor 0x80 (negative
// zero is falsy).
func asBool(t []byte) bool {
	for i := range t {
		if t[i] != 0 {
			if i == len(t)-1 && t[i] == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}

// fromBool converts a bool to the canonical stack encoding.
func fromBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return nil
}

// stack is the two-ended byte-string stack shared by the main and alt
// stacks of one eval_script invocation.
type stack struct {
	stk               [][]byte
	verifyMinimalData bool
}

// Depth returns the number of items on the stack.
func (s *stack) Depth() int32 {
	return int32(len(s.stk))
}

// PushByteArray pushes the given byte slice onto the stack.
func (s *stack) PushByteArray(so []byte) {
	s.stk = append(s.stk, so)
}

// PushInt pushes a scriptNum encoded as a byte array.
func (s *stack) PushInt(val scriptNum) {
	s.PushByteArray(val.Bytes())
}

// PushBool pushes the canonical bool encoding.
func (s *stack) PushBool(val bool) {
	s.PushByteArray(fromBool(val))
}

// PopByteArray pops the top item off the stack.
func (s *stack) PopByteArray() ([]byte, error) {
	return s.nipN(0)
}

// PopInt pops the top item and decodes it as a 4-byte scriptNum.
func (s *stack) PopInt() (scriptNum, error) {
	so, err := s.PopByteArray()
	if err != nil {
		return 0, err
	}
	return makeScriptNum(so, s.verifyMinimalData, defaultScriptNumLen)
}

// PopBool pops the top item and casts it to bool.
func (s *stack) PopBool() (bool, error) {
	so, err := s.PopByteArray()
	if err != nil {
		return false, err
	}
	return asBool(so), nil
}

// PeekByteArray returns the Nth item from the top without removing it.
func (s *stack) PeekByteArray(idx int32) ([]byte, error) {
	sz := int32(len(s.stk))
	if idx < 0 || idx >= sz {
		return nil, scriptError(ErrInvalidStackOperation, "index out of range")
	}
	return s.stk[sz-idx-1], nil
}

// PeekInt returns the Nth item from the top decoded as a scriptNum.
func (s *stack) PeekInt(idx int32) (scriptNum, error) {
	so, err := s.PeekByteArray(idx)
	if err != nil {
		return 0, err
	}
	return makeScriptNum(so, s.verifyMinimalData, defaultScriptNumLen)
}

// PeekBool returns the Nth item from the top cast to bool.
func (s *stack) PeekBool(idx int32) (bool, error) {
	so, err := s.PeekByteArray(idx)
	if err != nil {
		return false, err
	}
	return asBool(so), nil
}

// nipN removes the Nth item from the top of the stack and returns it.
func (s *stack) nipN(idx int32) ([]byte, error) {
	sz := int32(len(s.stk))
	if idx < 0 || idx >= sz {
		return nil, scriptError(ErrInvalidStackOperation, "index out of range")
	}
	so := s.stk[sz-idx-1]
	if idx == 0 {
		s.stk = s.stk[:sz-1]
	} else if idx == sz-1 {
		s1 := make([][]byte, sz-1)
		copy(s1, s.stk[1:])
		s.stk = s1
	} else {
		s1 := s.stk[sz-idx : sz]
		s.stk = s.stk[:sz-idx-1]
		s.stk = append(s.stk, s1...)
	}
	return so, nil
}

// NipN pops the Nth item from the top of the stack, discarding it.
func (s *stack) NipN(idx int32) error {
	_, err := s.nipN(idx)
	return err
}

// Tuck copies the item at the top of the stack and inserts it before the
// second-to-top item.
func (s *stack) Tuck() error {
	so2, err := s.PopByteArray()
	if err != nil {
		return err
	}
	so1, err := s.PopByteArray()
	if err != nil {
		return err
	}
	s.PushByteArray(so2)
	s.PushByteArray(so1)
	s.PushByteArray(so2)
	return nil
}

// DropN removes the top N items from the stack.
func (s *stack) DropN(n int32) error {
	return s.nipAndExec(n, func(so [][]byte) error { return nil })
}

func (s *stack) nipAndExec(n int32, fn func([][]byte) error) error {
	if n < 1 || int32(len(s.stk)) < n {
		return scriptError(ErrInvalidStackOperation, "index out of range")
	}
	items := make([][]byte, n)
	for i := range items {
		so, err := s.nipN(n - 1)
		if err != nil {
			return err
		}
		items[i] = so
	}
	return fn(items)
}

// DupN duplicates the top N items on the stack.
func (s *stack) DupN(n int32) error {
	if n < 1 || int32(len(s.stk)) < n {
		return scriptError(ErrInvalidStackOperation, "index out of range")
	}
	for i := n; i > 0; i-- {
		so, err := s.PeekByteArray(n - 1)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// RotN rotates the top 3*N items on the stack to the left N times.
func (s *stack) RotN(n int32) error {
	if n < 1 || int32(len(s.stk)) < 3*n {
		return scriptError(ErrInvalidStackOperation, "index out of range")
	}
	entry := 3*n - 1
	for i := int32(0); i < n; i++ {
		so, err := s.nipN(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// SwapN swaps the top N items with the following N items.
func (s *stack) SwapN(n int32) error {
	if n < 1 || int32(len(s.stk)) < 2*n {
		return scriptError(ErrInvalidStackOperation, "index out of range")
	}
	entry := 2*n - 1
	for i := int32(0); i < n; i++ {
		so, err := s.nipN(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// OverN copies the N items before the top N items to the top of the stack.
func (s *stack) OverN(n int32) error {
	if n < 1 || int32(len(s.stk)) < 2*n {
		return scriptError(ErrInvalidStackOperation, "index out of range")
	}
	entry := 2*n - 1
	for i := int32(0); i < n; i++ {
		so, err := s.PeekByteArray(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// PickN copies the Nth item to the top of the stack.
func (s *stack) PickN(n int32) error {
	so, err := s.PeekByteArray(n)
	if err != nil {
		return err
	}
	s.PushByteArray(so)
	return nil
}

// RollN moves the Nth item to the top of the stack.
func (s *stack) RollN(n int32) error {
	so, err := s.nipN(n)
	if err != nil {
		return err
	}
	s.PushByteArray(so)
	return nil
}

// String returns a human-readable representation of the stack for logging.
func (s *stack) String() string {
	var b strings.Builder
	for i := len(s.stk) - 1; i >= 0; i-- {
		b.WriteString(fmt.Sprintf("%02d: %s\n", len(s.stk)-1-i, hex.EncodeToString(s.stk[i])))
	}
	return b.String()
}
