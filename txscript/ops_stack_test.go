package txscript

import (
	"bytes"
	"testing"
)

func TestOpcodeIfDup(t *testing.T) {
	vm := &Engine{}
	vm.dstack.PushByteArray([]byte{1})
	if err := opcodeIfDup(nil, vm); err != nil {
		t.Fatalf("opcodeIfDup returned error: %v", err)
	}
	if vm.dstack.Depth() != 2 {
		t.Errorf("truthy IfDup: Depth() = %d, want 2", vm.dstack.Depth())
	}

	vm2 := &Engine{}
	vm2.dstack.PushByteArray(nil)
	if err := opcodeIfDup(nil, vm2); err != nil {
		t.Fatalf("opcodeIfDup returned error: %v", err)
	}
	if vm2.dstack.Depth() != 1 {
		t.Errorf("falsy IfDup: Depth() = %d, want 1", vm2.dstack.Depth())
	}
}

func TestOpcodeDepth(t *testing.T) {
	vm := &Engine{}
	vm.dstack.PushByteArray([]byte{1})
	vm.dstack.PushByteArray([]byte{2})
	vm.dstack.PushByteArray([]byte{3})

	if err := opcodeDepth(nil, vm); err != nil {
		t.Fatalf("opcodeDepth returned error: %v", err)
	}
	n, err := vm.dstack.PopInt()
	if err != nil {
		t.Fatalf("PopInt failed: %v", err)
	}
	if n.Int32() != 3 {
		t.Errorf("opcodeDepth pushed %d, want 3", n.Int32())
	}
}

func TestOpcodePickAndRoll(t *testing.T) {
	vm := &Engine{}
	vm.dstack.PushByteArray([]byte{1})
	vm.dstack.PushByteArray([]byte{2})
	vm.dstack.PushByteArray([]byte{3})
	vm.dstack.PushInt(scriptNum(2)) // index 2 from the top is {1}

	if err := opcodePick(nil, vm); err != nil {
		t.Fatalf("opcodePick returned error: %v", err)
	}
	top, _ := vm.dstack.PeekByteArray(0)
	if !bytes.Equal(top, []byte{1}) {
		t.Errorf("Pick(2) pushed %x, want 01", top)
	}
	// Stack is now [1,2,3,1]; depth 4, original {1} untouched below.
	if vm.dstack.Depth() != 4 {
		t.Fatalf("Depth() after Pick = %d, want 4", vm.dstack.Depth())
	}

	vm2 := &Engine{}
	vm2.dstack.PushByteArray([]byte{1})
	vm2.dstack.PushByteArray([]byte{2})
	vm2.dstack.PushByteArray([]byte{3})
	vm2.dstack.PushInt(scriptNum(2)) // roll {1} to the top

	if err := opcodeRoll(nil, vm2); err != nil {
		t.Fatalf("opcodeRoll returned error: %v", err)
	}
	top2, _ := vm2.dstack.PeekByteArray(0)
	if !bytes.Equal(top2, []byte{1}) {
		t.Errorf("Roll(2) top = %x, want 01", top2)
	}
	// Roll removes the element instead of copying it: depth stays 3.
	if vm2.dstack.Depth() != 3 {
		t.Errorf("Depth() after Roll = %d, want 3", vm2.dstack.Depth())
	}
}

func TestPickRollRejectsOutOfRangeIndex(t *testing.T) {
	vm := &Engine{}
	vm.dstack.PushByteArray([]byte{1})
	vm.dstack.PushInt(scriptNum(5)) // only one element below the index

	if err := opcodePick(nil, vm); err == nil {
		t.Fatalf("expected out-of-range Pick index to fail")
	}
}

func TestOpcodeTuck(t *testing.T) {
	vm := &Engine{}
	vm.dstack.PushByteArray([]byte{1})
	vm.dstack.PushByteArray([]byte{2})

	if err := opcodeTuck(nil, vm); err != nil {
		t.Fatalf("opcodeTuck returned error: %v", err)
	}
	// [1,2] tucked becomes [2,1,2].
	if vm.dstack.Depth() != 3 {
		t.Fatalf("Depth() after Tuck = %d, want 3", vm.dstack.Depth())
	}
	top, _ := vm.dstack.PeekByteArray(0)
	bottom, _ := vm.dstack.PeekByteArray(2)
	if !bytes.Equal(top, []byte{2}) || !bytes.Equal(bottom, []byte{2}) {
		t.Errorf("Tuck result top=%x bottom=%x, want both 02", top, bottom)
	}
}

func TestOpcodeSize(t *testing.T) {
	vm := &Engine{}
	vm.dstack.PushByteArray([]byte{1, 2, 3, 4, 5})

	if err := opcodeSize(nil, vm); err != nil {
		t.Fatalf("opcodeSize returned error: %v", err)
	}
	n, err := vm.dstack.PopInt()
	if err != nil {
		t.Fatalf("PopInt failed: %v", err)
	}
	if n.Int32() != 5 {
		t.Errorf("opcodeSize pushed %d, want 5", n.Int32())
	}
	// The original element is left on the stack underneath the size.
	if vm.dstack.Depth() != 1 {
		t.Errorf("Depth() after Size = %d, want 1", vm.dstack.Depth())
	}
}

func TestOpcodeEqualAndEqualVerify(t *testing.T) {
	vm := &Engine{}
	vm.dstack.PushByteArray([]byte("abc"))
	vm.dstack.PushByteArray([]byte("abc"))
	if err := opcodeEqual(nil, vm); err != nil {
		t.Fatalf("opcodeEqual returned error: %v", err)
	}
	ok, err := vm.dstack.PopBool()
	if err != nil {
		t.Fatalf("PopBool failed: %v", err)
	}
	if !ok {
		t.Errorf("opcodeEqual on equal byte arrays = false, want true")
	}

	vm2 := &Engine{}
	vm2.dstack.PushByteArray([]byte("abc"))
	vm2.dstack.PushByteArray([]byte("xyz"))
	if err := opcodeEqualVerify(nil, vm2); err == nil {
		t.Fatalf("expected opcodeEqualVerify to fail on unequal byte arrays")
	}
}
