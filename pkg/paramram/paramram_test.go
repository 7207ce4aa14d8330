/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package paramram

import (
	"testing"

	"jinr.ru/greenlab/go-paramram/pkg/mmio"
)

const base uint32 = 0x43c00000

func TestWriteParamAddresses(t *testing.T) {
	mem := mmio.NewMemory()

	WriteParam(mem, base, 0x24, 0x11111111, false)
	if v, ok := mem.Peek(base + 0x10 + 0x24); !ok || v != 0x11111111 {
		t.Fatalf("IRQ write expected at 0x%08x, got 0x%x (written %v)", base+0x34, v, ok)
	}

	WriteParam(mem, base, 0x24, 0x22222222, true)
	if v, ok := mem.Peek(base + 0x1010 + 0x24); !ok || v != 0x22222222 {
		t.Fatalf("no-IRQ write expected at 0x%08x, got 0x%x (written %v)", base+0x1034, v, ok)
	}
	if mem.Addrs() != 2 {
		t.Fatalf("expected exactly 2 stores, got %d", mem.Addrs())
	}
}

func TestReadParam(t *testing.T) {
	mem := mmio.NewMemory()
	mem.Poke(base+0x10+0x100, 0xdeadbeef)
	if v := ReadParam(mem, base, 0x100); v != 0xdeadbeef {
		t.Fatalf("expected 0xdeadbeef, got 0x%x", v)
	}
	if v := ReadParam(mem, base, 0x104); v != 0 {
		t.Fatalf("expected 0 for unwritten slot, got 0x%x", v)
	}
}

func TestIsEmpty(t *testing.T) {
	mem := mmio.NewMemory()
	for _, tc := range []struct {
		status uint32
		empty  bool
	}{
		{0x0, false},
		{0x1, true},
		{0x2, false},
		{0x3, true},
		{0xfffffffe, false},
		{0xffffffff, true},
	} {
		mem.Poke(base, tc.status)
		if got := IsEmpty(mem, base); got != tc.empty {
			t.Fatalf("status 0x%x: expected empty=%v, got %v", tc.status, tc.empty, got)
		}
	}
}

func TestGetAccessAddrTruncates(t *testing.T) {
	mem := mmio.NewMemory()
	mem.Poke(base+0x04, 0x000a1234)
	if a := GetAccessAddr(mem, base); a != 0x1234 {
		t.Fatalf("expected 0x1234, got 0x%x", a)
	}
	mem.Poke(base+0x04, 0xffff0000)
	if a := GetAccessAddr(mem, base); a != 0 {
		t.Fatalf("expected 0, got 0x%x", a)
	}
}

func TestParamAddrWraps(t *testing.T) {
	if a := ParamAddr(0xfffffff0, 0x10, false); a != 0x10 {
		t.Fatalf("expected wrapped address 0x10, got 0x%x", a)
	}
	if a := ParamAddr(0, 0xffff, true); a != 0x1010+0xffff {
		t.Fatalf("unexpected address 0x%x", a)
	}
}

func TestDevice(t *testing.T) {
	mem := mmio.NewMemory()
	d := NewDevice(mem, base)
	d.WriteParam(8, 42, false)
	if v := d.ReadParam(8); v != 42 {
		t.Fatalf("expected 42, got %d", v)
	}
	mem.Poke(base+StatusOffset, StatusEmptyMask)
	if !d.IsEmpty() {
		t.Fatalf("device should report empty FIFO")
	}
	if addrs := d.DrainAccesses(4); len(addrs) != 0 {
		t.Fatalf("drain of empty FIFO returned %v", addrs)
	}
	mem.Poke(base+StatusOffset, 0)
	mem.Poke(base+AddrOffset, 0x30)
	if a := d.GetAccessAddr(); a != 0x30 {
		t.Fatalf("expected 0x30, got 0x%x", a)
	}
	// status never clears on plain memory, max bounds the loop
	addrs := d.DrainAccesses(3)
	if len(addrs) != 3 {
		t.Fatalf("expected drain to stop at 3 entries, got %v", addrs)
	}
}
