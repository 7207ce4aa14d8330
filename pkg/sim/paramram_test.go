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

package sim

import (
	"testing"

	"jinr.ru/greenlab/go-paramram/pkg/paramram"
)

const base uint32 = 0x43c00000

func TestWritesQueueAccesses(t *testing.T) {
	p := NewParamRam(base, 0, 0)
	if !paramram.IsEmpty(p, base) {
		t.Fatalf("FIFO of a fresh peripheral should be empty")
	}

	paramram.WriteParam(p, base, 0x08, 1, false)
	paramram.WriteParam(p, base, 0x0c, 2, true)
	paramram.WriteParam(p, base, 0x20, 3, false)

	if p.Pending() != 2 || p.Irqs() != 2 {
		t.Fatalf("expected 2 queued accesses and 2 IRQs, got %d and %d", p.Pending(), p.Irqs())
	}
	if paramram.IsEmpty(p, base) {
		t.Fatalf("FIFO should not be empty")
	}
	if a := paramram.GetAccessAddr(p, base); a != 0x08 {
		t.Fatalf("expected head 0x08, got 0x%x", a)
	}
	if a := paramram.GetAccessAddr(p, base); a != 0x20 {
		t.Fatalf("expected head 0x20, got 0x%x", a)
	}
	if !paramram.IsEmpty(p, base) {
		t.Fatalf("FIFO should be empty after popping all entries")
	}
	if a := paramram.GetAccessAddr(p, base); a != 0 {
		t.Fatalf("empty FIFO should read 0, got 0x%x", a)
	}
}

func TestBothWindowsShareRam(t *testing.T) {
	p := NewParamRam(base, 0x100, 0)
	paramram.WriteParam(p, base, 0x10, 0xaaaa5555, true)
	if v := paramram.ReadParam(p, base, 0x10); v != 0xaaaa5555 {
		t.Fatalf("expected 0xaaaa5555, got 0x%x", v)
	}
	if v := p.Read32(paramram.ParamAddr(base, 0x10, true)); v != 0xaaaa5555 {
		t.Fatalf("no-IRQ window should alias the same RAM, got 0x%x", v)
	}

	// outside of the 0x100 byte RAM
	paramram.WriteParam(p, base, 0x100, 1, false)
	if v := paramram.ReadParam(p, base, 0x100); v != 0 {
		t.Fatalf("write outside the RAM should be ignored, read 0x%x", v)
	}
	if p.Pending() != 0 {
		t.Fatalf("write outside the RAM should not queue an access")
	}
}

func TestFifoOverflow(t *testing.T) {
	p := NewParamRam(base, 0, 2)
	for i := 0; i < 5; i++ {
		paramram.WriteParam(p, base, uint16(i*4), uint32(i), false)
	}
	if p.Pending() != 2 || p.Dropped() != 3 {
		t.Fatalf("expected 2 pending and 3 dropped, got %d and %d", p.Pending(), p.Dropped())
	}
	addrs := paramram.DrainAccesses(p, base, 10)
	if len(addrs) != 2 || addrs[0] != 0 || addrs[1] != 4 {
		t.Fatalf("unexpected drained addresses %v", addrs)
	}
}
