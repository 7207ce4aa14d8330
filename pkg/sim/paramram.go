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

// Package sim models the AXI parameter RAM in software so the tool can
// run without the FPGA.
package sim

import (
	"sync"

	"jinr.ru/greenlab/go-paramram/pkg/log"
	"jinr.ru/greenlab/go-paramram/pkg/mmio/ifc"
	"jinr.ru/greenlab/go-paramram/pkg/paramram"
)

const (
	DefaultRamSize   uint32 = 0x1000
	DefaultFifoDepth        = 16
)

// ParamRam behaves like one parameter RAM peripheral mapped at Base.
// Stores to the IRQ window queue the parameter address in the access
// FIFO, loads of the address register pop it.
type ParamRam struct {
	mu        sync.Mutex
	base      uint32
	ram       []uint32
	fifo      []uint16
	fifoDepth int
	dropped   int
	irqs      int
}

var _ ifc.Bus = &ParamRam{}

// NewParamRam creates a peripheral with ramSize bytes of parameter memory.
// Zero values select the defaults. The RAM can not be larger than the
// distance between the two parameter windows.
func NewParamRam(base, ramSize uint32, fifoDepth int) *ParamRam {
	if ramSize == 0 || ramSize > paramram.NoIrqOffset {
		ramSize = DefaultRamSize
	}
	if fifoDepth <= 0 {
		fifoDepth = DefaultFifoDepth
	}
	return &ParamRam{
		base:      base,
		ram:       make([]uint32, ramSize/4),
		fifoDepth: fifoDepth,
	}
}

// slot returns the RAM word index for an address inside one of the
// parameter windows and whether the window raises an IRQ.
func (p *ParamRam) slot(off uint32) (idx int, irq bool, ok bool) {
	size := uint32(len(p.ram)) * 4
	switch {
	case off >= paramram.MemOffset && off < paramram.MemOffset+size:
		return int((off - paramram.MemOffset) / 4), true, true
	case off >= paramram.MemOffset+paramram.NoIrqOffset && off < paramram.MemOffset+paramram.NoIrqOffset+size:
		return int((off - paramram.MemOffset - paramram.NoIrqOffset) / 4), false, true
	}
	return 0, false, false
}

func (p *ParamRam) Read32(addr uint32) uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()

	off := addr - p.base
	switch off {
	case paramram.StatusOffset:
		if len(p.fifo) == 0 {
			return paramram.StatusEmptyMask
		}
		return 0
	case paramram.AddrOffset:
		if len(p.fifo) == 0 {
			return 0
		}
		head := p.fifo[0]
		p.fifo = p.fifo[1:]
		return uint32(head)
	}
	if idx, _, ok := p.slot(off); ok {
		return p.ram[idx]
	}
	log.Debug("Simulated read outside of parameter RAM: 0x%08x", addr)
	return 0
}

func (p *ParamRam) Write32(addr uint32, value uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	off := addr - p.base
	idx, irq, ok := p.slot(off)
	if !ok {
		log.Debug("Simulated write outside of parameter RAM ignored: 0x%08x", addr)
		return
	}
	p.ram[idx] = value
	if !irq {
		return
	}
	p.irqs++
	if len(p.fifo) >= p.fifoDepth {
		p.dropped++
		log.Warning("Simulated access FIFO full, dropping access to 0x%04x", off-paramram.MemOffset)
		return
	}
	p.fifo = append(p.fifo, uint16(off-paramram.MemOffset))
}

// Pending returns the number of queued accesses
func (p *ParamRam) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.fifo)
}

// Dropped returns the number of accesses lost because the FIFO was full
func (p *ParamRam) Dropped() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}

// Irqs returns the number of IRQ-generating writes seen so far
func (p *ParamRam) Irqs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.irqs
}
