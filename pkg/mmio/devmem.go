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

package mmio

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"

	"jinr.ru/greenlab/go-paramram/pkg/log"
	"jinr.ru/greenlab/go-paramram/pkg/mmio/ifc"
)

const (
	DefaultDevMemPath = "/dev/mem"
)

// DevMem maps a physical address window through a memory device file
// (/dev/mem, /dev/uioN) and accesses it with 32-bit loads and stores.
// Addresses passed to Read32 and Write32 are absolute physical addresses.
type DevMem struct {
	path   string
	base   uint32
	region []byte
}

var _ ifc.Bus = &DevMem{}

// NewDevMem maps size bytes at physical address base
func NewDevMem(path string, base, size uint32) (*DevMem, error) {
	pageSize := os.Getpagesize()
	if base%uint32(pageSize) != 0 {
		return nil, ErrAlignment{Base: base, PageSize: pageSize}
	}

	log.Debug("Mapping %s base: 0x%08x size: 0x%x", path, base, size)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, ErrMap{Path: path, Base: base, Size: size, Err: err}
	}
	defer f.Close()

	region, err := unix.Mmap(int(f.Fd()), int64(base), int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, ErrMap{Path: path, Base: base, Size: size, Err: err}
	}
	return &DevMem{
		path:   path,
		base:   base,
		region: region,
	}, nil
}

func (m *DevMem) word(addr uint32) *uint32 {
	off := addr - m.base
	if addr < m.base || uint64(off)+4 > uint64(len(m.region)) {
		panic(fmt.Errorf("address 0x%08x outside of %s mapping 0x%08x+0x%x", addr, m.path, m.base, len(m.region)))
	}
	return (*uint32)(unsafe.Pointer(&m.region[off]))
}

// Read32 loads a 32-bit word at the physical address
func (m *DevMem) Read32(addr uint32) uint32 {
	return atomic.LoadUint32(m.word(addr))
}

// Write32 stores a 32-bit word at the physical address
func (m *DevMem) Write32(addr uint32, value uint32) {
	atomic.StoreUint32(m.word(addr), value)
}

func (m *DevMem) Base() uint32 {
	return m.base
}

func (m *DevMem) Size() uint32 {
	return uint32(len(m.region))
}

// Close unmaps the region
func (m *DevMem) Close() error {
	if m.region == nil {
		return nil
	}
	err := unix.Munmap(m.region)
	m.region = nil
	if err != nil {
		return fmt.Errorf("munmap %s: %w", m.path, err)
	}
	return nil
}
