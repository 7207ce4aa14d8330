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

// Package paramram accesses the registers of the AXI parameter RAM.
//
// All functions take the peripheral base address and compute absolute
// byte addresses without bounds checking; the arithmetic wraps like
// uint32 does. Nothing here locks: callers sharing a peripheral must
// serialize access themselves.
package paramram

import (
	"jinr.ru/greenlab/go-paramram/pkg/mmio/ifc"
)

// ParamAddr returns the bus address of a parameter slot
func ParamAddr(baseAddr uint32, paramAddr uint16, suppressIrq bool) uint32 {
	addr := baseAddr + MemOffset + uint32(paramAddr)
	if suppressIrq {
		addr += NoIrqOffset
	}
	return addr
}

// WriteParam stores value into the parameter slot. Unless suppressIrq
// is set the peripheral queues paramAddr in its access FIFO and raises an IRQ.
func WriteParam(bus ifc.Bus, baseAddr uint32, paramAddr uint16, value uint32, suppressIrq bool) {
	bus.Write32(ParamAddr(baseAddr, paramAddr, suppressIrq), value)
}

// ReadParam loads the value of the parameter slot
func ReadParam(bus ifc.Bus, baseAddr uint32, paramAddr uint16) uint32 {
	return bus.Read32(ParamAddr(baseAddr, paramAddr, false))
}

// IsEmpty reports whether the access FIFO is empty
func IsEmpty(bus ifc.Bus, baseAddr uint32) bool {
	status := bus.Read32(baseAddr + StatusOffset)
	return status&StatusEmptyMask != 0
}

// GetAccessAddr returns the parameter address of the access at the head
// of the FIFO, i.e. the one that raised the current IRQ.
func GetAccessAddr(bus ifc.Bus, baseAddr uint32) uint16 {
	return uint16(bus.Read32(baseAddr + AddrOffset))
}

// DrainAccesses collects queued access addresses until the FIFO reports
// empty or max addresses were read.
func DrainAccesses(bus ifc.Bus, baseAddr uint32, max int) []uint16 {
	addrs := []uint16{}
	for len(addrs) < max && !IsEmpty(bus, baseAddr) {
		addrs = append(addrs, GetAccessAddr(bus, baseAddr))
	}
	return addrs
}
