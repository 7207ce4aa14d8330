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
	"jinr.ru/greenlab/go-paramram/pkg/mmio/ifc"
)

// Device binds a bus to the base address of one peripheral
type Device struct {
	Bus  ifc.Bus
	Base uint32
}

func NewDevice(bus ifc.Bus, base uint32) *Device {
	return &Device{
		Bus:  bus,
		Base: base,
	}
}

func (d *Device) WriteParam(paramAddr uint16, value uint32, suppressIrq bool) {
	WriteParam(d.Bus, d.Base, paramAddr, value, suppressIrq)
}

func (d *Device) ReadParam(paramAddr uint16) uint32 {
	return ReadParam(d.Bus, d.Base, paramAddr)
}

func (d *Device) IsEmpty() bool {
	return IsEmpty(d.Bus, d.Base)
}

func (d *Device) GetAccessAddr() uint16 {
	return GetAccessAddr(d.Bus, d.Base)
}

func (d *Device) DrainAccesses(max int) []uint16 {
	return DrainAccesses(d.Bus, d.Base, max)
}
