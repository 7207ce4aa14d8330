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

// Register layout of the AXI parameter RAM, byte offsets from the peripheral base.
const (
	StatusOffset uint32 = 0x00
	AddrOffset   uint32 = 0x04
	MemOffset    uint32 = 0x10
	// added on top of MemOffset, writes in this window do not raise the IRQ
	NoIrqOffset uint32 = 0x1000

	StatusEmptyMask uint32 = 1 << 0
)

// MapSize is the smallest window that covers every register of the peripheral
const MapSize uint32 = 0x2000
