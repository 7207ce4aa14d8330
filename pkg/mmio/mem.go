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
	"sync"

	"jinr.ru/greenlab/go-paramram/pkg/mmio/ifc"
)

// Memory is a sparse in-process address space.
// Words that were never written read as zero.
type Memory struct {
	mu    sync.Mutex
	words map[uint32]uint32
}

var _ ifc.Bus = &Memory{}

func NewMemory() *Memory {
	return &Memory{
		words: make(map[uint32]uint32),
	}
}

func (m *Memory) Read32(addr uint32) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.words[addr]
}

func (m *Memory) Write32(addr uint32, value uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.words[addr] = value
}

// Peek returns the stored word and whether it was ever written
func (m *Memory) Peek(addr uint32) (uint32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.words[addr]
	return v, ok
}

// Poke is Write32 under a name that reads better in test setup
func (m *Memory) Poke(addr uint32, value uint32) {
	m.Write32(addr, value)
}

// Addrs returns the number of distinct addresses written so far
func (m *Memory) Addrs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.words)
}
