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

package param

import (
	"fmt"
	"strconv"
)

// Param is a value stored in a parameter RAM slot
type Param struct {
	Addr  uint16
	Value uint32
}

// Hex returns address and value as hexadecimal strings
func (p *Param) Hex() (string, string) {
	return fmt.Sprintf("0x%04x", p.Addr), fmt.Sprintf("0x%08x", p.Value)
}

func ParseAddr(addr string) (uint16, error) {
	a, err := strconv.ParseUint(addr, 0, 16)
	if err != nil {
		return 0, err
	}
	return uint16(a), nil
}

func ParseValue(value string) (uint32, error) {
	v, err := strconv.ParseUint(value, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// NewParamFromHex parses address and value, both accept 0x prefixed hexadecimal
func NewParamFromHex(addr, value string) (*Param, error) {
	a, err := ParseAddr(addr)
	if err != nil {
		return nil, err
	}
	v, err := ParseValue(value)
	if err != nil {
		return nil, err
	}
	return &Param{Addr: a, Value: v}, nil
}
