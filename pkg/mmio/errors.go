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
)

// ErrMap returned when a physical region can not be mapped
type ErrMap struct {
	Path string
	Base uint32
	Size uint32
	Err  error
}

func (e ErrMap) Error() string {
	return fmt.Sprintf("Error while mapping %s base: 0x%08x size: 0x%x: %v", e.Path, e.Base, e.Size, e.Err)
}

func (e ErrMap) Unwrap() error {
	return e.Err
}

// ErrAlignment returned when the physical base address is not page aligned
type ErrAlignment struct {
	Base     uint32
	PageSize int
}

func (e ErrAlignment) Error() string {
	return fmt.Sprintf("Base address 0x%08x is not aligned to page size 0x%x", e.Base, e.PageSize)
}
