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

package ifc

import (
	"jinr.ru/greenlab/go-paramram/pkg/param"
)

type Device interface {
	ParamRead(addr uint16) (*param.Param, error)
	// ParamReadAll reads live values of all parameters written through this tool
	ParamReadAll() ([]*param.Param, error)
	ParamWrite(p *param.Param, suppressIrq bool) error

	IsEmpty() (bool, error)
	AccessAddr() (uint16, error)
	AccessDrain(max int) ([]uint16, error)

	// Restore writes persisted parameter values back with IRQ suppressed
	Restore() error

	GetName() string
	GetBase() uint32
	IsSimulated() bool
	Close() error
}
