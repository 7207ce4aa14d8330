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
	"net/http"

	deviceifc "jinr.ru/greenlab/go-paramram/pkg/device/ifc"
	"jinr.ru/greenlab/go-paramram/pkg/param"
)

type ControlServer interface {
	Run() error
	Close() error

	GetDeviceByName(deviceName string) (deviceifc.Device, error)
	GetAllDevices() map[string]deviceifc.Device
}

type ApiServer interface {
	Run() error
	Handler() http.Handler
}

// State keeps the last value written to every parameter of every device
type State interface {
	SetParam(p *param.Param, deviceName string) error
	GetParam(addr uint16, deviceName string) (*param.Param, error)
	GetParamAll(deviceName string) ([]*param.Param, error)
	Close() error
}
