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

package command

import (
	"jinr.ru/greenlab/go-paramram/pkg/config"
	"jinr.ru/greenlab/go-paramram/pkg/log"
	"jinr.ru/greenlab/go-paramram/pkg/mmio"
	"jinr.ru/greenlab/go-paramram/pkg/paramram"
	"jinr.ru/greenlab/go-paramram/pkg/sim"
)

// OpenDevice maps a configured device for direct register access,
// bypassing the control server. The returned function releases the mapping.
func OpenDevice(cfg *config.Config, deviceName string) (*paramram.Device, func() error, error) {
	deviceCfg, err := cfg.GetDeviceByName(deviceName)
	if err != nil {
		return nil, nil, err
	}
	base, err := deviceCfg.BaseAddr()
	if err != nil {
		return nil, nil, err
	}
	if deviceCfg.Simulate {
		log.Warning("Device %s is simulated, direct access sees a blank peripheral", deviceName)
		ram := sim.NewParamRam(base, deviceCfg.RamSize, deviceCfg.FifoDepth)
		return paramram.NewDevice(ram, base), func() error { return nil }, nil
	}
	mapSize := deviceCfg.MapSize
	if mapSize < paramram.MapSize {
		mapSize = paramram.MapSize
	}
	m, err := mmio.NewDevMem(deviceCfg.DevMem, base, mapSize)
	if err != nil {
		return nil, nil, err
	}
	return paramram.NewDevice(m, base), m.Close, nil
}
