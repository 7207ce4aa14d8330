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

package control

import (
	"context"
	"net/http"

	"jinr.ru/greenlab/go-paramram/pkg/config"
	devicepkg "jinr.ru/greenlab/go-paramram/pkg/device"
	deviceifc "jinr.ru/greenlab/go-paramram/pkg/device/ifc"
	"jinr.ru/greenlab/go-paramram/pkg/log"
	"jinr.ru/greenlab/go-paramram/pkg/srv/control/ifc"
)

type ControlServer struct {
	context.Context
	*config.Config
	state   ifc.State
	devices map[string]deviceifc.Device
	api     ifc.ApiServer
}

var _ ifc.ControlServer = &ControlServer{}

// NewControlServer opens the state database and all configured devices
func NewControlServer(ctx context.Context, cfg *config.Config) (*ControlServer, error) {
	log.Debug("Initializing control server with %d devices", len(cfg.Devices))

	state, err := NewParamState(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s := &ControlServer{
		Context: ctx,
		Config:  cfg,
		state:   state,
		devices: map[string]deviceifc.Device{},
	}

	for _, deviceCfg := range cfg.Devices {
		d, err := devicepkg.NewDevice(deviceCfg, state)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.devices[deviceCfg.Name] = d
		if cfg.Restore {
			if err := d.Restore(); err != nil {
				s.Close()
				return nil, err
			}
		}
	}

	apiServer, err := NewApiServer(ctx, cfg, s)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.api = apiServer

	return s, nil
}

// Run serves the API until the context is done
func (s *ControlServer) Run() error {
	defer s.Close()
	return s.api.Run()
}

// Close releases the devices and the state database.
// It returns the first error, the rest are logged.
func (s *ControlServer) Close() error {
	var first error
	for name, d := range s.devices {
		if err := d.Close(); err != nil {
			log.Error("Error while closing device %s: %s", name, err)
			if first == nil {
				first = err
			}
		}
	}
	s.devices = map[string]deviceifc.Device{}
	if s.state != nil {
		if err := s.state.Close(); err != nil && first == nil {
			first = err
		}
		s.state = nil
	}
	return first
}

// Handler returns the HTTP API handler without starting a listener
func (s *ControlServer) Handler() http.Handler {
	return s.api.Handler()
}

func (s *ControlServer) GetDeviceByName(deviceName string) (deviceifc.Device, error) {
	d, ok := s.devices[deviceName]
	if !ok {
		return nil, config.ErrDeviceNotFound{Name: deviceName}
	}
	return d, nil
}

func (s *ControlServer) GetAllDevices() map[string]deviceifc.Device {
	return s.devices
}
