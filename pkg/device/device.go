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

package device

import (
	"io"
	"sync"

	"jinr.ru/greenlab/go-paramram/pkg/config"
	deviceifc "jinr.ru/greenlab/go-paramram/pkg/device/ifc"
	"jinr.ru/greenlab/go-paramram/pkg/log"
	"jinr.ru/greenlab/go-paramram/pkg/mmio"
	mmioifc "jinr.ru/greenlab/go-paramram/pkg/mmio/ifc"
	"jinr.ru/greenlab/go-paramram/pkg/param"
	"jinr.ru/greenlab/go-paramram/pkg/paramram"
	"jinr.ru/greenlab/go-paramram/pkg/sim"
	"jinr.ru/greenlab/go-paramram/pkg/srv/control/ifc"
)

// Device is one parameter RAM peripheral. Every register access goes
// through the device mutex since the registers are shared between all
// API clients.
type Device struct {
	*config.DeviceConfig
	mu     sync.Mutex
	regs   *paramram.Device
	closer io.Closer
	state  ifc.State
}

var _ deviceifc.Device = &Device{}

// NewDevice maps the peripheral (or creates its model when simulated)
func NewDevice(cfg *config.DeviceConfig, state ifc.State) (*Device, error) {
	base, err := cfg.BaseAddr()
	if err != nil {
		return nil, err
	}

	var bus mmioifc.Bus
	var closer io.Closer
	if cfg.Simulate {
		log.Info("Device %s: simulated parameter RAM at 0x%08x", cfg.Name, base)
		bus = sim.NewParamRam(base, cfg.RamSize, cfg.FifoDepth)
	} else {
		mapSize := cfg.MapSize
		if mapSize < paramram.MapSize {
			mapSize = paramram.MapSize
		}
		log.Info("Device %s: mapping %s at 0x%08x", cfg.Name, cfg.DevMem, base)
		devMem, err := mmio.NewDevMem(cfg.DevMem, base, mapSize)
		if err != nil {
			return nil, err
		}
		bus = devMem
		closer = devMem
	}
	return NewDeviceWithBus(cfg, bus, closer, state)
}

// NewDeviceWithBus creates a device on an existing bus. closer may be nil.
func NewDeviceWithBus(cfg *config.DeviceConfig, bus mmioifc.Bus, closer io.Closer, state ifc.State) (*Device, error) {
	base, err := cfg.BaseAddr()
	if err != nil {
		return nil, err
	}
	return &Device{
		DeviceConfig: cfg,
		regs:         paramram.NewDevice(bus, base),
		closer:       closer,
		state:        state,
	}, nil
}

// access runs fn under the device lock and turns a bus fault into an error
func (d *Device) access(fn func()) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			log.Error("Device %s: register access failed: %v", d.Name, r)
			err = ErrHardwareAccess{Device: d.Name, Cause: r}
		}
	}()
	fn()
	return nil
}

func (d *Device) ParamRead(addr uint16) (*param.Param, error) {
	p := &param.Param{Addr: addr}
	err := d.access(func() {
		p.Value = d.regs.ReadParam(addr)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (d *Device) ParamReadAll() ([]*param.Param, error) {
	known, err := d.state.GetParamAll(d.Name)
	if err != nil {
		return nil, err
	}
	params := make([]*param.Param, 0, len(known))
	for _, k := range known {
		p, err := d.ParamRead(k.Addr)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func (d *Device) ParamWrite(p *param.Param, suppressIrq bool) error {
	log.Debug("Device %s: writing parameter 0x%04x = 0x%08x suppress irq: %t", d.Name, p.Addr, p.Value, suppressIrq)
	err := d.access(func() {
		d.regs.WriteParam(p.Addr, p.Value, suppressIrq)
	})
	if err != nil {
		return err
	}
	return d.state.SetParam(p, d.Name)
}

func (d *Device) IsEmpty() (bool, error) {
	var empty bool
	err := d.access(func() {
		empty = d.regs.IsEmpty()
	})
	return empty, err
}

func (d *Device) AccessAddr() (uint16, error) {
	var addr uint16
	err := d.access(func() {
		addr = d.regs.GetAccessAddr()
	})
	return addr, err
}

func (d *Device) AccessDrain(max int) ([]uint16, error) {
	var addrs []uint16
	err := d.access(func() {
		addrs = d.regs.DrainAccesses(max)
	})
	return addrs, err
}

func (d *Device) Restore() error {
	params, err := d.state.GetParamAll(d.Name)
	if err != nil {
		return err
	}
	log.Info("Device %s: restoring %d parameters", d.Name, len(params))
	return d.access(func() {
		for _, p := range params {
			d.regs.WriteParam(p.Addr, p.Value, true)
		}
	})
}

func (d *Device) GetName() string {
	return d.Name
}

func (d *Device) GetBase() uint32 {
	return d.regs.Base
}

func (d *Device) IsSimulated() bool {
	return d.Simulate
}

func (d *Device) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}
