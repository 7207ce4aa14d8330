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

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"sigs.k8s.io/yaml"
)

type ApiConfig struct {
	Address string `json:"address,omitempty"`
	Port    int    `json:"port,omitempty"`
}

type DeviceConfig struct {
	Name string `json:"name"`
	// Physical base address of the peripheral, hexadecimal
	Base string `json:"base"`
	// Size of the mapped window, must cover the no-IRQ parameter window
	MapSize uint32 `json:"map_size,omitempty"`
	DevMem  string `json:"devmem,omitempty"`
	// Simulate replaces the hardware with an in-process model
	Simulate  bool   `json:"simulate,omitempty"`
	RamSize   uint32 `json:"ram_size,omitempty"`
	FifoDepth int    `json:"fifo_depth,omitempty"`
}

// BaseAddr parses the base address
func (d *DeviceConfig) BaseAddr() (uint32, error) {
	base, err := strconv.ParseUint(d.Base, 0, 32)
	if err != nil {
		return 0, ErrBadDevice{Name: d.Name, What: "base: " + err.Error()}
	}
	return uint32(base), nil
}

type Config struct {
	LogLevel string `json:"log_level,omitempty"`
	DBPath   string `json:"db_path,omitempty"`
	// Restore writes the persisted parameter values back on server start
	Restore    bool `json:"restore,omitempty"`
	DrainMax   int  `json:"drain_max,omitempty"`
	*ApiConfig `json:"api,omitempty"`
	Devices    []*DeviceConfig `json:"devices"`
	filepath   string
}

func (c *Config) Path() string {
	return c.filepath
}

func (c *Config) SetPath(path string) {
	c.filepath = path
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	return os.WriteFile(c.filepath, data, 0644)
}

// Load reads the config file over the current values.
// A missing file leaves the defaults in place.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.filepath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return err
	}
	return c.Validate()
}

// Validate checks that devices have unique names and usable addresses
func (c *Config) Validate() error {
	names := map[string]bool{}
	for _, d := range c.Devices {
		if d.Name == "" {
			return ErrBadDevice{Name: d.Name, What: "empty name"}
		}
		if names[d.Name] {
			return ErrBadDevice{Name: d.Name, What: "duplicate name"}
		}
		names[d.Name] = true
		if _, err := d.BaseAddr(); err != nil {
			return err
		}
		if d.MapSize == 0 {
			d.MapSize = DefaultMapSize
		}
		if d.DevMem == "" {
			d.DevMem = DefaultDevMemPath
		}
	}
	return nil
}

func (c *Config) GetDeviceByName(name string) (*DeviceConfig, error) {
	for _, d := range c.Devices {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, ErrDeviceNotFound{Name: name}
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, DBFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		DBPath:   DefaultDBPath(),
		DrainMax: DefaultDrainMax,
		ApiConfig: &ApiConfig{
			Address: DefaultApiAddress,
			Port:    DefaultApiPort,
		},
		Devices: []*DeviceConfig{
			{
				Name:    DefaultDeviceName,
				Base:    DefaultDeviceBase,
				MapSize: DefaultMapSize,
				DevMem:  DefaultDevMemPath,
			},
		},
		filepath: DefaultConfigPath(),
	}
}
