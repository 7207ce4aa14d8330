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

package access

import (
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-paramram/pkg/command"
	"jinr.ru/greenlab/go-paramram/pkg/config"
	"jinr.ru/greenlab/go-paramram/pkg/paramram"
)

const (
	DeviceOptionName = "device"
	MaxOptionName    = "max"
	DirectOptionName = "direct"
)

type options struct {
	device string
	direct bool
}

func (o *options) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.device, DeviceOptionName, "", "Device name")
	cmd.MarkFlagRequired(DeviceOptionName)
	cmd.Flags().BoolVar(&o.direct, DirectOptionName, false, "Access the device directly instead of through the control server")
}

// withDevice runs fn on a directly mapped device
func withDevice(cfg *config.Config, deviceName string, fn func(d *paramram.Device) error) error {
	d, closeDevice, err := command.OpenDevice(cfg, deviceName)
	if err != nil {
		return err
	}
	defer closeDevice()
	return fn(d)
}

func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "access",
		Short: "Inspect the parameter access FIFO",
	}
	cmd.AddCommand(NewEmptyCommand(cfg))
	cmd.AddCommand(NewGetCommand(cfg))
	cmd.AddCommand(NewDrainCommand(cfg))
	return cmd
}
