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
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-paramram/pkg/command"
	"jinr.ru/greenlab/go-paramram/pkg/config"
	"jinr.ru/greenlab/go-paramram/pkg/log"
	pkgparam "jinr.ru/greenlab/go-paramram/pkg/param"
)

func NewWriteCommand(cfg *config.Config) *cobra.Command {
	var device, addr, value string
	var noIrq, direct bool
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write parameter value",
		RunE: func(cmd *cobra.Command, args []string) error {
			if direct {
				p, err := pkgparam.NewParamFromHex(addr, value)
				if err != nil {
					return err
				}
				d, closeDevice, err := command.OpenDevice(cfg, device)
				if err != nil {
					return err
				}
				defer closeDevice()
				d.WriteParam(p.Addr, p.Value, noIrq)
				log.Debug("Parameter 0x%04x written directly", p.Addr)
				return nil
			}
			apiClient := command.NewApiClient(cfg)
			return apiClient.ParamWrite(device, addr, value, noIrq)
		},
	}
	cmd.Flags().StringVar(&device, DeviceOptionName, "", "Device name")
	cmd.MarkFlagRequired(DeviceOptionName)
	cmd.Flags().StringVar(&addr, AddrOptionName, "", "Parameter address (hexadecimal)")
	cmd.MarkFlagRequired(AddrOptionName)
	cmd.Flags().StringVar(&value, ValueOptionName, "", "Parameter value (hexadecimal)")
	cmd.MarkFlagRequired(ValueOptionName)
	cmd.Flags().BoolVar(&noIrq, NoIrqOptionName, false, "Do not raise the parameter access IRQ")
	cmd.Flags().BoolVar(&direct, DirectOptionName, false, "Access the device directly instead of through the control server")

	return cmd
}
