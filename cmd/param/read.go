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
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-paramram/pkg/command"
	"jinr.ru/greenlab/go-paramram/pkg/config"
	pkgparam "jinr.ru/greenlab/go-paramram/pkg/param"
)

func NewReadCommand(cfg *config.Config) *cobra.Command {
	var device, addr string
	var direct bool
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read parameter value",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if direct {
				if addr == "" {
					return errors.New("--addr is required with --direct")
				}
				a, err := pkgparam.ParseAddr(addr)
				if err != nil {
					return err
				}
				d, closeDevice, err := command.OpenDevice(cfg, device)
				if err != nil {
					return err
				}
				defer closeDevice()
				p := &pkgparam.Param{Addr: a, Value: d.ReadParam(a)}
				hexAddr, hexValue := p.Hex()
				fmt.Fprintf(out, "Parameter: %s = %s\n", hexAddr, hexValue)
				return nil
			}

			apiClient := command.NewApiClient(cfg)
			if addr != "" {
				value, err := apiClient.ParamRead(device, addr)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Parameter: %s = %s\n", addr, value)
				return nil
			}
			params, err := apiClient.ParamReadAll(device)
			if err != nil {
				return err
			}
			var keys []string
			for key := range params {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(out, "Parameter: %s = %s\n", key, params[key])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&device, DeviceOptionName, "", "Device name")
	cmd.MarkFlagRequired(DeviceOptionName)
	cmd.Flags().StringVar(&addr, AddrOptionName, "", "Parameter address (hexadecimal). All known parameters if omitted")
	cmd.Flags().BoolVar(&direct, DirectOptionName, false, "Access the device directly instead of through the control server")

	return cmd
}
