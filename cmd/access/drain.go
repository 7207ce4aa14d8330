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
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-paramram/pkg/command"
	"jinr.ru/greenlab/go-paramram/pkg/config"
	"jinr.ru/greenlab/go-paramram/pkg/paramram"
)

func NewDrainCommand(cfg *config.Config) *cobra.Command {
	o := &options{}
	var max int
	cmd := &cobra.Command{
		Use:   "drain",
		Short: "Read addresses from the access FIFO until it is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			if max <= 0 {
				max = cfg.DrainMax
			}
			if max <= 0 {
				max = config.DefaultDrainMax
			}
			var addrs []string
			if o.direct {
				if err := withDevice(cfg, o.device, func(d *paramram.Device) error {
					for _, a := range d.DrainAccesses(max) {
						addrs = append(addrs, fmt.Sprintf("0x%04x", a))
					}
					return nil
				}); err != nil {
					return err
				}
			} else {
				var err error
				addrs, err = command.NewApiClient(cfg).AccessDrain(o.device, max)
				if err != nil {
					return err
				}
			}
			for _, a := range addrs {
				fmt.Fprintf(cmd.OutOrStdout(), "Access address: %s\n", a)
			}
			return nil
		},
	}
	o.addFlags(cmd)
	cmd.Flags().IntVar(&max, MaxOptionName, 0, fmt.Sprintf("Maximum number of addresses to read. Default %d", config.DefaultDrainMax))
	return cmd
}
