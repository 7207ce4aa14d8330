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

func NewEmptyCommand(cfg *config.Config) *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "empty",
		Short: "Check if the access FIFO is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			var empty bool
			if o.direct {
				if err := withDevice(cfg, o.device, func(d *paramram.Device) error {
					empty = d.IsEmpty()
					return nil
				}); err != nil {
					return err
				}
			} else {
				var err error
				empty, err = command.NewApiClient(cfg).AccessEmpty(o.device)
				if err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Access FIFO empty: %t\n", empty)
			return nil
		},
	}
	o.addFlags(cmd)
	return cmd
}
