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
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-paramram/pkg/command"
	"jinr.ru/greenlab/go-paramram/pkg/config"
)

const (
	IPOptionName      = "ip"
	PortOptionName    = "port"
	RestoreOptionName = "restore"
)

func NewStartCommand(cfg *config.Config) *cobra.Command {
	var ip string
	var port int
	var restore bool
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start control server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ip != "" {
				if net.ParseIP(ip) == nil {
					return fmt.Errorf("wrong IP address: %s", ip)
				}
				cfg.Address = ip
			}
			if port != 0 {
				cfg.Port = port
			}
			if restore {
				cfg.Restore = true
			}
			return command.StartControlServer(cfg)
		},
	}
	cmd.Flags().StringVar(&ip, IPOptionName, "", fmt.Sprintf("IP to bind. E.g. %s", config.DefaultApiAddress))
	cmd.Flags().IntVar(&port, PortOptionName, 0, fmt.Sprintf("Port to bind. E.g. %d", config.DefaultApiPort))
	cmd.Flags().BoolVar(&restore, RestoreOptionName, false, "Write persisted parameter values back on start")

	return cmd
}
