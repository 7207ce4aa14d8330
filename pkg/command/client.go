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
	"errors"
	"fmt"
	"net/http"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-paramram/pkg/command/ifc"
	"jinr.ru/greenlab/go-paramram/pkg/config"
	"jinr.ru/greenlab/go-paramram/pkg/srv/control"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

var _ ifc.ApiClient = &ApiClient{}

func NewApiClient(cfg *config.Config) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s:%d/api", cfg.Address, cfg.Port),
	}
}

func (c *ApiClient) paramReadUrl(device, addr string) string {
	if addr == "" {
		return fmt.Sprintf("%s/param/r/%s", c.ApiPrefix, device)
	}
	return fmt.Sprintf("%s/param/r/%s/%s", c.ApiPrefix, device, addr)
}

func (c *ApiClient) paramWriteUrl(device string) string {
	return fmt.Sprintf("%s/param/w/%s", c.ApiPrefix, device)
}

func (c *ApiClient) accessUrl(action, device string) string {
	return fmt.Sprintf("%s/access/%s/%s", c.ApiPrefix, action, device)
}

// checkStatus turns a non 200 response into an error carrying the server message
func checkStatus(r *req.Resp) error {
	resp := r.Response()
	if resp.StatusCode != http.StatusOK {
		msg := r.String()
		if msg == "" {
			return errors.New(resp.Status)
		}
		return fmt.Errorf("%s: %s", resp.Status, msg)
	}
	return nil
}

// Devices sends request to list devices served by the control server
func (c *ApiClient) Devices() ([]*control.DeviceInfo, error) {
	r, err := req.Get(fmt.Sprintf("%s/devices", c.ApiPrefix))
	if err != nil {
		return nil, err
	}
	if err = checkStatus(r); err != nil {
		return nil, err
	}
	var devices []*control.DeviceInfo
	if err = r.ToJSON(&devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// ParamRead sends request to get the value of a parameter of a device
func (c *ApiClient) ParamRead(device, addr string) (string, error) {
	r, err := req.Get(c.paramReadUrl(device, addr))
	if err != nil {
		return "", err
	}
	if err = checkStatus(r); err != nil {
		return "", err
	}
	p := &control.ParamHex{}
	if err = r.ToJSON(p); err != nil {
		return "", err
	}
	return p.Value, nil
}

// ParamReadAll sends request to get values of all known parameters of a device
func (c *ApiClient) ParamReadAll(device string) (map[string]string, error) {
	r, err := req.Get(c.paramReadUrl(device, ""))
	if err != nil {
		return nil, err
	}
	if err = checkStatus(r); err != nil {
		return nil, err
	}
	var params []*control.ParamHex
	if err = r.ToJSON(&params); err != nil {
		return nil, err
	}
	result := make(map[string]string)
	for _, p := range params {
		result[p.Addr] = p.Value
	}
	return result, nil
}

// ParamWrite sends request to write the value to a parameter of a device
func (c *ApiClient) ParamWrite(device, addr, value string, suppressIrq bool) error {
	p := &control.ParamHex{
		Addr:        addr,
		Value:       value,
		SuppressIrq: suppressIrq,
	}
	r, err := req.Post(c.paramWriteUrl(device), req.BodyJSON(p))
	if err != nil {
		return err
	}
	return checkStatus(r)
}

// AccessEmpty sends request to check if the access FIFO of a device is empty
func (c *ApiClient) AccessEmpty(device string) (bool, error) {
	r, err := req.Get(c.accessUrl("empty", device))
	if err != nil {
		return false, err
	}
	if err = checkStatus(r); err != nil {
		return false, err
	}
	resp := &control.EmptyResp{}
	if err = r.ToJSON(resp); err != nil {
		return false, err
	}
	return resp.Empty, nil
}

// AccessAddr sends request to pop the address at the head of the access FIFO
func (c *ApiClient) AccessAddr(device string) (string, error) {
	r, err := req.Get(c.accessUrl("addr", device))
	if err != nil {
		return "", err
	}
	if err = checkStatus(r); err != nil {
		return "", err
	}
	resp := &control.AccessResp{}
	if err = r.ToJSON(resp); err != nil {
		return "", err
	}
	return resp.Addr, nil
}

// AccessDrain sends request to read up to max addresses from the access FIFO
func (c *ApiClient) AccessDrain(device string, max int) ([]string, error) {
	url := c.accessUrl("drain", device)
	if max > 0 {
		url = fmt.Sprintf("%s?max=%d", url, max)
	}
	r, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	if err = checkStatus(r); err != nil {
		return nil, err
	}
	resp := &control.DrainResp{}
	if err = r.ToJSON(resp); err != nil {
		return nil, err
	}
	return resp.Addrs, nil
}
