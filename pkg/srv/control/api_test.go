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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jinr.ru/greenlab/go-paramram/pkg/config"
)

func newTestServer(t *testing.T, cfg *config.Config) (*ControlServer, *httptest.Server) {
	s, err := NewControlServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewControlServer returned error: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.Close()
	})
	return s, ts
}

func getJSON(t *testing.T, url string, wantStatus int, v interface{}) {
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: expected status %d, got %d", url, wantStatus, resp.StatusCode)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("GET %s: can not decode response: %v", url, err)
		}
	}
}

func postParam(t *testing.T, url string, p *ParamHex) int {
	body, _ := json.Marshal(p)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestApiParamReadWrite(t *testing.T) {
	_, ts := newTestServer(t, testConfig(t))

	if code := postParam(t, ts.URL+"/api/param/w/sim0", &ParamHex{Addr: "0x0020", Value: "0xdeadbeef"}); code != http.StatusOK {
		t.Fatalf("write returned status %d", code)
	}
	if code := postParam(t, ts.URL+"/api/param/w/sim0", &ParamHex{Addr: "0x8", Value: "0x2", SuppressIrq: true}); code != http.StatusOK {
		t.Fatalf("write returned status %d", code)
	}

	p := &ParamHex{}
	getJSON(t, ts.URL+"/api/param/r/sim0/0x0020", http.StatusOK, p)
	if p.Addr != "0x0020" || p.Value != "0xdeadbeef" {
		t.Fatalf("unexpected parameter %+v", p)
	}

	var all []*ParamHex
	getJSON(t, ts.URL+"/api/param/r/sim0", http.StatusOK, &all)
	if len(all) != 2 || all[0].Addr != "0x0008" || all[0].Value != "0x00000002" {
		t.Fatalf("unexpected parameter list %+v", all)
	}

	getJSON(t, ts.URL+"/api/param/r/sim1", http.StatusOK, &all)
	if len(all) != 0 {
		t.Fatalf("sim1 should have no parameters, got %+v", all)
	}
}

func TestApiAccessFifo(t *testing.T) {
	_, ts := newTestServer(t, testConfig(t))

	empty := &EmptyResp{}
	getJSON(t, ts.URL+"/api/access/empty/sim0", http.StatusOK, empty)
	if !empty.Empty {
		t.Fatalf("FIFO of fresh device should be empty")
	}

	for _, addr := range []string{"0x10", "0x14", "0x18"} {
		postParam(t, ts.URL+"/api/param/w/sim0", &ParamHex{Addr: addr, Value: "0x1"})
	}
	postParam(t, ts.URL+"/api/param/w/sim0", &ParamHex{Addr: "0x1c", Value: "0x1", SuppressIrq: true})

	getJSON(t, ts.URL+"/api/access/empty/sim0", http.StatusOK, empty)
	if empty.Empty {
		t.Fatalf("FIFO should hold accesses")
	}

	access := &AccessResp{}
	getJSON(t, ts.URL+"/api/access/addr/sim0", http.StatusOK, access)
	if access.Addr != "0x0010" {
		t.Fatalf("expected head 0x0010, got %s", access.Addr)
	}

	drain := &DrainResp{}
	getJSON(t, ts.URL+"/api/access/drain/sim0?max=1", http.StatusOK, drain)
	if len(drain.Addrs) != 1 || drain.Addrs[0] != "0x0014" {
		t.Fatalf("unexpected drain %+v", drain.Addrs)
	}
	getJSON(t, ts.URL+"/api/access/drain/sim0", http.StatusOK, drain)
	if len(drain.Addrs) != 1 || drain.Addrs[0] != "0x0018" {
		t.Fatalf("unexpected drain %+v", drain.Addrs)
	}
	getJSON(t, ts.URL+"/api/access/drain/sim0", http.StatusOK, drain)
	if len(drain.Addrs) != 0 {
		t.Fatalf("FIFO should be empty, drained %+v", drain.Addrs)
	}
}

func TestApiErrors(t *testing.T) {
	_, ts := newTestServer(t, testConfig(t))

	getJSON(t, ts.URL+"/api/param/r/nope/0x0010", http.StatusNotFound, nil)
	getJSON(t, ts.URL+"/api/access/empty/nope", http.StatusNotFound, nil)
	getJSON(t, ts.URL+"/api/access/drain/sim0?max=0", http.StatusBadRequest, nil)
	getJSON(t, ts.URL+"/api/access/drain/sim0?max=many", http.StatusBadRequest, nil)
	// address does not match the route pattern
	getJSON(t, ts.URL+"/api/param/r/sim0/16", http.StatusNotFound, nil)

	if code := postParam(t, ts.URL+"/api/param/w/sim0", &ParamHex{Addr: "0x10000", Value: "0x1"}); code != http.StatusBadRequest {
		t.Fatalf("wide address: expected 400, got %d", code)
	}
	if code := postParam(t, ts.URL+"/api/param/w/nope", &ParamHex{Addr: "0x10", Value: "0x1"}); code != http.StatusNotFound {
		t.Fatalf("unknown device: expected 404, got %d", code)
	}
	resp, err := http.Post(ts.URL+"/api/param/w/sim0", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %d", resp.StatusCode)
	}
}

func TestApiDevicesAndDocs(t *testing.T) {
	_, ts := newTestServer(t, testConfig(t))

	var devices []*DeviceInfo
	getJSON(t, ts.URL+"/api/devices", http.StatusOK, &devices)
	if len(devices) != 2 || devices[0].Name != "sim0" || devices[0].Base != "0x43c00000" || !devices[1].Simulated {
		t.Fatalf("unexpected devices %+v", devices)
	}

	var doc map[string]interface{}
	getJSON(t, ts.URL+"/swagger.json", http.StatusOK, &doc)
	if doc["swagger"] != "2.0" {
		t.Fatalf("unexpected API document %v", doc["swagger"])
	}

	resp, err := http.Get(ts.URL + "/docs")
	if err != nil {
		t.Fatalf("GET /docs: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /docs: expected 200, got %d", resp.StatusCode)
	}
}

func TestRestoreOnStart(t *testing.T) {
	cfg := testConfig(t)
	s, ts := newTestServer(t, cfg)
	postParam(t, ts.URL+"/api/param/w/sim0", &ParamHex{Addr: "0x40", Value: "0x77"})
	ts.Close()
	s.Close()

	// simulated RAM starts blank, the value comes back from the state database
	cfg.Restore = true
	s, ts = newTestServer(t, cfg)
	p := &ParamHex{}
	getJSON(t, ts.URL+"/api/param/r/sim0/0x40", http.StatusOK, p)
	if p.Value != "0x00000077" {
		t.Fatalf("expected restored value 0x00000077, got %s", p.Value)
	}
	empty := &EmptyResp{}
	getJSON(t, ts.URL+"/api/access/empty/sim0", http.StatusOK, empty)
	if !empty.Empty {
		t.Fatalf("restore must not queue accesses")
	}
	d, err := s.GetDeviceByName("sim0")
	if err != nil || d.GetName() != "sim0" {
		t.Fatalf("GetDeviceByName returned %v", err)
	}
	if len(s.GetAllDevices()) != 2 {
		t.Fatalf("expected 2 devices")
	}
}
