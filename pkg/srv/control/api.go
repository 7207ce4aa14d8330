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

// go-paramram API
//
// # RESTful APIs to access AXI parameter RAM peripherals
//
// Schemes: http
// Host: localhost:8010
// Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package control

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-openapi/loads"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-paramram/pkg/config"
	devicepkg "jinr.ru/greenlab/go-paramram/pkg/device"
	"jinr.ru/greenlab/go-paramram/pkg/log"
	"jinr.ru/greenlab/go-paramram/pkg/param"
	"jinr.ru/greenlab/go-paramram/pkg/srv/control/ifc"
)

const (
	ShutdownTimeout = 5 * time.Second
)

// ParamHex ...
type ParamHex struct {
	Addr        string `json:"addr"`  // hexadecimal
	Value       string `json:"value"` // hexadecimal
	SuppressIrq bool   `json:"suppress_irq,omitempty"`
}

type EmptyResp struct {
	Empty bool `json:"empty"`
}

type AccessResp struct {
	Addr string `json:"addr"` // hexadecimal
}

type DrainResp struct {
	Addrs []string `json:"addrs"` // hexadecimal
}

type DeviceInfo struct {
	Name      string `json:"name"`
	Base      string `json:"base"`
	Simulated bool   `json:"simulated"`
}

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	ctrl ifc.ControlServer
	doc  *loads.Document
}

var _ ifc.ApiServer = &ApiServer{}

func NewApiServer(ctx context.Context, cfg *config.Config, ctrl ifc.ControlServer) (*ApiServer, error) {
	log.Info("Initializing API server with address: %s port: %d", cfg.Address, cfg.Port)

	doc, err := loadApiDoc()
	if err != nil {
		return nil, err
	}

	s := &ApiServer{
		Context: ctx,
		Config:  cfg,
		ctrl:    ctrl,
		doc:     doc,
	}
	s.configureRouter()
	return s, nil
}

func addrHex(addr uint16) string {
	return fmt.Sprintf("0x%04x", addr)
}

func paramToHex(p *param.Param) *ParamHex {
	hexAddr, hexValue := p.Hex()
	return &ParamHex{Addr: hexAddr, Value: hexValue}
}

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	log.Error("API handler panic: %s", fmt.Sprint(v...))
}

// Handler returns the router wrapped with panic recovery and, at debug
// level, with an access log
func (s *ApiServer) Handler() http.Handler {
	var h http.Handler = s.Router
	if log.IsDebug() {
		h = handlers.LoggingHandler(log.Writer(), h)
	}
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
		handlers.PrintRecoveryStack(log.IsDebug()),
	)(h)
}

// Run serves the API until the context is done
func (s *ApiServer) Run() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Address, s.Config.Port)
	log.Info("Starting API server: %s", addr)
	httpServer := &http.Server{
		Handler:           s.Handler(),
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case <-s.Context.Done():
		log.Info("Stopping API server")
		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			return err
		}
		return s.Context.Err()
	case err := <-errChan:
		return err
	}
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	// swagger:operation GET /api/devices devices
	// ---
	// summary: list configured devices
	subRouter.HandleFunc("/devices", s.handleDevices()).Methods("GET")
	// swagger:operation GET /api/param/r/{device}/{addr} param
	// ---
	// summary: read parameter
	subRouter.HandleFunc("/param/r/{device}/{addr:0x[0-9a-fA-F]{1,4}}", s.handleParamRead()).Methods("GET")
	// swagger:operation GET /api/param/r/{device} param
	// ---
	// summary: read all parameters written through the API
	subRouter.HandleFunc("/param/r/{device}", s.handleParamReadAll()).Methods("GET")
	// swagger:operation POST /api/param/w/{device} param
	// ---
	// summary: write parameter
	subRouter.HandleFunc("/param/w/{device}", s.handleParamWrite()).Methods("POST")
	// swagger:operation GET /api/access/{action}/{device} access
	// ---
	// summary: access FIFO status, head address or drain
	subRouter.HandleFunc("/access/{action:empty|addr|drain}/{device}", s.handleAccess()).Methods("GET")
	s.Router.HandleFunc("/swagger.json", s.handleApiDoc()).Methods("GET")
	s.Router.Handle("/docs", apiDocUI()).Methods("GET")
}

// deviceError maps device layer errors to HTTP status codes
func deviceError(w http.ResponseWriter, err error) {
	var notFound config.ErrDeviceNotFound
	var hwErr devicepkg.ErrHardwareAccess
	switch {
	case errors.As(err, &notFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &hwErr):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Error while encoding response: %s", err)
	}
}

func (s *ApiServer) handleDevices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling devices request")
		devices := []*DeviceInfo{}
		for _, deviceCfg := range s.Config.Devices {
			d, err := s.ctrl.GetDeviceByName(deviceCfg.Name)
			if err != nil {
				continue
			}
			devices = append(devices, &DeviceInfo{
				Name:      d.GetName(),
				Base:      fmt.Sprintf("0x%08x", d.GetBase()),
				Simulated: d.IsSimulated(),
			})
		}
		writeJSON(w, devices)
	}
}

func (s *ApiServer) handleParamRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling param read request: device: %s, addr: %s", vars["device"], vars["addr"])

		addr, err := param.ParseAddr(vars["addr"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		d, err := s.ctrl.GetDeviceByName(vars["device"])
		if err != nil {
			deviceError(w, err)
			return
		}
		p, err := d.ParamRead(addr)
		if err != nil {
			deviceError(w, err)
			return
		}
		writeJSON(w, paramToHex(p))
	}
}

func (s *ApiServer) handleParamReadAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling param read all request: device: %s", vars["device"])

		d, err := s.ctrl.GetDeviceByName(vars["device"])
		if err != nil {
			deviceError(w, err)
			return
		}
		params, err := d.ParamReadAll()
		if err != nil {
			deviceError(w, err)
			return
		}
		paramsHex := []*ParamHex{}
		for _, p := range params {
			paramsHex = append(paramsHex, paramToHex(p))
		}
		writeJSON(w, paramsHex)
	}
}

func (s *ApiServer) handleParamWrite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		paramHex := &ParamHex{}
		err := json.NewDecoder(r.Body).Decode(paramHex)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Debug("Handling param write request: device: %s addr: %s value: %s suppress irq: %t",
			vars["device"], paramHex.Addr, paramHex.Value, paramHex.SuppressIrq)

		p, err := param.NewParamFromHex(paramHex.Addr, paramHex.Value)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		d, err := s.ctrl.GetDeviceByName(vars["device"])
		if err != nil {
			deviceError(w, err)
			return
		}
		if err = d.ParamWrite(p, paramHex.SuppressIrq); err != nil {
			deviceError(w, err)
			return
		}
		writeJSON(w, paramToHex(p))
	}
}

func (s *ApiServer) drainMax(r *http.Request) (int, error) {
	max := s.Config.DrainMax
	if max <= 0 {
		max = config.DefaultDrainMax
	}
	if q := r.URL.Query().Get("max"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			return 0, err
		}
		if n <= 0 {
			return 0, ErrUnknownOperation{What: "max must be positive"}
		}
		max = n
	}
	return max, nil
}

func (s *ApiServer) handleAccess() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling access request: device: %s action: %s", vars["device"], vars["action"])

		d, err := s.ctrl.GetDeviceByName(vars["device"])
		if err != nil {
			deviceError(w, err)
			return
		}
		switch vars["action"] {
		case "empty":
			empty, err := d.IsEmpty()
			if err != nil {
				deviceError(w, err)
				return
			}
			writeJSON(w, &EmptyResp{Empty: empty})
		case "addr":
			addr, err := d.AccessAddr()
			if err != nil {
				deviceError(w, err)
				return
			}
			writeJSON(w, &AccessResp{Addr: addrHex(addr)})
		case "drain":
			max, err := s.drainMax(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			addrs, err := d.AccessDrain(max)
			if err != nil {
				deviceError(w, err)
				return
			}
			resp := &DrainResp{Addrs: []string{}}
			for _, a := range addrs {
				resp.Addrs = append(resp.Addrs, addrHex(a))
			}
			writeJSON(w, resp)
		default:
			err := ErrUnknownOperation{
				What: "Wrong access action. Must be one of empty/addr/drain",
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
}
