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
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"jinr.ru/greenlab/go-paramram/pkg/config"
	"jinr.ru/greenlab/go-paramram/pkg/log"
	"jinr.ru/greenlab/go-paramram/pkg/param"
	"jinr.ru/greenlab/go-paramram/pkg/srv/control/ifc"
)

const (
	BucketNamePrefix = "param_"
)

type ParamState struct {
	context.Context
	DB *bbolt.DB
}

var _ ifc.State = &ParamState{}

func NewParamState(ctx context.Context, cfg *config.Config) (*ParamState, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, err
	}
	// open parameter database
	db, err := bbolt.Open(cfg.DBPath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open state database %s: %w", cfg.DBPath, err)
	}
	// create buckets in the parameter database for all devices
	if err = db.Update(func(tx *bbolt.Tx) error {
		for _, device := range cfg.Devices {
			_, err = tx.CreateBucketIfNotExists([]byte(bucketName(device.Name)))
			if err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &ParamState{
		Context: ctx,
		DB:      db,
	}, nil
}

func uint16ToByte(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func uint32ToByte(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func bucketName(deviceName string) string {
	return fmt.Sprintf("%s%s", BucketNamePrefix, deviceName)
}

// Close ...
func (s *ParamState) Close() error {
	return s.DB.Close()
}

// SetParam ...
func (s *ParamState) SetParam(p *param.Param, deviceName string) error {
	log.Debug("Setting parameter: device: %s addr: 0x%04x value: 0x%08x", deviceName, p.Addr, p.Value)
	return s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(deviceName)))
		if b == nil {
			return ErrBucketNotFound{Bucket: bucketName(deviceName)}
		}
		return b.Put(uint16ToByte(p.Addr), uint32ToByte(p.Value))
	})
}

// GetParam ...
func (s *ParamState) GetParam(addr uint16, deviceName string) (*param.Param, error) {
	log.Debug("Getting parameter: device: %s addr: 0x%04x", deviceName, addr)
	var value uint32
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(deviceName)))
		if b == nil {
			return ErrBucketNotFound{Bucket: bucketName(deviceName)}
		}
		valueBytes := b.Get(uint16ToByte(addr))
		if valueBytes == nil {
			return ErrParamNotFound{Addr: addr, Device: deviceName}
		}
		value = binary.BigEndian.Uint32(valueBytes)
		return nil
	}); err != nil {
		return nil, err
	}
	return &param.Param{
		Addr:  addr,
		Value: value,
	}, nil
}

// GetParamAll returns the persisted parameters sorted by address
func (s *ParamState) GetParamAll(deviceName string) ([]*param.Param, error) {
	log.Debug("Getting all parameters: device: %s", deviceName)
	params := []*param.Param{}
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(deviceName)))
		if b == nil {
			return ErrBucketNotFound{Bucket: bucketName(deviceName)}
		}
		// big endian keys keep the cursor in address order
		return b.ForEach(func(k, v []byte) error {
			params = append(params, &param.Param{
				Addr:  binary.BigEndian.Uint16(k),
				Value: binary.BigEndian.Uint32(v),
			})
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return params, nil
}
