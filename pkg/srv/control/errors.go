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
)

// ErrUnknownOperation returned when the request does not map to any operation
type ErrUnknownOperation struct {
	What string
}

func (e ErrUnknownOperation) Error() string {
	return fmt.Sprintf("Unknown operation: %s", e.What)
}

// ErrBucketNotFound returned when the state database has no bucket for a device
type ErrBucketNotFound struct {
	Bucket string
}

func (e ErrBucketNotFound) Error() string {
	return fmt.Sprintf("Bucket not found: %s", e.Bucket)
}

// ErrParamNotFound returned when no value was ever written to the parameter
type ErrParamNotFound struct {
	Addr   uint16
	Device string
}

func (e ErrParamNotFound) Error() string {
	return fmt.Sprintf("Parameter not found: device: %s addr: 0x%04x", e.Device, e.Addr)
}
