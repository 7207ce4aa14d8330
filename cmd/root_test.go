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

package cmd

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv writes a config with one device backed by a regular file,
// so direct access works without /dev/mem.
func testEnv(t *testing.T) (configPath, memPath string) {
	dir := t.TempDir()
	memPath = filepath.Join(dir, "mem")
	if err := os.WriteFile(memPath, make([]byte, 0x2000), 0600); err != nil {
		t.Fatalf("can not create backing file: %v", err)
	}
	configPath = filepath.Join(dir, "config")
	data := fmt.Sprintf(`log_level: error
db_path: %s
devices:
- name: fpga
  base: "0x0"
  map_size: 8192
  devmem: %s
`, filepath.Join(dir, "params.db"), memPath)
	if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
		t.Fatalf("can not write config: %v", err)
	}
	return configPath, memPath
}

func run(t *testing.T, args ...string) (string, error) {
	out := &bytes.Buffer{}
	root := NewRootCommand(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestDirectParamAccess(t *testing.T) {
	configPath, memPath := testEnv(t)

	if _, err := run(t, "--config", configPath, "param", "write", "--direct", "--device", "fpga", "--addr", "0x10", "--value", "0xabcd"); err != nil {
		t.Fatalf("param write returned error: %v", err)
	}
	out, err := run(t, "--config", configPath, "param", "read", "--direct", "--device", "fpga", "--addr", "0x10")
	if err != nil {
		t.Fatalf("param read returned error: %v", err)
	}
	if !strings.Contains(out, "Parameter: 0x0010 = 0x0000abcd") {
		t.Fatalf("unexpected output %q", out)
	}

	data, err := os.ReadFile(memPath)
	if err != nil {
		t.Fatalf("can not read backing file: %v", err)
	}
	if v := binary.LittleEndian.Uint32(data[0x20:]); v != 0xabcd && binary.BigEndian.Uint32(data[0x20:]) != 0xabcd {
		t.Fatalf("value not stored at base+0x10+0x10: % x", data[0x20:0x24])
	}

	if _, err := run(t, "--config", configPath, "param", "write", "--direct", "--device", "fpga", "--addr", "0x10", "--value", "0x1", "--no-irq"); err != nil {
		t.Fatalf("param write --no-irq returned error: %v", err)
	}
	data, _ = os.ReadFile(memPath)
	if data[0x1020] == 0 && data[0x1023] == 0 {
		t.Fatalf("no-IRQ write did not land at base+0x1010+0x10")
	}

	if _, err := run(t, "--config", configPath, "param", "read", "--direct", "--device", "fpga"); err == nil {
		t.Fatalf("direct read without address did not fail")
	}
	if _, err := run(t, "--config", configPath, "param", "read", "--direct", "--device", "nope", "--addr", "0x0"); err == nil {
		t.Fatalf("unknown device did not fail")
	}
}

func TestDirectAccessFifo(t *testing.T) {
	configPath, memPath := testEnv(t)

	out, err := run(t, "--config", configPath, "access", "empty", "--direct", "--device", "fpga")
	if err != nil || !strings.Contains(out, "Access FIFO empty: false") {
		t.Fatalf("unexpected output %q (%v)", out, err)
	}

	f, err := os.OpenFile(memPath, os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("can not open backing file: %v", err)
	}
	word := make([]byte, 4)
	// status word with the empty bit, address register with junk in the upper half
	binary.LittleEndian.PutUint32(word, 1)
	f.WriteAt(word, 0)
	binary.LittleEndian.PutUint32(word, 0x000a1234)
	f.WriteAt(word, 4)
	f.Close()

	out, err = run(t, "--config", configPath, "access", "empty", "--direct", "--device", "fpga")
	if err != nil || !strings.Contains(out, "Access FIFO empty: true") {
		t.Fatalf("unexpected output %q (%v)", out, err)
	}
	out, err = run(t, "--config", configPath, "access", "get", "--direct", "--device", "fpga")
	if err != nil || !strings.Contains(out, "Access address: 0x1234") {
		t.Fatalf("unexpected output %q (%v)", out, err)
	}
	out, err = run(t, "--config", configPath, "access", "drain", "--direct", "--device", "fpga")
	if err != nil || strings.Contains(out, "Access address") {
		t.Fatalf("drain of empty FIFO printed %q (%v)", out, err)
	}
}

func TestConfigCommands(t *testing.T) {
	configPath, _ := testEnv(t)

	out, err := run(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show returned error: %v", err)
	}
	if !strings.Contains(out, "name: fpga") {
		t.Fatalf("config show output misses the device: %q", out)
	}

	if _, err := run(t, "--config", configPath, "config", "init"); err == nil {
		t.Fatalf("config init overwrote an existing file")
	}
	newPath := filepath.Join(t.TempDir(), "new", "config")
	if _, err := run(t, "--config", newPath, "config", "init"); err != nil {
		t.Fatalf("config init returned error: %v", err)
	}
	if _, err := os.Stat(newPath); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
}

func TestBadLogLevel(t *testing.T) {
	configPath, _ := testEnv(t)
	if _, err := run(t, "--config", configPath, "--log-level", "loud", "config", "show"); err == nil {
		t.Fatalf("unknown log level accepted")
	}
}

func TestCompletion(t *testing.T) {
	out, err := run(t, "completion")
	if err != nil || !strings.Contains(out, "go-paramram") {
		t.Fatalf("completion failed: %v", err)
	}
}
