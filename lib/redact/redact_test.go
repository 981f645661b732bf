//
// See the file COPYRIGHT for copyright information.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package redact_test

import (
	"strings"
	"testing"

	"github.com/c5dispatch/cad-go/lib/redact"
	"github.com/stretchr/testify/assert"
)

type credentials struct {
	Handle   string
	Password string `redact:"true"`
}

type testConfig struct {
	Name    string
	Port    int32
	Secret  string `redact:"true"`
	Users   []credentials
	Sectors []string
}

func TestToBytesMasksTaggedFields(t *testing.T) {
	t.Parallel()
	cfg := testConfig{
		Name:   "cad",
		Port:   8080,
		Secret: "hunter2",
		Users: []credentials{
			{Handle: "Dispatch1", Password: "Dispatch1password"},
		},
		Sectors: []string{"NORTH", "SOUTH"},
	}

	// a pointer renders the same as a value
	rendered := string(redact.ToBytes(&cfg))

	assert.Contains(t, rendered, "Name = cad")
	assert.Contains(t, rendered, "Port = 8080")
	assert.Contains(t, rendered, "Secret = <redacted>")
	assert.Contains(t, rendered, "Handle = Dispatch1")
	assert.Contains(t, rendered, "Password = <redacted>")
	assert.Contains(t, rendered, "Users[0]")
	assert.Contains(t, rendered, "Sectors = [NORTH SOUTH]")

	assert.NotContains(t, rendered, "hunter2")
	assert.NotContains(t, rendered, "Dispatch1password")
}

func TestToBytesNestedStruct(t *testing.T) {
	t.Parallel()
	type outer struct {
		Inner credentials
	}
	rendered := string(redact.ToBytes(outer{Inner: credentials{Handle: "SysOp", Password: "pw"}}))

	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	assert.Equal(t, "Inner", lines[0])
	assert.Equal(t, "    Handle = SysOp", lines[1])
	assert.Equal(t, "    Password = <redacted>", lines[2])
}

func TestToBytesUnsupportedKind(t *testing.T) {
	t.Parallel()
	type bad struct {
		Lookup map[string]string
	}
	rendered := string(redact.ToBytes(bad{}))
	assert.Contains(t, rendered, "failed to render struct")
}
