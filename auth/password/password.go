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

// Package password is the credential scheme for the operator directory.
// Stored values are Argon2id encoded hashes.
package password

import (
	"strings"

	"github.com/c5dispatch/cad-go/lib/argon2id"
)

// Params for new hashes. Verification reads the params out of the
// stored hash instead, so changing this does not invalidate anyone's
// existing credentials.
var Params = argon2id.DefaultParams

// NewHashed returns the value to store in the directory for a
// plain-text password.
func NewHashed(password string) string {
	return argon2id.CreateHash(password, Params)
}

// Verify reports whether password matches the stored hash.
func Verify(password, stored string) (bool, error) {
	if !strings.HasPrefix(stored, "$argon2id$") {
		return false, argon2id.ErrInvalidHash
	}
	return argon2id.ComparePasswordAndHash(password, stored)
}
