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

package password_test

import (
	"testing"

	"github.com/c5dispatch/cad-go/auth/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHashedAndVerify(t *testing.T) {
	t.Parallel()
	pw := "this is my password"
	stored := password.NewHashed(pw)

	isValid, err := password.Verify(pw, stored)
	require.NoError(t, err)
	assert.True(t, isValid)

	isValid, err = password.Verify("wrong password", stored)
	require.NoError(t, err)
	assert.False(t, isValid)
}

func TestVerifyBadStoredValue(t *testing.T) {
	t.Parallel()
	_, err := password.Verify("some_password", "not-an-encoded-hash")
	require.Error(t, err)

	_, err = password.Verify("some_password", "")
	require.Error(t, err)
}
