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

package directory_test

import (
	"strings"
	"testing"

	"github.com/c5dispatch/cad-go/conf"
	"github.com/c5dispatch/cad-go/directory"
	"github.com/c5dispatch/cad-go/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *directory.UserStore {
	t.Helper()
	us, err := directory.NewUserStore([]conf.User{
		{Handle: "Dispatch1", Email: "dispatch1@c5.example", Password: "Dispatch1password", Role: store.RoleOperator},
		{Handle: "Watch Commander", Email: "watch@c5.example", Password: "WatchCommanderpassword", Role: store.RoleCoordinator},
	})
	require.NoError(t, err)
	return us
}

func TestNewUserStoreRejections(t *testing.T) {
	t.Parallel()

	_, err := directory.NewUserStore(nil)
	require.Error(t, err)

	// handles collide case-insensitively
	_, err = directory.NewUserStore([]conf.User{
		{Handle: "Dispatch1", Password: "pw1", Role: store.RoleOperator},
		{Handle: "DISPATCH1", Password: "pw2", Role: store.RoleOperator},
	})
	require.ErrorContains(t, err, "duplicate handle")
}

func TestLookup(t *testing.T) {
	t.Parallel()
	us := newTestStore(t)

	u, err := us.Lookup("dispatch1")
	require.NoError(t, err)
	assert.Equal(t, "Dispatch1", u.Handle)
	assert.Equal(t, store.RoleOperator, u.Role)

	// the stored password is hashed, never plain
	assert.True(t, strings.HasPrefix(u.HashedPassword, "$argon2id$"))
	assert.NotContains(t, u.HashedPassword, "Dispatch1password")

	_, err = us.Lookup("Nobody")
	require.ErrorIs(t, err, directory.ErrUnknownUser)
}

func TestVerify(t *testing.T) {
	t.Parallel()
	us := newTestStore(t)

	u, err := us.Verify("  Watch Commander ", "WatchCommanderpassword")
	require.NoError(t, err)
	assert.Equal(t, "Watch Commander", u.Handle)
	assert.Equal(t, store.RoleCoordinator, u.Role)

	// a wrong password and an unknown handle are indistinguishable
	_, err = us.Verify("Watch Commander", "not the password")
	require.ErrorIs(t, err, directory.ErrUnknownUser)
	_, err = us.Verify("Nobody", "WatchCommanderpassword")
	require.ErrorIs(t, err, directory.ErrUnknownUser)
}
