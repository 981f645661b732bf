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

// Package directory resolves operator credentials and roles. It is
// built once at startup from the configured user list; passwords are
// hashed on the way in and never retained in plain text.
package directory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/c5dispatch/cad-go/auth/password"
	"github.com/c5dispatch/cad-go/conf"
	"github.com/c5dispatch/cad-go/store"
)

var ErrUnknownUser = errors.New("unknown user")

type User struct {
	Handle         string
	Email          string
	Role           store.Role
	HashedPassword string
}

type UserStore struct {
	byHandle map[string]User
}

func NewUserStore(users []conf.User) (*UserStore, error) {
	if len(users) == 0 {
		return nil, errors.New("NewUserStore: at least one directory user must be provided")
	}
	us := &UserStore{byHandle: make(map[string]User, len(users))}
	for _, u := range users {
		key := canonical(u.Handle)
		if _, ok := us.byHandle[key]; ok {
			return nil, fmt.Errorf("NewUserStore: duplicate handle %v", u.Handle)
		}
		us.byHandle[key] = User{
			Handle:         u.Handle,
			Email:          u.Email,
			Role:           u.Role,
			HashedPassword: password.NewHashed(u.Password),
		}
	}
	return us, nil
}

// Lookup finds a user by handle. Matching is case-insensitive, but the
// returned user carries the handle as configured.
func (us *UserStore) Lookup(handle string) (User, error) {
	u, ok := us.byHandle[canonical(handle)]
	if !ok {
		return User{}, fmt.Errorf("no directory entry for %q: %w", handle, ErrUnknownUser)
	}
	return u, nil
}

// Verify checks a login attempt and returns the matched user. A failed
// password and an unknown handle both come back as ErrUnknownUser so
// that the API cannot leak which handles exist.
func (us *UserStore) Verify(handle, plainPassword string) (User, error) {
	u, err := us.Lookup(handle)
	if err != nil {
		return User{}, err
	}
	ok, err := password.Verify(plainPassword, u.HashedPassword)
	if err != nil {
		return User{}, fmt.Errorf("[password.Verify]: %w", err)
	}
	if !ok {
		return User{}, ErrUnknownUser
	}
	return u, nil
}

func canonical(handle string) string {
	return strings.ToLower(strings.TrimSpace(handle))
}
