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

package auth_test

import (
	"testing"
	"time"

	"github.com/c5dispatch/cad-go/auth"
	"github.com/c5dispatch/cad-go/store"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetValidJWT(t *testing.T) {
	t.Parallel()
	jwter := auth.JWTer{SecretKey: "some-secret"}
	j, err := jwter.CreateSessionToken("Dispatch1", store.RoleOperator, 1*time.Hour)
	require.NoError(t, err)

	claims, err := jwter.AuthenticateSessionToken(j)
	require.NoError(t, err)
	sub, err := claims.GetSubject()
	require.NoError(t, err)
	require.Equal(t, "Dispatch1", claims.OperatorHandle())
	require.Equal(t, "Dispatch1", sub)
	require.Equal(t, store.RoleOperator, claims.OperatorRole())
	require.Equal(t, store.Actor{Name: "Dispatch1", Role: store.RoleOperator}, claims.Actor())
}

func TestCreateAndGetInvalidJWTs(t *testing.T) {
	t.Parallel()
	jwter := auth.JWTer{SecretKey: "some-secret"}
	expiredJWT, err := jwter.CreateSessionToken("Dispatch1", store.RoleOperator, -1*time.Hour)
	require.NoError(t, err)
	differentKeyJWT, err := auth.JWTer{SecretKey: "some-other-secret"}.
		CreateSessionToken("Dispatch1", store.RoleOperator, 1*time.Hour)
	require.NoError(t, err)

	_, err = jwter.AuthenticateSessionToken(expiredJWT)
	require.Error(t, err)
	require.Contains(t, err.Error(), "expired")
	_, err = jwter.AuthenticateSessionToken(differentKeyJWT)
	require.Error(t, err)
	require.Contains(t, err.Error(), "signature is invalid")
	_, err = jwter.AuthenticateSessionToken("")
	require.Error(t, err)
}

func TestBogusRoleIsRejected(t *testing.T) {
	t.Parallel()
	jwter := auth.JWTer{SecretKey: "some-secret"}
	j, err := jwter.CreateSessionToken("Dispatch1", "INTRUDER", 1*time.Hour)
	require.NoError(t, err)
	_, err = jwter.AuthenticateSessionToken(j)
	require.Error(t, err)
	require.Contains(t, err.Error(), "role")
}
