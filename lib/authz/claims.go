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

package authz

import (
	"time"

	"github.com/c5dispatch/cad-go/store"
	"github.com/golang-jwt/jwt/v5"
)

// CADClaims are the session token claims for a dispatch operator. The
// role travels in the token so that every write operation can derive
// its Actor without a directory round trip.
type CADClaims struct {
	jwt.RegisteredClaims
	Handle string `json:"han"`
	Role   string `json:"rol"`
}

func NewCADClaims() CADClaims {
	return CADClaims{}
}

func (c CADClaims) WithExpiration(t time.Time) CADClaims {
	c.ExpiresAt = jwt.NewNumericDate(t)
	return c
}

func (c CADClaims) WithIssuedAt(t time.Time) CADClaims {
	c.IssuedAt = jwt.NewNumericDate(t)
	return c
}

func (c CADClaims) WithIssuer(s string) CADClaims {
	c.Issuer = s
	return c
}

func (c CADClaims) WithSubject(s string) CADClaims {
	c.Subject = s
	return c
}

func (c CADClaims) WithOperatorHandle(s string) CADClaims {
	c.Handle = s
	return c
}

func (c CADClaims) WithOperatorRole(r store.Role) CADClaims {
	c.Role = string(r)
	return c
}

func (c CADClaims) OperatorHandle() string {
	return c.Handle
}

func (c CADClaims) OperatorRole() store.Role {
	return store.Role(c.Role)
}

// Actor converts the claims into the actor identity threaded through
// every orchestrator write.
func (c CADClaims) Actor() store.Actor {
	return store.Actor{Name: c.Handle, Role: store.Role(c.Role)}
}
