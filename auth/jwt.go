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

package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/c5dispatch/cad-go/lib/authz"
	"github.com/c5dispatch/cad-go/store"
	"github.com/golang-jwt/jwt/v5"
)

type JWTer struct {
	SecretKey string
}

func (j JWTer) CreateSessionToken(
	handle string,
	role store.Role,
	duration time.Duration,
) (string, error) {
	token, err := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		authz.NewCADClaims().
			WithIssuedAt(time.Now()).
			WithExpiration(time.Now().Add(duration)).
			WithIssuer("cad-go").
			WithSubject(handle).
			WithOperatorHandle(handle).
			WithOperatorRole(role),
	).SignedString([]byte(j.SecretKey))
	if err != nil {
		return "", fmt.Errorf("[SignedString]: %w", err)
	}
	return token, nil
}

func (j JWTer) AuthenticateSessionToken(authHeader string) (*authz.CADClaims, error) {
	authHeader = strings.TrimPrefix(authHeader, "Bearer ")
	if authHeader == "" {
		return nil, fmt.Errorf("no token provided")
	}
	claims := authz.CADClaims{}
	tok, err := jwt.ParseWithClaims(authHeader, &claims, func(token *jwt.Token) (any, error) {
		return []byte(j.SecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return nil, fmt.Errorf("[jwt.Parse]: %w", err)
	}
	if tok == nil {
		return nil, fmt.Errorf("token is nil")
	}
	if !tok.Valid {
		return nil, fmt.Errorf("token is invalid")
	}
	if claims.OperatorHandle() == "" {
		return nil, fmt.Errorf("operator handle is required")
	}
	if !claims.OperatorRole().Valid() {
		return nil, fmt.Errorf("operator role is required")
	}
	return &claims, nil
}
