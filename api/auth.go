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

package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/c5dispatch/cad-go/auth"
	"github.com/c5dispatch/cad-go/directory"
	cadjson "github.com/c5dispatch/cad-go/json"
)

type PostAuth struct {
	userStore           *directory.UserStore
	jwtSecret           string
	accessTokenDuration time.Duration
}

func (action PostAuth) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// This endpoint is unauthenticated (doesn't require an Authorization header)
	// as the point of this is to take a username and password to create a new JWT.

	vals, errHTTP := readValidBodyAs[cadjson.AuthRequest](req)
	if errHTTP != nil {
		errHTTP.From("[readValidBodyAs]").WriteResponse(w)
		return
	}

	user, err := action.userStore.Verify(vals.Identification, vals.Password)
	if err != nil {
		handleErr(w, req, http.StatusUnauthorized, "Failed login attempt (bad credentials)",
			fmt.Errorf("login attempt rejected. Identification: %v", vals.Identification))
		return
	}
	slog.Info("Successful operator login", "identification", user.Handle, "role", user.Role)

	token, err := auth.JWTer{SecretKey: action.jwtSecret}.
		CreateSessionToken(user.Handle, user.Role, action.accessTokenDuration)
	if err != nil {
		handleErr(w, req, http.StatusInternalServerError, "Failed to create session token", err)
		return
	}

	mustWriteJSON(w, cadjson.AuthResponse{Token: token})
}

type GetAuth struct{}

func (action GetAuth) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	jwtCtx, errHTTP := getJwtCtx(req)
	if errHTTP != nil {
		errHTTP.From("[getJwtCtx]").WriteResponse(w)
		return
	}
	resp := cadjson.WhoAmI{}
	if jwtCtx.Claims != nil {
		resp.Authenticated = true
		resp.Handle = jwtCtx.Claims.OperatorHandle()
		resp.Role = string(jwtCtx.Claims.OperatorRole())
	}
	mustWriteJSON(w, resp)
}
