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
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/c5dispatch/cad-go/dispatch"
	"github.com/c5dispatch/cad-go/lib/herr"
	"github.com/c5dispatch/cad-go/store"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func readBodyAs[T any](req *http.Request) (T, *herr.HTTPError) {
	empty := *new(T)
	defer shut(req.Body)
	bodyBytes, err := io.ReadAll(req.Body)
	if err != nil {
		return empty, herr.BadRequest("Failed to read request body", err).From("[io.ReadAll]")
	}
	var t T
	err = json.Unmarshal(bodyBytes, &t)
	if err != nil {
		return empty, herr.BadRequest("Failed to unmarshal request body", err).From("[Unmarshal]")
	}
	return t, nil
}

// readValidBodyAs is readBodyAs plus struct tag validation, so that
// malformed requests are rejected before they reach the orchestrator.
func readValidBodyAs[T any](req *http.Request) (T, *herr.HTTPError) {
	t, errHTTP := readBodyAs[T](req)
	if errHTTP != nil {
		return t, errHTTP
	}
	if err := validate.Struct(&t); err != nil {
		return t, herr.BadRequest("Invalid request body", err).From("[validate.Struct]").SetExpectedError()
	}
	return t, nil
}

func mustWriteJSON(w http.ResponseWriter, resp any) (success bool) {
	marshalled, err := json.Marshal(resp)
	if err != nil {
		herr.InternalServerError("Failed to marshal JSON", err).From("[Marshal]").WriteResponse(w)
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(marshalled)
	if err != nil {
		herr.InternalServerError("Failed to write JSON", err).From("[Write]").WriteResponse(w)
		return false
	}
	return true
}

func getJwtCtx(req *http.Request) (JWTContext, *herr.HTTPError) {
	jwtCtx, found := req.Context().Value(JWTContextKey).(JWTContext)
	if !found {
		return JWTContext{}, herr.InternalServerError("This endpoint has been misconfigured", nil)
	}
	return jwtCtx, nil
}

// requireActor resolves the authenticated operator for a write
// endpoint. RequireAuthN has already run by the time this is called.
func requireActor(req *http.Request) (store.Actor, *herr.HTTPError) {
	jwtCtx, errHTTP := getJwtCtx(req)
	if errHTTP != nil {
		return store.Actor{}, errHTTP.From("[getJwtCtx]")
	}
	if jwtCtx.Claims == nil {
		return store.Actor{}, herr.Unauthorized("Authentication is required", jwtCtx.Error)
	}
	return jwtCtx.Claims.Actor(), nil
}

// dispatchError maps orchestrator errors onto HTTP statuses: bad input
// is a 400, a dangling reference is a 404, a policy rejection is a 403.
func dispatchError(err error) *herr.HTTPError {
	var (
		validationErr *dispatch.ValidationError
		policyErr     *dispatch.PolicyError
	)
	switch {
	case errors.As(err, &validationErr):
		return herr.BadRequest(validationErr.Error(), err).SetExpectedError()
	case errors.As(err, &policyErr):
		return herr.Forbidden(policyErr.Reason, err).SetExpectedError()
	case errors.Is(err, dispatch.ErrNotFound):
		return herr.NotFound("No such resource", err).SetExpectedError()
	default:
		return herr.InternalServerError("The operation failed", err)
	}
}

func handleErr(w http.ResponseWriter, req *http.Request, code int, publicMsg string, err error) {
	slog.Error(publicMsg, "method", req.Method, "path", req.URL.Path, "code", code, "err", err)
	http.Error(w, publicMsg, code)
}

func shut(c io.Closer) {
	err := c.Close()
	if err != nil {
		slog.Error("Failed to close Closer", "error", err)
	}
}
