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

package herr_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/c5dispatch/cad-go/lib/herr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromChainsSources(t *testing.T) {
	t.Parallel()
	cause := errors.New("the disk is on fire")
	errHTTP := herr.InternalServerError("Something broke", cause).
		From("[saveIncident]").
		From("[ServeHTTP]")

	assert.Equal(t, http.StatusInternalServerError, errHTTP.Code)
	assert.Equal(t, "Something broke", errHTTP.ResponseMessage)
	assert.ErrorIs(t, errHTTP, cause)
	assert.Equal(t, "[ServeHTTP]: [saveIncident]: the disk is on fire", errHTTP.InternalErr.Error())
}

func TestNewDefaultsInternalErr(t *testing.T) {
	t.Parallel()
	errHTTP := herr.BadRequest("No good", nil)
	require.NotNil(t, errHTTP.InternalErr)
	assert.Equal(t, "No good", errHTTP.InternalErr.Error())
}

func TestWriteResponse(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	herr.NotFound("No such incident", nil).SetExpectedError().WriteResponse(w)

	resp := w.Result()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, herr.ApplicationProblemMediaType, resp.Header.Get("Content-Type"))

	var problem herr.Problem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&problem))
	assert.Equal(t, http.StatusNotFound, problem.Status)
	assert.Equal(t, "No such incident", problem.Detail)
	assert.False(t, problem.Timestamp.IsZero())
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	orig := herr.Forbidden("Not allowed", nil)
	wrapped := fmt.Errorf("[CanClose]: %w", orig)
	assert.Equal(t, http.StatusForbidden, herr.AsHTTPError(wrapped).Code)

	// anything else becomes a 500
	assert.Equal(t, http.StatusInternalServerError, herr.AsHTTPError(errors.New("dunno")).Code)
}
