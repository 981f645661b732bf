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
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/c5dispatch/cad-go/dispatch"
	cadjson "github.com/c5dispatch/cad-go/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type angryReader struct{}

func (angryReader) Read(p []byte) (int, error) {
	return 0, errors.New("no reading today")
}

func (angryReader) Close() error {
	return nil
}

type angryResponseWriter struct {
	*httptest.ResponseRecorder
}

func (angryResponseWriter) Write([]byte) (int, error) {
	return 0, errors.New("no writing today")
}

func TestMustWriteJSONErrors(t *testing.T) {
	t.Parallel()

	// error if the response can't be marshalled as JSON
	rec := httptest.NewRecorder()
	cantBeMarshalled := complex64(1 + 1i)
	ok := mustWriteJSON(rec, cantBeMarshalled)
	assert.False(t, ok)
	assert.Equal(t, http.StatusInternalServerError, rec.Result().StatusCode)

	// error if the JSON can't be written to the response writer
	w := angryResponseWriter{httptest.NewRecorder()}
	ok = mustWriteJSON(w, "can be marshalled")
	assert.False(t, ok)
}

func TestReadBodyAsErrors(t *testing.T) {
	t.Parallel()

	// error if the request body read fails
	req := &http.Request{
		Body: angryReader{},
	}
	_, errHTTP := readBodyAs[any](req)
	require.NotNil(t, errHTTP)
	assert.Equal(t, http.StatusBadRequest, errHTTP.Code)

	// error if the request body isn't valid JSON
	req = &http.Request{
		Body: io.NopCloser(strings.NewReader("this isn't json")),
	}
	_, errHTTP = readBodyAs[any](req)
	require.NotNil(t, errHTTP)
	require.Equal(t, http.StatusBadRequest, errHTTP.Code)
}

func TestReadValidBodyAs(t *testing.T) {
	t.Parallel()

	// too-short fields are rejected by the request tags
	req := &http.Request{
		Body: io.NopCloser(strings.NewReader(`{"title":"abc","incident_type":"Fire","severity":"LOW","sector":"NORTH","location":"Main St and 5th"}`)),
	}
	_, errHTTP := readValidBodyAs[cadjson.CreateIncidentRequest](req)
	require.NotNil(t, errHTTP)
	assert.Equal(t, http.StatusBadRequest, errHTTP.Code)

	req = &http.Request{
		Body: io.NopCloser(strings.NewReader(`{"title":"Gas leak","incident_type":"Fire","severity":"LOW","sector":"NORTH","location":"Main St and 5th"}`)),
	}
	parsed, errHTTP := readValidBodyAs[cadjson.CreateIncidentRequest](req)
	require.Nil(t, errHTTP)
	assert.Equal(t, "Gas leak", parsed.Title)
}

func TestDispatchError(t *testing.T) {
	t.Parallel()

	errHTTP := dispatchError(&dispatch.ValidationError{Field: "title", Message: "too short"})
	assert.Equal(t, http.StatusBadRequest, errHTTP.Code)

	errHTTP = dispatchError(&dispatch.PolicyError{Reason: "not yours to close"})
	assert.Equal(t, http.StatusForbidden, errHTTP.Code)
	assert.Equal(t, "not yours to close", errHTTP.ResponseMessage)

	errHTTP = dispatchError(fmt.Errorf("[GetIncident]: %w", dispatch.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, errHTTP.Code)

	errHTTP = dispatchError(errors.New("dunno"))
	assert.Equal(t, http.StatusInternalServerError, errHTTP.Code)
}
