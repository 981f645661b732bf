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
	"net/http"

	"github.com/c5dispatch/cad-go/dispatch"
	cadjson "github.com/c5dispatch/cad-go/json"
	"github.com/c5dispatch/cad-go/store"
)

type GetUnits struct {
	orch *dispatch.Orchestrator
}

func (action GetUnits) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	units := action.orch.ListUnits()
	resp := make(cadjson.Units, 0, len(units))
	for _, unit := range units {
		resp = append(resp, unitToJSON(unit))
	}
	mustWriteJSON(w, resp)
}

type SetUnitStatus struct {
	orch *dispatch.Orchestrator
	es   *EventSourcerer
}

func (action SetUnitStatus) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	vals, errHTTP := readValidBodyAs[cadjson.SetUnitStatusRequest](req)
	if errHTTP != nil {
		errHTTP.From("[readValidBodyAs]").WriteResponse(w)
		return
	}

	updated, err := action.orch.SetUnitStatus(req.PathValue("unitId"), store.UnitStatus(vals.Status))
	if err != nil {
		dispatchError(err).From("[SetUnitStatus]").WriteResponse(w)
		return
	}
	action.es.notifyUnitUpdate(updated.ID)

	mustWriteJSON(w, unitToJSON(updated))
}

type GetSuggestedUnit struct {
	orch *dispatch.Orchestrator
}

func (action GetSuggestedUnit) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	incidentID := req.PathValue("incidentId")
	unit, found, err := action.orch.SuggestUnit(incidentID)
	if err != nil {
		dispatchError(err).From("[SuggestUnit]").WriteResponse(w)
		return
	}
	resp := cadjson.SuggestedUnit{IncidentID: incidentID, Found: found}
	if found {
		ju := unitToJSON(unit)
		resp.Unit = &ju
	}
	mustWriteJSON(w, resp)
}

type GetClosureCheck struct {
	orch *dispatch.Orchestrator
}

func (action GetClosureCheck) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	jwtCtx, errHTTP := getJwtCtx(req)
	if errHTTP != nil {
		errHTTP.From("[getJwtCtx]").WriteResponse(w)
		return
	}
	incidentID := req.PathValue("incidentId")

	// The check defaults to the caller's own role. A coordinator
	// reviewing an operator's options can ask about another role.
	role := jwtCtx.Claims.OperatorRole()
	if asRole := req.URL.Query().Get("role"); asRole != "" {
		role = store.Role(asRole)
		if !role.Valid() {
			dispatchError(&dispatch.ValidationError{Field: "role", Message: "unknown role"}).WriteResponse(w)
			return
		}
	}

	decision, err := action.orch.CanClose(incidentID, role)
	if err != nil {
		dispatchError(err).From("[CanClose]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, cadjson.ClosureCheck{
		IncidentID:  incidentID,
		Role:        string(role),
		Allowed:     decision.Allowed,
		Reason:      decision.Reason,
		Overridable: decision.Overridable,
	})
}

type GetSLA struct {
	orch *dispatch.Orchestrator
}

func (action GetSLA) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	incidentID := req.PathValue("incidentId")
	status, err := action.orch.SLAStatus(incidentID)
	if err != nil {
		dispatchError(err).From("[SLAStatus]").WriteResponse(w)
		return
	}
	mustWriteJSON(w, cadjson.SLAStatus{
		IncidentID:       incidentID,
		RemainingMinutes: status.RemainingMinutes,
		AtRisk:           status.AtRisk,
	})
}
