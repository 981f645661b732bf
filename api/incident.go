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
	"golang.org/x/sync/errgroup"
)

type GetIncidents struct {
	orch *dispatch.Orchestrator
}

func (action GetIncidents) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var (
		incidents []store.Incident
		units     []store.Unit
	)
	group := errgroup.Group{}
	group.Go(func() error {
		incidents = action.orch.ListIncidents()
		return nil
	})
	group.Go(func() error {
		units = action.orch.ListUnits()
		return nil
	})
	_ = group.Wait()

	callsignByID := make(map[string]string, len(units))
	for _, unit := range units {
		callsignByID[unit.ID] = unit.Callsign
	}

	resp := make(cadjson.Incidents, 0, len(incidents))
	for _, inc := range incidents {
		ji := incidentToJSON(inc)
		ji.AssignedCallsign = callsignByID[inc.AssignedUnitID]
		resp = append(resp, ji)
	}
	mustWriteJSON(w, resp)
}

type NewIncident struct {
	orch *dispatch.Orchestrator
	es   *EventSourcerer
}

func (action NewIncident) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	actor, errHTTP := requireActor(req)
	if errHTTP != nil {
		errHTTP.From("[requireActor]").WriteResponse(w)
		return
	}
	vals, errHTTP := readValidBodyAs[cadjson.CreateIncidentRequest](req)
	if errHTTP != nil {
		errHTTP.From("[readValidBodyAs]").WriteResponse(w)
		return
	}

	created, err := action.orch.CreateIncident(actor, dispatch.CreateIncidentParams{
		Title:            vals.Title,
		Type:             vals.Type,
		Severity:         store.Severity(vals.Severity),
		Sector:           vals.Sector,
		Location:         vals.Location,
		Description:      vals.Description,
		SLABudgetMinutes: vals.SLABudgetMinutes,
	})
	if err != nil {
		dispatchError(err).From("[CreateIncident]").WriteResponse(w)
		return
	}
	action.es.notifyIncidentUpdate(created.ID)

	w.Header().Set("Location", "/cad/api/incidents/"+created.ID)
	w.WriteHeader(http.StatusCreated)
	mustWriteJSON(w, incidentToJSON(created))
}

type GetIncident struct {
	orch *dispatch.Orchestrator
}

func (action GetIncident) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	incidentID := req.PathValue("incidentId")
	inc, err := action.orch.GetIncident(incidentID)
	if err != nil {
		dispatchError(err).From("[GetIncident]").WriteResponse(w)
		return
	}
	ji := incidentToJSON(inc)
	if unit, ok, _ := action.orch.AssignedUnit(incidentID); ok {
		ji.AssignedCallsign = unit.Callsign
	}
	mustWriteJSON(w, ji)
}

type AssignUnit struct {
	orch *dispatch.Orchestrator
	es   *EventSourcerer
}

func (action AssignUnit) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	actor, errHTTP := requireActor(req)
	if errHTTP != nil {
		errHTTP.From("[requireActor]").WriteResponse(w)
		return
	}
	vals, errHTTP := readValidBodyAs[cadjson.AssignUnitRequest](req)
	if errHTTP != nil {
		errHTTP.From("[readValidBodyAs]").WriteResponse(w)
		return
	}

	updated, err := action.orch.AssignUnit(actor, req.PathValue("incidentId"), vals.UnitID)
	if err != nil {
		dispatchError(err).From("[AssignUnit]").WriteResponse(w)
		return
	}
	action.es.notifyIncidentUpdate(updated.ID)
	action.es.notifyUnitUpdate(updated.AssignedUnitID)

	mustWriteJSON(w, incidentToJSON(updated))
}

type SetIncidentStatus struct {
	orch *dispatch.Orchestrator
	es   *EventSourcerer
}

func (action SetIncidentStatus) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	actor, errHTTP := requireActor(req)
	if errHTTP != nil {
		errHTTP.From("[requireActor]").WriteResponse(w)
		return
	}
	vals, errHTTP := readValidBodyAs[cadjson.SetIncidentStatusRequest](req)
	if errHTTP != nil {
		errHTTP.From("[readValidBodyAs]").WriteResponse(w)
		return
	}

	result, err := action.orch.SetIncidentStatus(actor, req.PathValue("incidentId"), store.IncidentStatus(vals.Status))
	if err != nil {
		dispatchError(err).From("[SetIncidentStatus]").WriteResponse(w)
		return
	}
	if result.Changed {
		action.es.notifyIncidentUpdate(result.Incident.ID)
		if result.Incident.Status == store.IncidentStatusClosed {
			action.es.notifyUnitUpdate(result.Incident.AssignedUnitID)
		}
	}

	mustWriteJSON(w, statusChangeToJSON(result))
}

type OverrideClose struct {
	orch *dispatch.Orchestrator
	es   *EventSourcerer
}

func (action OverrideClose) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	actor, errHTTP := requireActor(req)
	if errHTTP != nil {
		errHTTP.From("[requireActor]").WriteResponse(w)
		return
	}
	vals, errHTTP := readValidBodyAs[cadjson.OverrideCloseRequest](req)
	if errHTTP != nil {
		errHTTP.From("[readValidBodyAs]").WriteResponse(w)
		return
	}

	result, err := action.orch.OverrideClose(actor, req.PathValue("incidentId"), vals.Justification)
	if err != nil {
		dispatchError(err).From("[OverrideClose]").WriteResponse(w)
		return
	}
	action.es.notifyIncidentUpdate(result.Incident.ID)
	action.es.notifyUnitUpdate(result.Incident.AssignedUnitID)

	mustWriteJSON(w, statusChangeToJSON(result))
}
