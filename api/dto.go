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
	"github.com/c5dispatch/cad-go/dispatch"
	cadjson "github.com/c5dispatch/cad-go/json"
	"github.com/c5dispatch/cad-go/store"
)

func incidentToJSON(inc store.Incident) cadjson.Incident {
	return cadjson.Incident{
		ID:               inc.ID,
		Folio:            inc.Folio,
		Title:            inc.Title,
		Type:             inc.Type,
		Severity:         string(inc.Severity),
		Status:           string(inc.Status),
		Sector:           inc.Sector,
		Location:         inc.Location,
		Description:      inc.Description,
		SLABudgetMinutes: inc.SLABudgetMinutes,
		AssignedUnitID:   inc.AssignedUnitID,
		Created:          inc.Created,
	}
}

func unitToJSON(unit store.Unit) cadjson.Unit {
	return cadjson.Unit{
		ID:                unit.ID,
		Callsign:          unit.Callsign,
		Agency:            string(unit.Agency),
		Status:            string(unit.Status),
		Sector:            unit.Sector,
		LastKnownPosition: unit.LastKnownPosition,
	}
}

func evidenceToJSON(ev store.Evidence) cadjson.Evidence {
	return cadjson.Evidence{
		ID:             ev.ID,
		IncidentID:     ev.IncidentID,
		Name:           ev.Name,
		Kind:           string(ev.Kind),
		IntegrityToken: ev.IntegrityToken,
		Created:        ev.Created,
		CreatedBy:      ev.CreatedBy,
	}
}

func timelineEventToJSON(ev store.TimelineEvent) cadjson.TimelineEvent {
	return cadjson.TimelineEvent{
		ID:         ev.ID,
		IncidentID: ev.IncidentID,
		Created:    ev.Created,
		ActorName:  ev.ActorName,
		ActorRole:  string(ev.ActorRole),
		Action:     ev.Action,
		Detail:     ev.Detail,
	}
}

func statusChangeToJSON(result dispatch.StatusResult) cadjson.StatusChange {
	return cadjson.StatusChange{
		Incident:    incidentToJSON(result.Incident),
		Changed:     result.Changed,
		Allowed:     result.Decision.Allowed,
		Reason:      result.Decision.Reason,
		Overridable: result.Decision.Overridable,
	}
}
