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

// Package json holds the wire types for the CAD API.
package json

import (
	"time"
)

type Incidents []Incident

type Incident struct {
	ID               string    `json:"id"`
	Folio            string    `json:"folio"`
	Title            string    `json:"title"`
	Type             string    `json:"incident_type"`
	Severity         string    `json:"severity"`
	Status           string    `json:"status"`
	Sector           string    `json:"sector"`
	Location         string    `json:"location"`
	Description      string    `json:"description,omitzero"`
	SLABudgetMinutes int32     `json:"sla_budget_minutes"`
	AssignedUnitID   string    `json:"assigned_unit_id,omitzero"`
	AssignedCallsign string    `json:"assigned_callsign,omitzero"`
	Created          time.Time `json:"created,omitzero"`
}

type CreateIncidentRequest struct {
	Title            string `json:"title"            validate:"required,min=4"`
	Type             string `json:"incident_type"    validate:"required"`
	Severity         string `json:"severity"         validate:"required"`
	Sector           string `json:"sector"           validate:"required"`
	Location         string `json:"location"         validate:"required,min=6"`
	Description      string `json:"description"`
	SLABudgetMinutes int32  `json:"sla_budget_minutes" validate:"gte=0"`
}

type AssignUnitRequest struct {
	UnitID string `json:"unit_id" validate:"required"`
}

type SetIncidentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OverrideCloseRequest struct {
	Justification string `json:"justification" validate:"required"`
}

// StatusChange reports the result of a status transition. A blocked
// closure is a 200 with changed=false, not an error: the decision
// detail tells the client why and whether an override could help.
type StatusChange struct {
	Incident    Incident `json:"incident"`
	Changed     bool     `json:"changed"`
	Allowed     bool     `json:"allowed"`
	Reason      string   `json:"reason,omitzero"`
	Overridable bool     `json:"overridable"`
}

type SLAStatus struct {
	IncidentID       string `json:"incident_id"`
	RemainingMinutes int32  `json:"remaining_minutes"`
	AtRisk           bool   `json:"at_risk"`
}

type ClosureCheck struct {
	IncidentID  string `json:"incident_id"`
	Role        string `json:"role"`
	Allowed     bool   `json:"allowed"`
	Reason      string `json:"reason,omitzero"`
	Overridable bool   `json:"overridable"`
}

type SuggestedUnit struct {
	IncidentID string `json:"incident_id"`
	Found      bool   `json:"found"`
	Unit       *Unit  `json:"unit,omitempty"`
}
