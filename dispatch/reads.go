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

package dispatch

import (
	"github.com/c5dispatch/cad-go/policy"
	"github.com/c5dispatch/cad-go/store"
)

// Read accessors. All of them serve from a consistent snapshot and
// return copies; SLA risk is recomputed on every read rather than
// pushed by any timer.

func (o *Orchestrator) ListIncidents() []store.Incident {
	var out []store.Incident
	o.cad.View(func(st *store.State) {
		out = st.Incidents()
	})
	return out
}

func (o *Orchestrator) GetIncident(incidentID string) (store.Incident, error) {
	var (
		inc   store.Incident
		opErr error
	)
	o.cad.View(func(st *store.State) {
		stored := st.IncidentByID(incidentID)
		if stored == nil {
			opErr = incidentNotFound(incidentID)
			return
		}
		inc = *stored
	})
	return inc, opErr
}

func (o *Orchestrator) ListUnits() []store.Unit {
	var out []store.Unit
	o.cad.View(func(st *store.State) {
		out = st.Units()
	})
	return out
}

// AssignedUnit resolves an incident's weak unit reference against the
// registry at read time. ok is false when no unit is assigned.
func (o *Orchestrator) AssignedUnit(incidentID string) (unit store.Unit, ok bool, err error) {
	o.cad.View(func(st *store.State) {
		inc := st.IncidentByID(incidentID)
		if inc == nil {
			err = incidentNotFound(incidentID)
			return
		}
		if inc.AssignedUnitID == "" {
			return
		}
		if stored := st.UnitByID(inc.AssignedUnitID); stored != nil {
			unit, ok = *stored, true
		}
	})
	return unit, ok, err
}

func (o *Orchestrator) ListEvidence(incidentID string) ([]store.Evidence, error) {
	var (
		out   []store.Evidence
		opErr error
	)
	o.cad.View(func(st *store.State) {
		if st.IncidentByID(incidentID) == nil {
			opErr = incidentNotFound(incidentID)
			return
		}
		out = st.EvidenceFor(incidentID)
	})
	return out, opErr
}

// Timeline returns an incident's audit events in append order. Callers
// that want the display ordering reverse it themselves.
func (o *Orchestrator) Timeline(incidentID string) ([]store.TimelineEvent, error) {
	var (
		out   []store.TimelineEvent
		opErr error
	)
	o.cad.View(func(st *store.State) {
		if st.IncidentByID(incidentID) == nil {
			opErr = incidentNotFound(incidentID)
			return
		}
		out = st.TimelineFor(incidentID)
	})
	return out, opErr
}

// SLAStatus is the advisory SLA position of an incident at the time of
// the read.
type SLAStatus struct {
	RemainingMinutes int32
	AtRisk           bool
}

func (o *Orchestrator) SLAStatus(incidentID string) (SLAStatus, error) {
	var (
		status SLAStatus
		opErr  error
	)
	o.cad.View(func(st *store.State) {
		inc := st.IncidentByID(incidentID)
		if inc == nil {
			opErr = incidentNotFound(incidentID)
			return
		}
		now := o.now()
		status = SLAStatus{
			RemainingMinutes: policy.Remaining(*inc, now),
			AtRisk:           policy.AtRisk(*inc, now),
		}
	})
	return status, opErr
}

// SuggestUnit runs the suggestion policy over the current registry
// snapshot. ok is false when no unit is available.
func (o *Orchestrator) SuggestUnit(incidentID string) (unit store.Unit, ok bool, err error) {
	o.cad.View(func(st *store.State) {
		inc := st.IncidentByID(incidentID)
		if inc == nil {
			err = incidentNotFound(incidentID)
			return
		}
		unit, ok = policy.SuggestUnit(*inc, st.Units())
	})
	return unit, ok, err
}

// CanClose previews the closure decision for the given role without
// mutating or auditing anything.
func (o *Orchestrator) CanClose(incidentID string, role store.Role) (policy.Decision, error) {
	var (
		decision policy.Decision
		opErr    error
	)
	o.cad.View(func(st *store.State) {
		inc := st.IncidentByID(incidentID)
		if inc == nil {
			opErr = incidentNotFound(incidentID)
			return
		}
		decision = policy.CanClose(*inc, role, st.EvidenceCount(incidentID))
	})
	return decision, opErr
}
