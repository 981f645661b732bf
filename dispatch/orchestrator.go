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

// Package dispatch contains the incident orchestrator, the only
// component with write authority over the CAD stores. Every operation
// evaluates the policy engine read-only, applies its mutations and its
// audit append inside one store critical section, and returns copies.
package dispatch

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/c5dispatch/cad-go/policy"
	"github.com/c5dispatch/cad-go/store"
	"github.com/google/uuid"
)

type Orchestrator struct {
	cad *store.Store

	// Catalogs are configuration, not core logic. Empty catalogs skip
	// the enumerated-field validation.
	incidentTypes []string
	sectors       []string

	// Overridable for tests.
	now   func() time.Time
	newID func() string
}

func New(cad *store.Store, incidentTypes, sectors []string) *Orchestrator {
	return &Orchestrator{
		cad:           cad,
		incidentTypes: incidentTypes,
		sectors:       sectors,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

type CreateIncidentParams struct {
	Title            string
	Type             string
	Severity         store.Severity
	Sector           string
	Location         string
	Description      string
	SLABudgetMinutes int32
}

// CreateIncident opens a new incident in status NEW and assigns its
// folio. The SLA budget defaults by severity when the caller leaves
// it zero.
func (o *Orchestrator) CreateIncident(actor store.Actor, params CreateIncidentParams) (store.Incident, error) {
	if utf8.RuneCountInString(strings.TrimSpace(params.Title)) <= 3 {
		return store.Incident{}, &ValidationError{Field: "title", Message: "must be longer than 3 characters"}
	}
	if utf8.RuneCountInString(strings.TrimSpace(params.Location)) <= 5 {
		return store.Incident{}, &ValidationError{Field: "location", Message: "must be longer than 5 characters"}
	}
	if !params.Severity.Valid() {
		return store.Incident{}, &ValidationError{Field: "severity", Message: "unknown severity"}
	}
	if len(o.incidentTypes) > 0 && !slices.Contains(o.incidentTypes, params.Type) {
		return store.Incident{}, &ValidationError{Field: "type", Message: "not in the incident type catalog"}
	}
	if len(o.sectors) > 0 && !slices.Contains(o.sectors, params.Sector) {
		return store.Incident{}, &ValidationError{Field: "sector", Message: "not in the sector catalog"}
	}
	budget := params.SLABudgetMinutes
	if budget <= 0 {
		budget = params.Severity.DefaultSLABudget()
	}

	var created store.Incident
	o.cad.Update(func(st *store.State) {
		now := o.now()
		created = store.Incident{
			ID:               o.newID(),
			Folio:            st.NextFolio(now),
			Title:            strings.TrimSpace(params.Title),
			Type:             params.Type,
			Severity:         params.Severity,
			Status:           store.IncidentStatusNew,
			Sector:           params.Sector,
			Location:         strings.TrimSpace(params.Location),
			Description:      params.Description,
			SLABudgetMinutes: budget,
			Created:          now,
		}
		st.AddIncident(created)
		o.appendEvent(st, created.ID, actor, store.ActionIncidentCreated, created.Folio)
	})
	return created, nil
}

// AssignUnit links a unit to an incident. The incident moves to
// ASSIGNED regardless of its prior status, and the unit itself is
// marked ASSIGNED in the same critical section. Reassignment releases
// the previously assigned unit back to AVAILABLE; the incident record
// keeps only the latest unit.
func (o *Orchestrator) AssignUnit(actor store.Actor, incidentID, unitID string) (store.Incident, error) {
	var (
		updated store.Incident
		opErr   error
	)
	o.cad.Update(func(st *store.State) {
		inc := st.IncidentByID(incidentID)
		if inc == nil {
			opErr = incidentNotFound(incidentID)
			return
		}
		unit := st.UnitByID(unitID)
		if unit == nil {
			opErr = unitNotFound(unitID)
			return
		}
		if inc.AssignedUnitID != "" && inc.AssignedUnitID != unit.ID {
			if prev := st.UnitByID(inc.AssignedUnitID); prev != nil {
				prev.Status = store.UnitStatusAvailable
			}
		}
		inc.AssignedUnitID = unit.ID
		inc.Status = store.IncidentStatusAssigned
		unit.Status = store.UnitStatusAssigned
		o.appendEvent(st, inc.ID, actor, store.ActionUnitAssigned, unit.Callsign)
		updated = *inc
	})
	return updated, opErr
}

// StatusResult reports the outcome of a status transition request.
// When the target was CLOSED and the closure policy blocked it,
// Changed is false and Decision carries the audited reason; that is a
// normal outcome, not an error.
type StatusResult struct {
	Incident store.Incident
	Decision policy.Decision
	Changed  bool
}

// SetIncidentStatus applies a requested status transition. Targets
// other than CLOSED are set unconditionally; the state machine's
// forward-only shape is not enforced here. The CLOSED target is gated
// by the closure policy, and a permitted closure releases the assigned
// unit back to AVAILABLE whatever its current status.
func (o *Orchestrator) SetIncidentStatus(actor store.Actor, incidentID string, target store.IncidentStatus) (StatusResult, error) {
	if !target.Valid() {
		return StatusResult{}, &ValidationError{Field: "status", Message: "unknown status"}
	}
	var (
		result StatusResult
		opErr  error
	)
	o.cad.Update(func(st *store.State) {
		inc := st.IncidentByID(incidentID)
		if inc == nil {
			opErr = incidentNotFound(incidentID)
			return
		}
		if target == store.IncidentStatusClosed {
			decision := policy.CanClose(*inc, actor.Role, st.EvidenceCount(inc.ID))
			result.Decision = decision
			if !decision.Allowed {
				o.appendEvent(st, inc.ID, actor, store.ActionClosureBlocked, decision.Reason)
				result.Incident = *inc
				return
			}
			o.closeLocked(st, inc, actor.Name, actor.Role)
			result.Incident = *inc
			result.Changed = true
			return
		}
		inc.Status = target
		o.appendEvent(st, inc.ID, actor, store.ActionStatusChanged, string(target))
		result.Incident = *inc
		result.Changed = true
	})
	return result, opErr
}

// SetUnitStatus sets a unit's status directly. This is the manual
// correction path; deliberately, it writes no audit entry.
func (o *Orchestrator) SetUnitStatus(unitID string, status store.UnitStatus) (store.Unit, error) {
	if !status.Valid() {
		return store.Unit{}, &ValidationError{Field: "status", Message: "unknown status"}
	}
	var (
		updated store.Unit
		opErr   error
	)
	o.cad.Update(func(st *store.State) {
		unit := st.UnitByID(unitID)
		if unit == nil {
			opErr = unitNotFound(unitID)
			return
		}
		unit.Status = status
		updated = *unit
	})
	return updated, opErr
}

// AttachEvidence records an evidence item against an incident. The
// integrity token is derived from the record itself; it is stable but
// carries no cryptographic weight.
func (o *Orchestrator) AttachEvidence(actor store.Actor, incidentID, name string, kind store.MediaKind) (store.Evidence, error) {
	if utf8.RuneCountInString(strings.TrimSpace(name)) <= 2 {
		return store.Evidence{}, &ValidationError{Field: "name", Message: "must be longer than 2 characters"}
	}
	if !kind.Valid() {
		return store.Evidence{}, &ValidationError{Field: "kind", Message: "unknown media kind"}
	}
	var (
		created store.Evidence
		opErr   error
	)
	o.cad.Update(func(st *store.State) {
		inc := st.IncidentByID(incidentID)
		if inc == nil {
			opErr = incidentNotFound(incidentID)
			return
		}
		now := o.now()
		created = store.Evidence{
			ID:             o.newID(),
			IncidentID:     inc.ID,
			Name:           strings.TrimSpace(name),
			Kind:           kind,
			IntegrityToken: integrityToken(inc.ID, name, now),
			Created:        now,
			CreatedBy:      actor.Name,
		}
		st.AppendEvidence(created)
		o.appendEvent(st, inc.ID, actor, store.ActionEvidenceAttached, created.Name)
	})
	return created, opErr
}

// OverrideClose forces a blocked closure through the coordinator
// override path. It requires an overridable closure decision, the
// COORDINATOR role, and a justification of at least
// policy.MinOverrideJustification characters after trimming. A
// rejected override changes nothing and audits nothing.
func (o *Orchestrator) OverrideClose(actor store.Actor, incidentID, justification string) (StatusResult, error) {
	if actor.Role != store.RoleCoordinator {
		return StatusResult{}, &PolicyError{Reason: "only coordinators may override a closure"}
	}
	if !policy.ValidOverrideJustification(justification) {
		return StatusResult{}, &ValidationError{Field: "justification", Message: "must be at least 10 characters"}
	}
	var (
		result StatusResult
		opErr  error
	)
	o.cad.Update(func(st *store.State) {
		inc := st.IncidentByID(incidentID)
		if inc == nil {
			opErr = incidentNotFound(incidentID)
			return
		}
		decision := policy.CanClose(*inc, actor.Role, st.EvidenceCount(inc.ID))
		result.Decision = decision
		if decision.Allowed {
			opErr = &PolicyError{Reason: "closure does not require an override"}
			return
		}
		if !decision.Overridable {
			opErr = &PolicyError{Reason: decision.Reason}
			return
		}
		o.appendEvent(st, inc.ID, actor, store.ActionClosureOverride, strings.TrimSpace(justification))
		o.closeLocked(st, inc, actor.String(), actor.Role)
		result.Incident = *inc
		result.Changed = true
	})
	return result, opErr
}

// closeLocked performs the terminal transition and releases the
// assigned unit, if any, back to AVAILABLE regardless of the unit's
// current status. Must be called with the store write lock held.
func (o *Orchestrator) closeLocked(st *store.State, inc *store.Incident, actorName string, actorRole store.Role) {
	inc.Status = store.IncidentStatusClosed
	if inc.AssignedUnitID != "" {
		if unit := st.UnitByID(inc.AssignedUnitID); unit != nil {
			unit.Status = store.UnitStatusAvailable
		}
	}
	st.AppendEvent(store.TimelineEvent{
		ID:         o.newID(),
		IncidentID: inc.ID,
		Created:    o.now(),
		ActorName:  actorName,
		ActorRole:  actorRole,
		Action:     store.ActionStatusChanged,
		Detail:     string(store.IncidentStatusClosed),
	})
}

func (o *Orchestrator) appendEvent(st *store.State, incidentID string, actor store.Actor, action, detail string) {
	st.AppendEvent(store.TimelineEvent{
		ID:         o.newID(),
		IncidentID: incidentID,
		Created:    o.now(),
		ActorName:  actor.Name,
		ActorRole:  actor.Role,
		Action:     action,
		Detail:     detail,
	})
}
