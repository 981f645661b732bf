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

package store

import (
	"fmt"
	"time"
)

type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	default:
		return false
	}
}

// DefaultSLABudget is the SLA budget, in minutes, applied to a new
// incident whose caller did not provide one.
func (s Severity) DefaultSLABudget() int32 {
	switch s {
	case SeverityCritical:
		return 10
	case SeverityHigh:
		return 30
	case SeverityMedium:
		return 60
	default:
		return 120
	}
}

type IncidentStatus string

const (
	IncidentStatusNew        IncidentStatus = "NEW"
	IncidentStatusClassified IncidentStatus = "CLASSIFIED"
	IncidentStatusAssigned   IncidentStatus = "ASSIGNED"
	IncidentStatusEnRoute    IncidentStatus = "EN_ROUTE"
	IncidentStatusOnScene    IncidentStatus = "ON_SCENE"
	IncidentStatusClosed     IncidentStatus = "CLOSED"
)

func (s IncidentStatus) Valid() bool {
	switch s {
	case IncidentStatusNew, IncidentStatusClassified, IncidentStatusAssigned,
		IncidentStatusEnRoute, IncidentStatusOnScene, IncidentStatusClosed:
		return true
	default:
		return false
	}
}

type UnitStatus string

const (
	UnitStatusAvailable   UnitStatus = "AVAILABLE"
	UnitStatusAssigned    UnitStatus = "ASSIGNED"
	UnitStatusEnRoute     UnitStatus = "EN_ROUTE"
	UnitStatusOnScene     UnitStatus = "ON_SCENE"
	UnitStatusUnavailable UnitStatus = "UNAVAILABLE"
)

func (s UnitStatus) Valid() bool {
	switch s {
	case UnitStatusAvailable, UnitStatusAssigned, UnitStatusEnRoute,
		UnitStatusOnScene, UnitStatusUnavailable:
		return true
	default:
		return false
	}
}

type Agency string

const (
	AgencyPolice          Agency = "POLICE"
	AgencyCivilProtection Agency = "CIVIL_PROTECTION"
	AgencyTraffic         Agency = "TRAFFIC"
)

func (a Agency) Valid() bool {
	switch a {
	case AgencyPolice, AgencyCivilProtection, AgencyTraffic:
		return true
	default:
		return false
	}
}

type MediaKind string

const (
	MediaKindImage    MediaKind = "IMAGE"
	MediaKindVideo    MediaKind = "VIDEO"
	MediaKindDocument MediaKind = "DOCUMENT"
)

func (k MediaKind) Valid() bool {
	switch k {
	case MediaKindImage, MediaKindVideo, MediaKindDocument:
		return true
	default:
		return false
	}
}

type Role string

const (
	RoleOperator    Role = "OPERATOR"
	RoleCoordinator Role = "COORDINATOR"
	RoleAdmin       Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOperator, RoleCoordinator, RoleAdmin:
		return true
	default:
		return false
	}
}

// Actor identifies who performed a write operation. It comes from the
// session layer and is threaded explicitly into every mutation.
type Actor struct {
	Name string
	Role Role
}

func (a Actor) String() string {
	return fmt.Sprintf("%v (%v)", a.Name, a.Role)
}

// Incident is a dispatched incident record. Folio, Created and
// SLABudgetMinutes are immutable after creation. AssignedUnitID is a
// weak reference into the unit registry; it is retained as history
// after closure.
type Incident struct {
	ID               string
	Folio            string
	Title            string
	Type             string
	Severity         Severity
	Status           IncidentStatus
	Sector           string
	Location         string
	Description      string
	SLABudgetMinutes int32
	AssignedUnitID   string
	Created          time.Time
}

// Unit is a responding unit. Its status is only ever set by the
// orchestrator, either directly or as a side effect of assignment
// and closure.
type Unit struct {
	ID                string
	Callsign          string
	Agency            Agency
	Status            UnitStatus
	Sector            string
	LastKnownPosition string
}

// Evidence is an attached evidence record. It is append-only: never
// mutated or deleted once created. The integrity token is an opaque
// stable string, not a cryptographic digest.
type Evidence struct {
	ID             string
	IncidentID     string
	Name           string
	Kind           MediaKind
	IntegrityToken string
	Created        time.Time
	CreatedBy      string
}

// TimelineEvent is one entry in an incident's append-only audit
// timeline. Ordering key is the timestamp; ties keep insertion order.
type TimelineEvent struct {
	ID         string
	IncidentID string
	Created    time.Time
	ActorName  string
	ActorRole  Role
	Action     string
	Detail     string
}

// Audit action labels. Every state-affecting operation appends one of
// these, including rejected closure attempts.
const (
	ActionIncidentCreated  = "incident created"
	ActionUnitAssigned     = "unit assigned"
	ActionStatusChanged    = "status changed"
	ActionClosureBlocked   = "closure blocked"
	ActionClosureOverride  = "closure override"
	ActionEvidenceAttached = "evidence attached"
)
