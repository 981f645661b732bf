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

package policy

import (
	"strings"

	"github.com/c5dispatch/cad-go/store"
)

// MinOverrideJustification is the minimum length, after trimming
// whitespace, of a coordinator's override justification.
const MinOverrideJustification = 10

// Closure rejection reasons, returned to the caller and written to the
// audit timeline verbatim.
const (
	ReasonAdministrativeRole = "administrative role does not operate incidents"
	ReasonAlreadyClosed      = "incident is already closed"
	ReasonEvidenceRequired   = "critical incidents require evidence or a coordinator override"
	ReasonOperatorCritical   = "operators may not close critical incidents"
)

// Decision is the outcome of a closure eligibility check. A disallowed
// decision with Overridable set can still be forced by a coordinator
// through the override path.
type Decision struct {
	Allowed     bool   `json:"allowed"`
	Reason      string `json:"reason,omitzero"`
	Overridable bool   `json:"overridable"`
}

// CanClose evaluates the closure policy for an incident. Rules are
// checked in order and the first match wins:
//
//  1. ADMIN is a non-operational role and may never close.
//  2. A closed incident stays closed.
//  3. CRITICAL with no evidence is blocked; a COORDINATOR may override.
//  4. An OPERATOR may never close a CRITICAL incident, evidence or not.
//  5. Anything else is allowed.
func CanClose(inc store.Incident, role store.Role, evidenceCount int) Decision {
	if role == store.RoleAdmin {
		return Decision{Reason: ReasonAdministrativeRole}
	}
	if inc.Status == store.IncidentStatusClosed {
		return Decision{Reason: ReasonAlreadyClosed}
	}
	if inc.Severity == store.SeverityCritical && evidenceCount == 0 {
		return Decision{
			Reason:      ReasonEvidenceRequired,
			Overridable: role == store.RoleCoordinator,
		}
	}
	if role == store.RoleOperator && inc.Severity == store.SeverityCritical {
		return Decision{Reason: ReasonOperatorCritical}
	}
	return Decision{Allowed: true}
}

// ValidOverrideJustification reports whether a justification string is
// long enough to accompany a closure override.
func ValidOverrideJustification(justification string) bool {
	return len(strings.TrimSpace(justification)) >= MinOverrideJustification
}
