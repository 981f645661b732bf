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

// Package policy is the dispatch policy engine: pure functions over
// immutable snapshots of incidents, units and evidence. Nothing in
// here mutates state; the orchestrator applies these decisions.
package policy

import (
	"math"
	"time"

	"github.com/c5dispatch/cad-go/store"
)

// AtRiskThresholdMinutes is the remaining-SLA level at or below which
// an open incident is flagged as at risk.
const AtRiskThresholdMinutes = 3

// Remaining returns the whole minutes left in an incident's SLA budget
// at the given instant, floored at zero. Elapsed time is rounded to
// the nearest minute. The value is advisory only; it never gates an
// operation.
func Remaining(inc store.Incident, now time.Time) int32 {
	elapsed := int32(math.Round(now.Sub(inc.Created).Minutes()))
	remaining := inc.SLABudgetMinutes - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AtRisk reports whether an incident is within the at-risk threshold.
// Closed incidents are never at risk.
func AtRisk(inc store.Incident, now time.Time) bool {
	if inc.Status == store.IncidentStatusClosed {
		return false
	}
	return Remaining(inc, now) <= AtRiskThresholdMinutes
}
