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

package policy_test

import (
	"testing"

	"github.com/c5dispatch/cad-go/policy"
	"github.com/c5dispatch/cad-go/store"
	"github.com/stretchr/testify/assert"
)

func TestCanClose(t *testing.T) {
	t.Parallel()

	open := store.Incident{Severity: store.SeverityHigh, Status: store.IncidentStatusOnScene}
	critical := store.Incident{Severity: store.SeverityCritical, Status: store.IncidentStatusOnScene}
	closed := store.Incident{Severity: store.SeverityLow, Status: store.IncidentStatusClosed}

	tests := []struct {
		name          string
		inc           store.Incident
		role          store.Role
		evidenceCount int
		want          policy.Decision
	}{
		{
			name: "admin never closes",
			inc:  open, role: store.RoleAdmin, evidenceCount: 5,
			want: policy.Decision{Reason: policy.ReasonAdministrativeRole},
		},
		{
			name: "admin rule wins over already closed",
			inc:  closed, role: store.RoleAdmin,
			want: policy.Decision{Reason: policy.ReasonAdministrativeRole},
		},
		{
			name: "closed stays closed",
			inc:  closed, role: store.RoleCoordinator,
			want: policy.Decision{Reason: policy.ReasonAlreadyClosed},
		},
		{
			name: "critical without evidence blocks operator without override",
			inc:  critical, role: store.RoleOperator,
			want: policy.Decision{Reason: policy.ReasonEvidenceRequired},
		},
		{
			name: "critical without evidence is coordinator-overridable",
			inc:  critical, role: store.RoleCoordinator,
			want: policy.Decision{Reason: policy.ReasonEvidenceRequired, Overridable: true},
		},
		{
			name: "operator cannot close critical even with evidence",
			inc:  critical, role: store.RoleOperator, evidenceCount: 2,
			want: policy.Decision{Reason: policy.ReasonOperatorCritical},
		},
		{
			name: "coordinator closes critical with evidence",
			inc:  critical, role: store.RoleCoordinator, evidenceCount: 1,
			want: policy.Decision{Allowed: true},
		},
		{
			name: "operator closes non-critical without evidence",
			inc:  open, role: store.RoleOperator,
			want: policy.Decision{Allowed: true},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := policy.CanClose(test.inc, test.role, test.evidenceCount)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestValidOverrideJustification(t *testing.T) {
	t.Parallel()
	assert.True(t, policy.ValidOverrideJustification("unit recalled by watch commander"))
	assert.True(t, policy.ValidOverrideJustification("exactly10c"))
	assert.False(t, policy.ValidOverrideJustification("too short"))
	assert.False(t, policy.ValidOverrideJustification(""))

	// whitespace padding does not count toward the minimum
	assert.False(t, policy.ValidOverrideJustification("   short     "))
}
