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
	"github.com/stretchr/testify/require"
)

func TestSuggestUnitPrefersSectorMatch(t *testing.T) {
	t.Parallel()
	inc := store.Incident{Sector: "NORTH"}
	units := []store.Unit{
		{ID: "u1", Callsign: "PAT-1", Status: store.UnitStatusAvailable, Sector: "SOUTH"},
		{ID: "u2", Callsign: "PAT-2", Status: store.UnitStatusAvailable, Sector: "NORTH"},
		{ID: "u3", Callsign: "PAT-3", Status: store.UnitStatusAvailable, Sector: "NORTH"},
	}

	unit, found := policy.SuggestUnit(inc, units)
	require.True(t, found)
	assert.Equal(t, "u2", unit.ID)
}

func TestSuggestUnitFallsBackToFirstAvailable(t *testing.T) {
	t.Parallel()
	inc := store.Incident{Sector: "EAST"}
	units := []store.Unit{
		{ID: "u1", Status: store.UnitStatusOnScene, Sector: "EAST"},
		{ID: "u2", Status: store.UnitStatusAvailable, Sector: "WEST"},
		{ID: "u3", Status: store.UnitStatusAvailable, Sector: "SOUTH"},
	}

	// the in-sector unit is busy, so registration order decides
	unit, found := policy.SuggestUnit(inc, units)
	require.True(t, found)
	assert.Equal(t, "u2", unit.ID)
}

func TestSuggestUnitSkipsBusyUnits(t *testing.T) {
	t.Parallel()
	inc := store.Incident{Sector: "NORTH"}
	units := []store.Unit{
		{ID: "u1", Status: store.UnitStatusAssigned, Sector: "NORTH"},
		{ID: "u2", Status: store.UnitStatusUnavailable, Sector: "NORTH"},
		{ID: "u3", Status: store.UnitStatusAvailable, Sector: "NORTH"},
	}

	unit, found := policy.SuggestUnit(inc, units)
	require.True(t, found)
	assert.Equal(t, "u3", unit.ID)
}

func TestSuggestUnitNoneAvailable(t *testing.T) {
	t.Parallel()
	inc := store.Incident{Sector: "NORTH"}
	units := []store.Unit{
		{ID: "u1", Status: store.UnitStatusEnRoute, Sector: "NORTH"},
		{ID: "u2", Status: store.UnitStatusOnScene, Sector: "SOUTH"},
	}

	_, found := policy.SuggestUnit(inc, units)
	assert.False(t, found)

	_, found = policy.SuggestUnit(inc, nil)
	assert.False(t, found)
}
