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
	"github.com/c5dispatch/cad-go/store"
)

// SuggestUnit picks a unit for an incident. Only AVAILABLE units are
// considered. A unit in the incident's sector wins; otherwise the
// first available unit in registration order is suggested. The
// tie-break is deliberately greedy and deterministic; there is no
// distance or ETA computation.
func SuggestUnit(inc store.Incident, units []store.Unit) (store.Unit, bool) {
	var fallback *store.Unit
	for i := range units {
		if units[i].Status != store.UnitStatusAvailable {
			continue
		}
		if units[i].Sector == inc.Sector {
			return units[i], true
		}
		if fallback == nil {
			fallback = &units[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return store.Unit{}, false
}
