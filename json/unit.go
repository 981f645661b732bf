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

package json

type Units []Unit

type Unit struct {
	ID                string `json:"id"`
	Callsign          string `json:"callsign"`
	Agency            string `json:"agency"`
	Status            string `json:"status"`
	Sector            string `json:"sector"`
	LastKnownPosition string `json:"last_known_position,omitzero"`
}

type SetUnitStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
