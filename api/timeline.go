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

package api

import (
	"net/http"
	"slices"

	"github.com/c5dispatch/cad-go/dispatch"
	cadjson "github.com/c5dispatch/cad-go/json"
)

type GetTimeline struct {
	orch *dispatch.Orchestrator
}

func (action GetTimeline) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	events, err := action.orch.Timeline(req.PathValue("incidentId"))
	if err != nil {
		dispatchError(err).From("[Timeline]").WriteResponse(w)
		return
	}

	resp := make(cadjson.Timeline, 0, len(events))
	for _, ev := range events {
		resp = append(resp, timelineEventToJSON(ev))
	}
	// Newest first for display. Events with equal timestamps keep
	// their relative append order reversed consistently.
	slices.Reverse(resp)
	mustWriteJSON(w, resp)
}
