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

	"github.com/c5dispatch/cad-go/dispatch"
	cadjson "github.com/c5dispatch/cad-go/json"
	"github.com/c5dispatch/cad-go/store"
)

type GetEvidence struct {
	orch *dispatch.Orchestrator
}

func (action GetEvidence) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	evidence, err := action.orch.ListEvidence(req.PathValue("incidentId"))
	if err != nil {
		dispatchError(err).From("[ListEvidence]").WriteResponse(w)
		return
	}
	resp := make(cadjson.EvidenceList, 0, len(evidence))
	for _, ev := range evidence {
		resp = append(resp, evidenceToJSON(ev))
	}
	mustWriteJSON(w, resp)
}

type AttachEvidence struct {
	orch *dispatch.Orchestrator
	es   *EventSourcerer
}

func (action AttachEvidence) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	actor, errHTTP := requireActor(req)
	if errHTTP != nil {
		errHTTP.From("[requireActor]").WriteResponse(w)
		return
	}
	vals, errHTTP := readValidBodyAs[cadjson.AttachEvidenceRequest](req)
	if errHTTP != nil {
		errHTTP.From("[readValidBodyAs]").WriteResponse(w)
		return
	}

	created, err := action.orch.AttachEvidence(actor, req.PathValue("incidentId"), vals.Name, store.MediaKind(vals.Kind))
	if err != nil {
		dispatchError(err).From("[AttachEvidence]").WriteResponse(w)
		return
	}
	action.es.notifyIncidentUpdate(created.IncidentID)

	w.WriteHeader(http.StatusCreated)
	mustWriteJSON(w, evidenceToJSON(created))
}
