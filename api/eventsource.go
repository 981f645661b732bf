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
	"encoding/json"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/launchdarkly/eventsource"
)

const EventSourceChannel = "cadevents"

type CADEventData struct {
	Comment string `json:"comment,omitzero"`

	// Exactly one of IncidentID, UnitID, or InitialEvent must be set,
	// as this indicates the type of CAD SSE.

	IncidentID   string `json:"incident_id,omitzero"`
	UnitID       string `json:"unit_id,omitzero"`
	InitialEvent bool   `json:"initial_event,omitzero"`
}

type CADEvent struct {
	EventID   int64
	EventData CADEventData
}

func (e CADEvent) Id() string {
	return strconv.FormatInt(e.EventID, 10)
}

func (e CADEvent) Event() string {
	if e.EventData.IncidentID != "" {
		return "Incident"
	}
	if e.EventData.UnitID != "" {
		return "Unit"
	}
	if e.EventData.InitialEvent {
		return "InitialEvent"
	}
	return "UnknownEvent"
}

func (e CADEvent) Data() string {
	b, err := json.Marshal(e.EventData)
	if err != nil {
		slog.Error("Error converting CADEvent to JSON", "EventData", e.EventData, "err", err)
	}
	return string(b)
}

// EventSourcerer fans state changes out to SSE subscribers. Handlers
// call the notify methods after a write commits; nothing is published
// for reads or for rejected operations that changed no state.
type EventSourcerer struct {
	Server    *eventsource.Server
	IdCounter atomic.Int64
}

func NewEventSourcerer() *EventSourcerer {
	es := &EventSourcerer{
		Server:    eventsource.NewServer(),
		IdCounter: atomic.Int64{},
	}
	es.Server.Register(EventSourceChannel, es)
	es.Server.ReplayAll = true
	return es
}

func (es *EventSourcerer) Replay(channel, id string) chan eventsource.Event {
	if channel != EventSourceChannel {
		return nil
	}
	out := make(chan eventsource.Event, 1)
	out <- CADEvent{
		EventID: es.IdCounter.Load(),
		EventData: CADEventData{
			InitialEvent: true,
			Comment:      "The most recent SSE ID is provided in this message",
		},
	}
	close(out)
	return out
}

func (es *EventSourcerer) notifyIncidentUpdate(incidentID string) {
	if incidentID == "" {
		return
	}
	es.Server.Publish([]string{EventSourceChannel}, CADEvent{
		EventID: es.IdCounter.Add(1),
		EventData: CADEventData{
			IncidentID: incidentID,
		},
	})
}

func (es *EventSourcerer) notifyUnitUpdate(unitID string) {
	if unitID == "" {
		return
	}
	es.Server.Publish([]string{EventSourceChannel}, CADEvent{
		EventID: es.IdCounter.Add(1),
		EventData: CADEventData{
			UnitID: unitID,
		},
	})
}
