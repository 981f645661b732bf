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
	"sync"
	"time"
)

// Store holds the session state of the CAD core: incidents, units,
// evidence and the per-incident audit timelines. It is volatile by
// design; nothing survives the process (persistence is out of scope
// for this core).
//
// A single RWMutex guards everything. Each orchestrator operation runs
// as one Update call, so a concurrent reader observes either the full
// pre-operation state or the full post-operation state, never a
// partial mutation.
type Store struct {
	mu    sync.RWMutex
	state State
}

func New() *Store {
	return &Store{
		state: State{
			incidents: make(map[string]*Incident),
			units:     make(map[string]*Unit),
			evidence:  make(map[string][]Evidence),
			timelines: make(map[string][]TimelineEvent),
		},
	}
}

// View runs fn with read access to a consistent snapshot of the state.
// fn must not retain the *State or anything reachable from it after it
// returns; copy out what you need.
func (s *Store) View(fn func(st *State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.state)
}

// Update runs fn with exclusive write access to the state. This is the
// single critical section the whole core serializes on.
func (s *Store) Update(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// State is the in-memory session dataset. All methods must be called
// from within Store.View or Store.Update.
type State struct {
	incidents     map[string]*Incident
	incidentOrder []string
	units         map[string]*Unit
	unitOrder     []string
	evidence      map[string][]Evidence
	timelines     map[string][]TimelineEvent
	folioSeq      int32
}

func (st *State) IncidentByID(id string) *Incident {
	return st.incidents[id]
}

// Incidents returns copies of all incidents in insertion order.
func (st *State) Incidents() []Incident {
	out := make([]Incident, 0, len(st.incidentOrder))
	for _, id := range st.incidentOrder {
		out = append(out, *st.incidents[id])
	}
	return out
}

func (st *State) AddIncident(inc Incident) {
	st.incidents[inc.ID] = &inc
	st.incidentOrder = append(st.incidentOrder, inc.ID)
}

func (st *State) UnitByID(id string) *Unit {
	return st.units[id]
}

// Units returns copies of all units in registration order. The unit
// suggestion policy depends on this ordering for its tie-break.
func (st *State) Units() []Unit {
	out := make([]Unit, 0, len(st.unitOrder))
	for _, id := range st.unitOrder {
		out = append(out, *st.units[id])
	}
	return out
}

func (st *State) AddUnit(u Unit) {
	st.units[u.ID] = &u
	st.unitOrder = append(st.unitOrder, u.ID)
}

// EvidenceFor returns the evidence attached to an incident, oldest
// first. The returned slice is a copy.
func (st *State) EvidenceFor(incidentID string) []Evidence {
	evs := st.evidence[incidentID]
	out := make([]Evidence, len(evs))
	copy(out, evs)
	return out
}

func (st *State) EvidenceCount(incidentID string) int {
	return len(st.evidence[incidentID])
}

func (st *State) AppendEvidence(ev Evidence) {
	st.evidence[ev.IncidentID] = append(st.evidence[ev.IncidentID], ev)
}

// TimelineFor returns an incident's audit events in append order.
// The returned slice is a copy.
func (st *State) TimelineFor(incidentID string) []TimelineEvent {
	evs := st.timelines[incidentID]
	out := make([]TimelineEvent, len(evs))
	copy(out, evs)
	return out
}

// AppendEvent records an audit event. It never fails: the audit log is
// a pure recorder with no validation of its own.
func (st *State) AppendEvent(ev TimelineEvent) {
	st.timelines[ev.IncidentID] = append(st.timelines[ev.IncidentID], ev)
}

// NextFolio reserves the next human-readable folio, e.g. C5-2026-00007.
// Folios are unique per session and immutable once assigned.
func (st *State) NextFolio(now time.Time) string {
	st.folioSeq++
	return fmt.Sprintf("C5-%d-%05d", now.Year(), st.folioSeq)
}
