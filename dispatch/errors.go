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

package dispatch

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by any operation whose incident or unit
// reference does not resolve. The operation fails fast, before any
// mutation.
var ErrNotFound = errors.New("not found")

func incidentNotFound(id string) error {
	return fmt.Errorf("incident %v: %w", id, ErrNotFound)
}

func unitNotFound(id string) error {
	return fmt.Errorf("unit %v: %w", id, ErrNotFound)
}

// ValidationError rejects malformed input to a create or attach
// operation. Nothing is recorded when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %v: %v", e.Field, e.Message)
}

// PolicyError rejects an override attempt that is outside the override
// path: wrong role, or a closure that is not overridable. Unlike a
// blocked regular closure, no state changes and nothing is audited.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string {
	return e.Reason
}
