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
	"fmt"
	"time"

	"github.com/c5dispatch/cad-go/lib/rand"
)

// integrityToken derives the opaque token stored on an evidence
// record. It must be stable for the record's lifetime; it is not a
// cryptographic digest and the core makes no integrity claims from it.
func integrityToken(incidentID, name string, created time.Time) string {
	h := rand.NonCryptoHash64(incidentID + "/" + name + "/" + created.UTC().Format(time.RFC3339Nano))
	return fmt.Sprintf("%016x", uint64(h))
}
