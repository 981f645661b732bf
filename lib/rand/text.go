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

package rand

import (
	cryptorand "crypto/rand"
	mathrand "math/rand/v2"
	"sync"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

var (
	mu  sync.Mutex
	src *mathrand.ChaCha8
)

func init() {
	var seed [32]byte
	_, _ = cryptorand.Read(seed[:])
	src = mathrand.NewChaCha8(seed)
}

// NonCryptoText returns a 26-character base32 string carrying 128 bits
// of ChaCha8 output. It is cheap rather than cryptographically secure:
// a source of short readable identifiers for tests and other places
// where uuid.NewString would be overkill.
func NonCryptoText() string {
	mu.Lock()
	defer mu.Unlock()
	buf := make([]byte, 26)
	// ChaCha8.Read never returns an error
	_, _ = src.Read(buf)
	for i, b := range buf {
		buf[i] = idAlphabet[b%32]
	}
	return string(buf)
}
