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

// Package argon2id hashes and verifies passwords with Argon2id, using
// the standard encoded form:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<base64 salt>$<base64 key>
package argon2id

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrInvalidHash is returned when a stored hash is not in the expected encoded form.
	ErrInvalidHash = errors.New("argon2id: hash is not in the correct format")

	// ErrIncompatibleVariant is returned when a stored hash was made with a
	// different Argon2 variant (argon2i or argon2d).
	ErrIncompatibleVariant = errors.New("argon2id: incompatible variant of argon2")

	// ErrIncompatibleVersion is returned when a stored hash was made with a
	// different version of Argon2.
	ErrIncompatibleVersion = errors.New("argon2id: incompatible version of argon2")
)

type Params struct {
	// Memory is the amount of memory used by the algorithm, in KiB.
	Memory uint32

	// Iterations is the number of passes over the memory.
	Iterations uint32

	// Parallelism is the number of threads used by the algorithm.
	Parallelism uint8

	SaltLength uint32
	KeyLength  uint32
}

// DefaultParams are fine for production use per the RFC 9106
// low-memory recommendation.
var DefaultParams = &Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: uint8(min(runtime.NumCPU(), 255)),
	SaltLength:  16,
	KeyLength:   32,
}

// DevelopmentParams trade strength for speed. Use them for local
// servers and tests, never for a real deployment.
var DevelopmentParams = &Params{
	Memory:      64 * 1024,
	Iterations:  1,
	Parallelism: uint8(min(runtime.NumCPU(), 255)),
	SaltLength:  16,
	KeyLength:   32,
}

// CreateHash returns an Argon2id hash of a plain-text password in the
// standard encoded form. Each call uses a fresh random salt, so two
// hashes of the same password will differ.
func CreateHash(password string, params *Params) string {
	salt := make([]byte, params.SaltLength)
	// rand.Read never fails as of Go 1.24.
	_, _ = rand.Read(salt)

	key := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Key := base64.RawStdEncoding.EncodeToString(key)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, params.Memory, params.Iterations, params.Parallelism, b64Salt, b64Key,
	)
}

// ComparePasswordAndHash performs a constant-time comparison between a
// plain-text password and an encoded Argon2id hash.
func ComparePasswordAndHash(password, hash string) (match bool, err error) {
	match, _, err = CheckHash(password, hash)
	return match, err
}

// CheckHash is like ComparePasswordAndHash, except it also returns the
// params that the hash was created with. This can be useful if you want
// to update your hash params over time.
func CheckHash(password, hash string) (match bool, params *Params, err error) {
	params, salt, key, err := DecodeHash(hash)
	if err != nil {
		return false, nil, err
	}

	otherKey := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)

	keyLen := int32(len(key))
	otherKeyLen := int32(len(otherKey))
	if subtle.ConstantTimeEq(keyLen, otherKeyLen) == 0 {
		return false, params, nil
	}
	if subtle.ConstantTimeCompare(key, otherKey) == 1 {
		return true, params, nil
	}
	return false, params, nil
}

// DecodeHash parses an encoded Argon2id hash into the params, salt,
// and derived key it holds. Parsing is strict: junk around any field
// is an error, not something to skip past.
func DecodeHash(hash string) (params *Params, salt, key []byte, err error) {
	// base64 decoders skip \r and \n, so reject them up front.
	if strings.ContainsAny(hash, "\r\n") {
		return nil, nil, nil, ErrInvalidHash
	}
	vals := strings.Split(hash, "$")
	if len(vals) != 6 {
		return nil, nil, nil, ErrInvalidHash
	}
	if vals[1] != "argon2id" {
		return nil, nil, nil, ErrIncompatibleVariant
	}

	version, err := decodeInt[int](vals[2], "v")
	if err != nil {
		return nil, nil, nil, err
	}
	if version != argon2.Version {
		return nil, nil, nil, ErrIncompatibleVersion
	}

	perf := strings.Split(vals[3], ",")
	if len(perf) != 3 {
		return nil, nil, nil, ErrInvalidHash
	}
	params = &Params{}
	if params.Memory, err = decodeInt[uint32](perf[0], "m"); err != nil {
		return nil, nil, nil, err
	}
	if params.Iterations, err = decodeInt[uint32](perf[1], "t"); err != nil {
		return nil, nil, nil, err
	}
	if params.Parallelism, err = decodeInt[uint8](perf[2], "p"); err != nil {
		return nil, nil, nil, err
	}

	salt, err = base64.RawStdEncoding.Strict().DecodeString(vals[4])
	if err != nil {
		return nil, nil, nil, ErrInvalidHash
	}
	params.SaltLength = uint32(len(salt))

	key, err = base64.RawStdEncoding.Strict().DecodeString(vals[5])
	if err != nil {
		return nil, nil, nil, ErrInvalidHash
	}
	params.KeyLength = uint32(len(key))

	return params, salt, key, nil
}

func decodeInt[T int | uint8 | uint32](field, prefix string) (T, error) {
	val, found := strings.CutPrefix(field, prefix+"=")
	if !found {
		return 0, ErrInvalidHash
	}
	i, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, ErrInvalidHash
	}
	if uint64(T(i)) != i {
		return 0, ErrInvalidHash
	}
	return T(i), nil
}
