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

type AuthRequest struct {
	Identification string `json:"identification" validate:"required"`
	Password       string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

type WhoAmI struct {
	Authenticated bool   `json:"authenticated"`
	Handle        string `json:"handle,omitzero"`
	Role          string `json:"role,omitzero"`
}
