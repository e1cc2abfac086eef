// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package session holds the state of one user's dashboard: the current fetch
// result, the filter selection and where the fetch cycle stands. All state
// is replaced wholesale by each fetch; filtering never re-fetches.
//
// State machine:
//
//	Idle ──fetch──▶ Fetching ──rows──▶ Loaded
//	                   │ ──no rows──▶ Empty
//	                   └──failure──▶ Error
//
// A new fetch from any state restarts at Fetching. There are no automatic
// transitions.
package session

// State is the position of a session in the fetch cycle.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateLoaded
	StateEmpty
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateLoaded:
		return "loaded"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
