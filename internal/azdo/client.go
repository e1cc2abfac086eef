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

package azdo

import "context"

// Client defines the interface for fetching pull requests from Azure DevOps.
// This interface allows for easy mocking in tests.
type Client interface {
	// FetchPullRequests issues a single request for all pull requests created
	// on or after q.StartDate, capped at MaxResults. It returns the raw objects
	// of the response's `value` array, which may be empty.
	FetchPullRequests(ctx context.Context, q Query) ([]map[string]any, error)
}
