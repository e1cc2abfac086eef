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

// Package azdo provides a client for the Azure DevOps pull request listing
// REST endpoint. It builds the search URL, authenticates with a personal
// access token and returns the raw `value` array of the response; turning
// those objects into rows is the job of package pullrequest.
//
// The package includes:
//   - A Client interface for fetching pull requests
//   - A REST implementation on net/http
//   - Mock client for testing
//
// Basic usage:
//
//	client := azdo.NewRESTClient("your-pat", azdo.ClientOptions{})
//	raw, err := client.FetchPullRequests(ctx, azdo.Query{
//	    Organization: "contoso",
//	    Project:      "web",
//	    StartDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
//	})
//	if err != nil {
//	    // *errors.HTTPError, *errors.TransportError or *errors.MappingError
//	}
package azdo
