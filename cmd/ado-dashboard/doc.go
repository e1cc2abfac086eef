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

// Package main implements the ado-dashboard command-line interface.
// This tool lists the pull requests of one Azure DevOps project, filters
// them by status, repository and creator, and shows them as a table or
// exports them as CSV.
//
// The CLI supports:
//   - A one-shot fetch that prints a table or CSV (fetch)
//   - An interactive browser with filters and CSV export (browse)
//   - Connection settings from flags, environment, secrets.toml or a YAML config file
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	ado-dashboard fetch [flags]
//	ado-dashboard browse [flags]
//
// Example:
//
//	export ADO_PAT=your_token
//	ado-dashboard fetch --org contoso --project web --since 2024-03-01 --repository Alpha
//	ado-dashboard fetch --org contoso --project web --format csv --output ./exports
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication error or incomplete connection settings
//   - 3: Network error
//   - 4: Unexpected response shape
package main
