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

// Package errors defines sentinel and typed errors for consistent error handling across the application.
// The sentinels map to specific exit codes in the CLI; the typed errors carry the details
// (status code, response body, failing field) that the presentation layer shows to the user.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrConfigIncomplete indicates organization, project or PAT is missing.
	// Maps to exit code 2.
	ErrConfigIncomplete = errors.New("configuration incomplete")

	// ErrInvalidToken indicates Azure DevOps rejected the personal access token.
	// Maps to exit code 2.
	ErrInvalidToken = errors.New("invalid personal access token")

	// ErrHTTPStatus indicates the API answered with a non-200 status.
	// Maps to exit code 1 unless it is also an ErrInvalidToken.
	ErrHTTPStatus = errors.New("unexpected http status")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrMapping indicates a pull request record did not have the expected shape.
	// Maps to exit code 4.
	ErrMapping = errors.New("malformed pull request record")

	// ErrNoResults indicates an operation needs a loaded, non-empty result set.
	ErrNoResults = errors.New("no pull requests loaded")
)

// ConfigIncompleteError lists the required settings that are empty.
type ConfigIncompleteError struct {
	Missing []string
}

func (e *ConfigIncompleteError) Error() string {
	return fmt.Sprintf("please provide Azure DevOps %s to continue", strings.Join(e.Missing, ", "))
}

// Is reports whether target is ErrConfigIncomplete.
func (e *ConfigIncompleteError) Is(target error) bool {
	return target == ErrConfigIncomplete
}

// HTTPError is returned when the pull request endpoint answers with a non-200 status.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("Error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("Error: %d\n%s", e.StatusCode, body)
}

// Is matches ErrHTTPStatus for every status, and ErrInvalidToken for 401 and 403.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrHTTPStatus:
		return true
	case ErrInvalidToken:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// TransportError wraps a failure that happened before any HTTP response was received.
type TransportError struct {
	// Kind is a short classification such as "dns", "timeout", "refused" or "tls".
	Kind string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("An error occurred: %v", e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrNetworkFailure, e.Err}
}

// MappingError reports the first record that could not be normalized.
type MappingError struct {
	Index  int
	Field  string
	Reason string
}

func (e *MappingError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed response: field %q %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed pull request at index %d: field %q %s", e.Index, e.Field, e.Reason)
}

// Is reports whether target is ErrMapping.
func (e *MappingError) Is(target error) bool {
	return target == ErrMapping
}
