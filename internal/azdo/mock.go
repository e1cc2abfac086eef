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

import (
	"context"
	"fmt"
	"time"

	relayerrors "github.com/sirseerhq/ado-dashboard/internal/errors"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	// PullRequests are the raw objects to return
	PullRequests []map[string]any

	// Error to return
	Error error

	// Behavior flags
	ShouldFailAuth    bool
	ShouldFailNetwork bool

	// Track calls for verification
	CallCount int
	LastQuery Query
}

// NewMockClient creates a new mock client with default test data
func NewMockClient() *MockClient {
	return &MockClient{
		PullRequests: generateTestPRs(),
	}
}

// FetchPullRequests implements the Client interface
func (m *MockClient) FetchPullRequests(ctx context.Context, q Query) ([]map[string]any, error) {
	m.CallCount++
	m.LastQuery = q

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.ShouldFailAuth {
		return nil, &relayerrors.HTTPError{StatusCode: 401, Body: "Access Denied: The Personal Access Token used has expired."}
	}

	if m.ShouldFailNetwork {
		return nil, &relayerrors.TransportError{Kind: "dns", Err: fmt.Errorf("dial tcp: lookup dev.azure.com: no such host")}
	}

	if m.Error != nil {
		return nil, m.Error
	}

	return m.PullRequests, nil
}

// RawPullRequest builds a raw pull request object shaped like the REST response.
func RawPullRequest(id int, title, status, repository, creator string, created time.Time) map[string]any {
	return map[string]any{
		"pullRequestId": id,
		"title":         title,
		"status":        status,
		"repository": map[string]any{
			"name": repository,
		},
		"createdBy": map[string]any{
			"displayName": creator,
		},
		"creationDate": created.UTC().Format(time.RFC3339),
	}
}

// generateTestPRs creates sample pull request data for testing
func generateTestPRs() []map[string]any {
	base := time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC)

	return []map[string]any{
		RawPullRequest(101, "Add retry budget to deploy job", "active", "Alpha", "Alice", base),
		RawPullRequest(102, "Fix flaky integration test", "completed", "Beta", "Bob", base.Add(2*time.Hour)),
		RawPullRequest(103, "Update README", "abandoned", "Alpha", "Charlie", base.Add(26*time.Hour)),
	}
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithPullRequests sets specific pull requests to return
func WithPullRequests(prs []map[string]any) MockClientOption {
	return func(m *MockClient) {
		m.PullRequests = prs
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithAuthFailure makes the client simulate a rejected PAT
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// WithNetworkFailure makes the client simulate a DNS failure
func WithNetworkFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailNetwork = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
