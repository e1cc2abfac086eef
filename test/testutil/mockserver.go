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

// Package testutil provides common test helpers for ado-dashboard
package testutil

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// PullRequestsPath is the path suffix of the pull request search endpoint.
const PullRequestsPath = "/_apis/git/pullrequests"

// MockServer wraps an httptest.Server and counts requests.
type MockServer struct {
	*httptest.Server
	requests int32
}

// NewMockServer creates a mock server around handler. The server is closed
// when the test ends.
func NewMockServer(t *testing.T, handler http.HandlerFunc) *MockServer {
	t.Helper()
	m := &MockServer{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&m.requests, 1)
		handler(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// RequestCount returns the number of requests received.
func (m *MockServer) RequestCount() int {
	return int(atomic.LoadInt32(&m.requests))
}

// NewPullRequestServer creates a mock server that answers every request with
// prs as the value array.
func NewPullRequestServer(t *testing.T, prs []map[string]any) *MockServer {
	t.Helper()
	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(GeneratePRResponse(prs))
	})
}

// NewErrorServer creates a mock server that always returns statusCode with body.
func NewErrorServer(t *testing.T, statusCode int, body string) *MockServer {
	t.Helper()
	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	})
}

// NewRawServer creates a mock server that returns body verbatim with a 200.
func NewRawServer(t *testing.T, body string) *MockServer {
	t.Helper()
	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}

// NewSlowServer creates a mock server that waits for delay, or until the
// client gives up, before answering with an empty result.
func NewSlowServer(t *testing.T, delay time.Duration) *MockServer {
	t.Helper()
	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(GeneratePRResponse(nil))
	})
}

// GeneratePRResponse wraps raw pull request objects the way the REST API
// does.
func GeneratePRResponse(prs []map[string]any) map[string]any {
	if prs == nil {
		prs = []map[string]any{}
	}
	return map[string]any{
		"value": prs,
		"count": len(prs),
	}
}

// AssertPullRequestRequest validates the request sent by the REST client.
func AssertPullRequestRequest(t *testing.T, r *http.Request, org, project, pat string) {
	t.Helper()

	if r.Method != http.MethodGet {
		t.Errorf("Expected GET method, got: %s", r.Method)
	}
	if want := "/" + org + "/" + project + PullRequestsPath; r.URL.Path != want {
		t.Errorf("Unexpected path: %s, want %s", r.URL.Path, want)
	}

	q := r.URL.Query()
	expected := map[string]string{
		"api-version":                       "7.2-preview.2",
		"searchCriteria.status":             "all",
		"searchCriteria.queryTimeRangeType": "created",
		"$top":                              "1000",
	}
	for k, v := range expected {
		if got := q.Get(k); got != v {
			t.Errorf("Query parameter %s = %q, want %q", k, got, v)
		}
	}
	if _, err := time.Parse("2006-01-02", q.Get("searchCriteria.minTime")); err != nil {
		t.Errorf("searchCriteria.minTime is not a date: %q", q.Get("searchCriteria.minTime"))
	}

	if auth := r.Header.Get("Authorization"); auth != BasicAuth(pat) {
		t.Errorf("Authorization = %q, want %q", auth, BasicAuth(pat))
	}
	if ct := r.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type: application/json, got: %s", ct)
	}
	if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "ado-dashboard/") {
		t.Errorf("Unexpected User-Agent: %s", ua)
	}
}

// BasicAuth returns the Authorization header value for pat.
func BasicAuth(pat string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(":"+pat))
}
