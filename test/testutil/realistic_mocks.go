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

package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// AzureDevOpsLikeMockServer behaves like the pull request search endpoint:
// it checks the PAT, routes by organization and project, and applies the
// minTime and $top search criteria.
type AzureDevOpsLikeMockServer struct {
	*httptest.Server
	mu             sync.RWMutex
	pat            string
	projects       map[string][]map[string]any
	requestHistory []RecordedRequest
}

// RecordedRequest is one request seen by the server.
type RecordedRequest struct {
	Path      string
	Query     url.Values
	Timestamp time.Time
}

// NewAzureDevOpsLikeMockServer creates a realistic mock that accepts pat.
func NewAzureDevOpsLikeMockServer(t *testing.T, pat string) *AzureDevOpsLikeMockServer {
	t.Helper()

	mock := &AzureDevOpsLikeMockServer{
		pat:      pat,
		projects: map[string][]map[string]any{},
	}

	mock.Server = httptest.NewServer(http.HandlerFunc(mock.handle))
	t.Cleanup(mock.Close)
	return mock
}

// AddProject registers the pull requests of org/project.
func (m *AzureDevOpsLikeMockServer) AddProject(org, project string, prs []map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[org+"/"+project] = prs
}

// GetRequestHistory returns the requests received so far.
func (m *AzureDevOpsLikeMockServer) GetRequestHistory() []RecordedRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	history := make([]RecordedRequest, len(m.requestHistory))
	copy(history, m.requestHistory)
	return history
}

func (m *AzureDevOpsLikeMockServer) handle(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requestHistory = append(m.requestHistory, RecordedRequest{
		Path:      r.URL.Path,
		Query:     r.URL.Query(),
		Timestamp: time.Now(),
	})
	m.mu.Unlock()

	if r.Method != http.MethodGet || !strings.HasSuffix(r.URL.Path, PullRequestsPath) {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if r.Header.Get("Authorization") != BasicAuth(m.pat) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("Access Denied: The Personal Access Token used has expired."))
		return
	}

	q := r.URL.Query()
	if q.Get("api-version") == "" {
		writeJSONError(w, http.StatusBadRequest,
			"No api-version was supplied for the \"GET\" request.", "VssVersionNotSpecifiedException")
		return
	}

	segments := strings.Split(strings.Trim(strings.TrimSuffix(r.URL.Path, PullRequestsPath), "/"), "/")
	if len(segments) != 2 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	org, project := segments[0], segments[1]

	m.mu.RLock()
	prs, ok := m.projects[org+"/"+project]
	m.mu.RUnlock()
	if !ok {
		writeJSONError(w, http.StatusNotFound,
			fmt.Sprintf("TF200016: The following project does not exist: %s. Verify that the name of the project is correct and that the project exists on the specified Azure DevOps Server.", project),
			"ProjectDoesNotExistWithNameException")
		return
	}

	result := make([]map[string]any, 0, len(prs))
	minTime, err := time.Parse("2006-01-02", q.Get("searchCriteria.minTime"))
	for _, pr := range prs {
		if err == nil {
			created, perr := time.Parse(time.RFC3339Nano, fmt.Sprint(pr["creationDate"]))
			if perr == nil && created.Before(minTime) {
				continue
			}
		}
		result = append(result, pr)
	}

	if top, err := strconv.Atoi(q.Get("$top")); err == nil && top < len(result) {
		result = result[:top]
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(GeneratePRResponse(result))
}

func writeJSONError(w http.ResponseWriter, status int, message, typeKey string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"$id":       "1",
		"message":   message,
		"typeKey":   typeKey,
		"errorCode": 0,
		"eventId":   3000,
	})
}
