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

// Package integration exercises the whole pipeline in-process: the REST
// client against a mock Azure DevOps server, normalization, the session,
// filtering and both renderers.
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/sirseerhq/ado-dashboard/internal/azdo"
	"github.com/sirseerhq/ado-dashboard/internal/logging"
	"github.com/sirseerhq/ado-dashboard/internal/session"
	"github.com/sirseerhq/ado-dashboard/test/testutil"
)

const (
	testOrg     = "contoso"
	testProject = "web"
	testPAT     = "integration-pat"
)

var testSince = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func testQuery() azdo.Query {
	return azdo.Query{Organization: testOrg, Project: testProject, StartDate: testSince}
}

// newServer starts an Azure DevOps-like server holding prs for the test
// project.
func newServer(t *testing.T, prs []map[string]any) *testutil.AzureDevOpsLikeMockServer {
	t.Helper()
	server := testutil.NewAzureDevOpsLikeMockServer(t, testPAT)
	server.AddProject(testOrg, testProject, prs)
	return server
}

func newSession(baseURL, pat string, opts azdo.ClientOptions) *session.Session {
	opts.BaseURL = baseURL
	return session.New(azdo.NewRESTClient(pat, opts), logging.Discard())
}

// fetch runs one cycle against baseURL.
func fetch(t *testing.T, baseURL, pat string) (*session.Session, error) {
	t.Helper()
	sess := newSession(baseURL, pat, azdoOptions())
	err := sess.Fetch(context.Background(), testQuery())
	return sess, err
}

func alphaBetaPullRequests() []map[string]any {
	base := time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC)
	return []map[string]any{
		testutil.NewPullRequestBuilder(1).WithTitle("A").WithStatus("active").
			WithRepository("Alpha").WithCreator("Alice").WithCreatedAt(base).Build(),
		testutil.NewPullRequestBuilder(2).WithTitle("B").WithStatus("completed").
			WithRepository("Beta").WithCreator("Bob").WithCreatedAt(base.Add(time.Hour)).Build(),
		testutil.NewPullRequestBuilder(3).WithTitle("C").WithStatus("active").
			WithRepository("Alpha").WithCreator("Bob").WithCreatedAt(base.Add(2 * time.Hour)).Build(),
	}
}

func azdoOptions() azdo.ClientOptions {
	return azdo.ClientOptions{Timeout: 5 * time.Second}
}
