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

package integration

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	relayerrors "github.com/sirseerhq/ado-dashboard/internal/errors"
	"github.com/sirseerhq/ado-dashboard/internal/output"
	"github.com/sirseerhq/ado-dashboard/internal/pullrequest"
	"github.com/sirseerhq/ado-dashboard/internal/session"
	"github.com/sirseerhq/ado-dashboard/test/testutil"
)

func TestPipeline_RepositoryFilter(t *testing.T) {
	server := newServer(t, alphaBetaPullRequests())

	sess, err := fetch(t, server.URL, testPAT)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if sess.State() != session.StateLoaded {
		t.Fatalf("state = %s, want loaded", sess.State())
	}

	opts := sess.Options()
	if !slices.Equal(opts.Repositories, []string{"Alpha", "Beta"}) {
		t.Errorf("repository options = %v", opts.Repositories)
	}

	sess.SetCriteria(pullrequest.NewCriteria(nil, []string{"Alpha"}, nil))
	var ids []int
	for _, r := range sess.Filtered() {
		ids = append(ids, r.ID)
	}
	if !slices.Equal(ids, []int{1, 3}) {
		t.Errorf("filtered ids = %v, want [1 3]", ids)
	}

	// options stay computed from the full set
	if got := sess.Options(); !slices.Equal(got.Repositories, opts.Repositories) || !slices.Equal(got.Creators, []string{"Alice", "Bob"}) {
		t.Errorf("options changed after filtering: %+v", got)
	}

	// selecting every repository is the identity
	sess.SetCriteria(pullrequest.NewCriteria(nil, []string{"Alpha", "Beta"}, nil))
	if len(sess.Filtered()) != 3 {
		t.Errorf("Alpha+Beta returned %d rows, want 3", len(sess.Filtered()))
	}
}

func TestPipeline_ExportMatchesDisplay(t *testing.T) {
	server := newServer(t, testutil.BuildPullRequests(25,
		[]string{"Alpha", "Beta", "Gamma"},
		[]string{"Alice", "Bob"},
		[]string{"active", "completed", "abandoned"}))

	sess, err := fetch(t, server.URL, testPAT)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	criteria := []pullrequest.Criteria{
		{},
		pullrequest.NewCriteria([]string{"active"}, nil, nil),
		pullrequest.NewCriteria(nil, []string{"Gamma"}, []string{"Bob"}),
		pullrequest.NewCriteria([]string{"completed"}, []string{"Alpha", "Beta"}, []string{"Alice"}),
	}

	for _, c := range criteria {
		sess.SetCriteria(c)
		displayed := sess.Filtered()

		var table bytes.Buffer
		if err := output.WriteAll(output.NewTableWriter(&table), displayed); err != nil {
			t.Fatal(err)
		}
		var ids []int
		for _, r := range displayed {
			ids = append(ids, r.ID)
		}
		testutil.AssertTableRows(t, table.String(), ids)

		artifact, err := sess.Export()
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		dir := t.TempDir()
		path, err := artifact.SaveTo(dir)
		if err != nil {
			t.Fatal(err)
		}
		rows := testutil.AssertCSVOutput(t, path, len(displayed))
		for i, row := range rows {
			if !slices.Equal(row, displayed[i].Fields()) {
				t.Errorf("export row %d = %v, display row = %v", i, row, displayed[i].Fields())
			}
		}
	}
}

func TestPipeline_TimestampRoundTrip(t *testing.T) {
	server := newServer(t, []map[string]any{
		testutil.NewPullRequestBuilder(42).WithCreatedAt(time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC)).Build(),
	})

	sess, err := fetch(t, server.URL, testPAT)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if got := sess.Records()[0].CreatedDate(); got != "2024-03-01 10:15:00" {
		t.Errorf("created date = %q, want 2024-03-01 10:15:00", got)
	}
}

func TestPipeline_StartDateIsSentToServer(t *testing.T) {
	server := newServer(t, []map[string]any{
		testutil.NewPullRequestBuilder(1).WithCreatedAt(time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC)).Build(),
		testutil.NewPullRequestBuilder(2).WithCreatedAt(time.Date(2024, 3, 1, 0, 30, 0, 0, time.UTC)).Build(),
	})

	sess, err := fetch(t, server.URL, testPAT)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(sess.Records()) != 1 || sess.Records()[0].ID != 2 {
		t.Errorf("records = %+v, want only PR 2", sess.Records())
	}
	if got := server.GetRequestHistory()[0].Query.Get("searchCriteria.minTime"); got != "2024-03-01" {
		t.Errorf("minTime = %q", got)
	}
}

func TestPipeline_Empty(t *testing.T) {
	server := newServer(t, nil)

	sess, err := fetch(t, server.URL, testPAT)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if sess.State() != session.StateEmpty {
		t.Errorf("state = %s, want empty", sess.State())
	}
	if sess.CanExport() {
		t.Error("export must not be offered for an empty result")
	}
	if _, err := sess.Export(); !errors.Is(err, relayerrors.ErrNoResults) {
		t.Errorf("Export error = %v, want ErrNoResults", err)
	}
}

func TestPipeline_Unauthorized(t *testing.T) {
	server := newServer(t, alphaBetaPullRequests())

	sess, err := fetch(t, server.URL, "wrong-pat")

	var httpErr *relayerrors.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error = %v, want HTTPError", err)
	}
	if httpErr.StatusCode != 401 || !strings.Contains(httpErr.Body, "Access Denied") {
		t.Errorf("HTTPError = %+v", httpErr)
	}
	if sess.State() != session.StateError || len(sess.Records()) != 0 {
		t.Errorf("state = %s with %d rows, want error with none", sess.State(), len(sess.Records()))
	}
}

func TestPipeline_MissingCreatorName(t *testing.T) {
	prs := alphaBetaPullRequests()
	prs[2] = testutil.NewPullRequestBuilder(3).Without("createdBy.displayName").Build()
	server := newServer(t, prs)

	sess, err := fetch(t, server.URL, testPAT)

	var mappingErr *relayerrors.MappingError
	if !errors.As(err, &mappingErr) {
		t.Fatalf("error = %v, want MappingError", err)
	}
	if mappingErr.Index != 2 || mappingErr.Field != "createdBy.displayName" {
		t.Errorf("MappingError = %+v", mappingErr)
	}
	if len(sess.Records()) != 0 {
		t.Errorf("no partial table expected, got %d rows", len(sess.Records()))
	}
}

func TestPipeline_RefetchReplacesResult(t *testing.T) {
	server := newServer(t, alphaBetaPullRequests())
	sess := newSession(server.URL, testPAT, azdoOptions())

	if err := sess.Fetch(t.Context(), testQuery()); err != nil {
		t.Fatal(err)
	}
	sess.SetCriteria(pullrequest.NewCriteria([]string{"completed"}, nil, nil))

	server.AddProject(testOrg, testProject, alphaBetaPullRequests()[:1])
	if err := sess.Fetch(t.Context(), testQuery()); err != nil {
		t.Fatal(err)
	}

	if len(sess.Records()) != 1 {
		t.Errorf("records = %d, want 1", len(sess.Records()))
	}
	if !sess.Criteria().IsEmpty() {
		t.Error("criteria should be reset by a new fetch")
	}
	if got := sess.Options().Statuses; !slices.Equal(got, []string{"active"}) {
		t.Errorf("status options = %v, want [active]", got)
	}
}

func TestPipeline_ExportToDefaultName(t *testing.T) {
	server := newServer(t, alphaBetaPullRequests())
	sess, err := fetch(t, server.URL, testPAT)
	if err != nil {
		t.Fatal(err)
	}

	artifact, err := sess.Export()
	if err != nil {
		t.Fatal(err)
	}
	if artifact.Name != "pull_requests.csv" || artifact.ContentType != "text/csv" {
		t.Errorf("artifact = %s (%s)", artifact.Name, artifact.ContentType)
	}

	dir := filepath.Join(t.TempDir(), "nested", "exports")
	path, err := artifact.SaveTo(dir)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, artifact.Data) {
		t.Error("saved file differs from the artifact")
	}
}
