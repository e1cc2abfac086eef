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
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/sirseerhq/ado-dashboard/internal/pullrequest"
)

// AssertCSVOutput validates that a CSV file has the dashboard header and
// the expected number of data rows, and returns the data rows.
func AssertCSVOutput(t *testing.T, path string, expectedRows int) [][]string {
	t.Helper()

	records := ReadCSV(t, path)
	if len(records) == 0 {
		t.Fatalf("CSV file %s is empty, expected a header", path)
	}

	if header := records[0]; !slices.Equal(header, pullrequest.Columns()) {
		t.Errorf("CSV header = %v, want %v", header, pullrequest.Columns())
	}

	rows := records[1:]
	for i, row := range rows {
		if len(row) != len(pullrequest.Columns()) {
			t.Errorf("Row %d: %d fields, want %d", i+1, len(row), len(pullrequest.Columns()))
			continue
		}
		if _, err := strconv.Atoi(row[0]); err != nil {
			t.Errorf("Row %d: PR ID %q is not an integer", i+1, row[0])
		}
	}

	if len(rows) != expectedRows {
		t.Errorf("Expected %d rows, got %d", expectedRows, len(rows))
	}
	return rows
}

// AssertColumn checks that every row has want in the given column.
func AssertColumn(t *testing.T, rows [][]string, column int, want string) {
	t.Helper()
	for i, row := range rows {
		if row[column] != want {
			t.Errorf("Row %d: %s = %q, want %q", i+1, pullrequest.Columns()[column], row[column], want)
		}
	}
}

// AssertTableRows checks that a rendered table lists exactly the given PR
// IDs, in order.
func AssertTableRows(t *testing.T, rendered string, ids []int) {
	t.Helper()

	var got []int
	for _, line := range strings.Split(rendered, "\n") {
		fields := strings.Fields(strings.Trim(line, "│| "))
		if len(fields) == 0 {
			continue
		}
		if id, err := strconv.Atoi(strings.Trim(fields[0], "│|")); err == nil {
			got = append(got, id)
		}
	}

	if !slices.Equal(got, ids) {
		t.Errorf("Table rows = %v, want %v\n%s", got, ids, rendered)
	}
}

// AssertErrorContains checks if an error contains expected text
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	if err == nil {
		t.Errorf("Expected error containing %q, got nil", expected)
		return
	}
	if !strings.Contains(err.Error(), expected) {
		t.Errorf("Expected error containing %q, got %q", expected, err.Error())
	}
}
