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

package pullrequest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleRecords() []Record {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return []Record{
		{ID: 1, Title: "one", Status: "active", Repository: "Alpha", Creator: "Ann", CreatedAt: base},
		{ID: 2, Title: "two", Status: "completed", Repository: "Beta", Creator: "Bob", CreatedAt: base.Add(time.Hour)},
		{ID: 3, Title: "three", Status: "abandoned", Repository: "Alpha", Creator: "Bob", CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, Title: "four", Status: "active", Repository: "Gamma", Creator: "Cid", CreatedAt: base.Add(3 * time.Hour)},
	}
}

func ids(records []Record) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []int
	}{
		{
			name:     "empty criteria is identity",
			criteria: NewCriteria(nil, nil, nil),
			want:     []int{1, 2, 3, 4},
		},
		{
			name:     "repository keeps relative order",
			criteria: NewCriteria(nil, []string{"Alpha"}, nil),
			want:     []int{1, 3},
		},
		{
			name:     "membership within a dimension",
			criteria: NewCriteria([]string{"active", "abandoned"}, nil, nil),
			want:     []int{1, 3, 4},
		},
		{
			name:     "and across dimensions",
			criteria: NewCriteria(nil, []string{"Alpha"}, []string{"Bob"}),
			want:     []int{3},
		},
		{
			name:     "present values with no common row",
			criteria: NewCriteria([]string{"completed"}, []string{"Gamma"}, nil),
			want:     []int{},
		},
		{
			name:     "all three dimensions",
			criteria: NewCriteria([]string{"active"}, []string{"Alpha", "Gamma"}, []string{"Cid"}),
			want:     []int{4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := sampleRecords()
			got := Filter(input, tt.criteria)
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, []int{1, 2, 3, 4}, ids(input), "input must not be modified")
		})
	}
}

func TestFilter_Identity(t *testing.T) {
	input := sampleRecords()
	assert.Equal(t, input, Filter(input, Criteria{}))
	assert.Empty(t, Filter(nil, Criteria{}))
}

// Output is non-empty iff some row satisfies every criterion.
func TestFilter_NonEmptyIffSomeRowMatches(t *testing.T) {
	rows := sampleRecords()
	opts := Options(rows)

	for _, s := range opts.Statuses {
		for _, r := range opts.Repositories {
			for _, c := range opts.Creators {
				criteria := NewCriteria([]string{s}, []string{r}, []string{c})
				exists := false
				for _, row := range rows {
					if row.Status == s && row.Repository == r && row.Creator == c {
						exists = true
						break
					}
				}
				got := Filter(rows, criteria)
				assert.Equal(t, exists, len(got) > 0, "status=%s repo=%s creator=%s", s, r, c)
			}
		}
	}
}

func TestOptions(t *testing.T) {
	got := Options(sampleRecords())

	assert.Equal(t, []string{"abandoned", "active", "completed"}, got.Statuses)
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, got.Repositories)
	assert.Equal(t, []string{"Ann", "Bob", "Cid"}, got.Creators)

	empty := Options(nil)
	assert.Empty(t, empty.Statuses)
	assert.Empty(t, empty.Repositories)
	assert.Empty(t, empty.Creators)
}

func TestCriteria(t *testing.T) {
	c := NewCriteria([]string{"b", "a"}, []string{}, nil)
	assert.False(t, c.IsEmpty())
	assert.True(t, NewCriteria(nil, []string{}, nil).IsEmpty())

	sel := c.Selection()
	assert.Equal(t, []string{"a", "b"}, sel.Statuses)
	assert.Empty(t, sel.Repositories)
}

func TestColumns(t *testing.T) {
	assert.Equal(t,
		[]string{"PR ID", "Title", "Status", "Repository", "Creator", "Created Date"},
		Columns())
}
