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

import "sort"

// Criteria narrows a result set by status, repository and creator. An empty
// set places no constraint on its dimension; non-empty sets combine with AND.
type Criteria struct {
	Statuses     map[string]struct{}
	Repositories map[string]struct{}
	Creators     map[string]struct{}
}

// NewCriteria builds Criteria from selected values. Nil or empty slices mean
// "no constraint".
func NewCriteria(statuses, repositories, creators []string) Criteria {
	return Criteria{
		Statuses:     toSet(statuses),
		Repositories: toSet(repositories),
		Creators:     toSet(creators),
	}
}

// IsEmpty reports whether no dimension is constrained.
func (c Criteria) IsEmpty() bool {
	return len(c.Statuses) == 0 && len(c.Repositories) == 0 && len(c.Creators) == 0
}

// Selection returns the selected values per dimension, sorted.
func (c Criteria) Selection() FilterOptions {
	return FilterOptions{
		Statuses:     sortedKeys(c.Statuses),
		Repositories: sortedKeys(c.Repositories),
		Creators:     sortedKeys(c.Creators),
	}
}

// Match reports whether r satisfies every non-empty dimension.
func (c Criteria) Match(r Record) bool {
	return member(c.Statuses, r.Status) &&
		member(c.Repositories, r.Repository) &&
		member(c.Creators, r.Creator)
}

// Filter returns the records matching c in their original order. The input
// slice is never modified; with empty criteria the input is returned as is.
func Filter(records []Record, c Criteria) []Record {
	if c.IsEmpty() {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if c.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterOptions are the selectable values per dimension.
type FilterOptions struct {
	Statuses     []string
	Repositories []string
	Creators     []string
}

// Options returns the distinct values present in records, sorted. It must be
// called with the full fetched set, not a filtered subset, so that every
// present value remains selectable.
func Options(records []Record) FilterOptions {
	statuses := make(map[string]struct{})
	repos := make(map[string]struct{})
	creators := make(map[string]struct{})
	for _, r := range records {
		statuses[r.Status] = struct{}{}
		repos[r.Repository] = struct{}{}
		creators[r.Creator] = struct{}{}
	}
	return FilterOptions{
		Statuses:     sortedKeys(statuses),
		Repositories: sortedKeys(repos),
		Creators:     sortedKeys(creators),
	}
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func member(set map[string]struct{}, v string) bool {
	if len(set) == 0 {
		return true
	}
	_, ok := set[v]
	return ok
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
