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
	"fmt"
	"strings"
	"time"
)

// PullRequestBuilder provides a fluent API for creating raw test PRs shaped
// like the REST response.
type PullRequestBuilder struct {
	id         int
	title      string
	status     string
	repository string
	creator    string
	createdAt  time.Time
	without    []string
	overrides  map[string]any
}

// NewPullRequestBuilder creates a new PR builder with defaults
func NewPullRequestBuilder(id int) *PullRequestBuilder {
	return &PullRequestBuilder{
		id:         id,
		title:      fmt.Sprintf("PR %d", id),
		status:     "active",
		repository: "Alpha",
		creator:    fmt.Sprintf("user%d", id),
		createdAt:  time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC).Add(time.Duration(id) * time.Hour),
		overrides:  map[string]any{},
	}
}

// WithTitle sets the PR title
func (b *PullRequestBuilder) WithTitle(title string) *PullRequestBuilder {
	b.title = title
	return b
}

// WithStatus sets the PR status (active, completed, abandoned)
func (b *PullRequestBuilder) WithStatus(status string) *PullRequestBuilder {
	b.status = status
	return b
}

// WithRepository sets the repository name
func (b *PullRequestBuilder) WithRepository(name string) *PullRequestBuilder {
	b.repository = name
	return b
}

// WithCreator sets the creator display name
func (b *PullRequestBuilder) WithCreator(name string) *PullRequestBuilder {
	b.creator = name
	return b
}

// WithCreatedAt sets when the PR was created
func (b *PullRequestBuilder) WithCreatedAt(t time.Time) *PullRequestBuilder {
	b.createdAt = t
	return b
}

// WithField sets a top-level field to an arbitrary value, e.g. to produce a
// wrongly typed pullRequestId.
func (b *PullRequestBuilder) WithField(name string, value any) *PullRequestBuilder {
	b.overrides[name] = value
	return b
}

// Without removes a field by dotted path, e.g. "createdBy.displayName".
func (b *PullRequestBuilder) Without(path string) *PullRequestBuilder {
	b.without = append(b.without, path)
	return b
}

// Build creates the raw PR object
func (b *PullRequestBuilder) Build() map[string]any {
	pr := map[string]any{
		"pullRequestId": b.id,
		"codeReviewId":  b.id,
		"title":         b.title,
		"status":        b.status,
		"description":   fmt.Sprintf("Description of PR %d", b.id),
		"sourceRefName": fmt.Sprintf("refs/heads/feature/%d", b.id),
		"targetRefName": "refs/heads/main",
		"isDraft":       false,
		"mergeStatus":   "succeeded",
		"repository": map[string]any{
			"id":   fmt.Sprintf("repo-%s", strings.ToLower(b.repository)),
			"name": b.repository,
		},
		"createdBy": map[string]any{
			"displayName": b.creator,
			"uniqueName":  strings.ToLower(strings.ReplaceAll(b.creator, " ", ".")) + "@contoso.com",
		},
		"creationDate": b.createdAt.UTC().Format("2006-01-02T15:04:05.0000000Z"),
	}

	for k, v := range b.overrides {
		pr[k] = v
	}
	for _, path := range b.without {
		remove(pr, path)
	}
	return pr
}

func remove(obj map[string]any, path string) {
	parts := strings.Split(path, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := obj[p].(map[string]any)
		if !ok {
			return
		}
		obj = next
	}
	delete(obj, parts[len(parts)-1])
}

// BuildPullRequests creates n PRs spread over the given repositories,
// creators and statuses in round-robin order.
func BuildPullRequests(n int, repositories, creators, statuses []string) []map[string]any {
	prs := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		b := NewPullRequestBuilder(i)
		if len(repositories) > 0 {
			b.WithRepository(repositories[(i-1)%len(repositories)])
		}
		if len(creators) > 0 {
			b.WithCreator(creators[(i-1)%len(creators)])
		}
		if len(statuses) > 0 {
			b.WithStatus(statuses[(i-1)%len(statuses)])
		}
		prs = append(prs, b.Build())
	}
	return prs
}
