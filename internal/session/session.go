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

package session

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sirseerhq/ado-dashboard/internal/azdo"
	relayerrors "github.com/sirseerhq/ado-dashboard/internal/errors"
	"github.com/sirseerhq/ado-dashboard/internal/logging"
	"github.com/sirseerhq/ado-dashboard/internal/output"
	"github.com/sirseerhq/ado-dashboard/internal/pullrequest"
)

// FetchInfo describes one fetch cycle.
type FetchInfo struct {
	FetchID     string
	Query       azdo.Query
	StartedAt   time.Time
	CompletedAt time.Time
	Count       int
}

// Duration returns how long the cycle took, or zero while it is running.
func (i FetchInfo) Duration() time.Duration {
	if i.CompletedAt.IsZero() {
		return 0
	}
	return i.CompletedAt.Sub(i.StartedAt)
}

// Summary is the one-line status shown above a loaded table.
func (i FetchInfo) Summary() string {
	return fmt.Sprintf("Found %d pull requests, since or from %s. Data fetched at %s",
		i.Count, i.Query.StartDate.Format(azdo.StartDateLayout), i.CompletedAt.Format("2006-01-02 15:04:05"))
}

// Session is the session-scoped context passed to every stage of the
// dashboard. It is not safe for concurrent use; in the TUI only the Bubble
// Tea update loop touches it.
type Session struct {
	client azdo.Client
	logger *log.Logger
	now    func() time.Time

	state    State
	records  []pullrequest.Record
	criteria pullrequest.Criteria
	err      error
	info     FetchInfo
}

// New creates an idle session that fetches through client.
func New(client azdo.Client, logger *log.Logger) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{
		client: client,
		logger: logger,
		now:    time.Now,
		state:  StateIdle,
	}
}

// Run performs the fetch and normalize stages of one cycle without touching
// any session state. A mapping failure anywhere discards the whole batch.
func Run(ctx context.Context, client azdo.Client, q azdo.Query) ([]pullrequest.Record, error) {
	raw, err := client.FetchPullRequests(ctx, q)
	if err != nil {
		return nil, err
	}
	records, err := pullrequest.Normalize(raw)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Begin moves the session to Fetching and returns the new cycle's info.
// Whatever was loaded before is dropped.
func (s *Session) Begin(q azdo.Query) FetchInfo {
	s.state = StateFetching
	s.records = nil
	s.criteria = pullrequest.Criteria{}
	s.err = nil
	s.info = FetchInfo{
		FetchID:   uuid.New().String(),
		Query:     q,
		StartedAt: s.now(),
	}

	s.logger.Debug("fetching pull requests",
		"fetch_id", s.info.FetchID,
		"organization", q.Organization,
		"project", q.Project,
		"since", q.StartDate.Format(azdo.StartDateLayout))

	return s.info
}

// Complete records the outcome of the cycle started by Begin. Outcomes of
// any other cycle are ignored and reported as false.
func (s *Session) Complete(fetchID string, records []pullrequest.Record, err error) bool {
	if s.state != StateFetching || fetchID != s.info.FetchID {
		s.logger.Debug("ignoring stale fetch result", "fetch_id", fetchID)
		return false
	}

	s.info.CompletedAt = s.now()

	switch {
	case err != nil:
		s.state = StateError
		s.err = err
		s.logger.Debug("fetch failed",
			"fetch_id", fetchID,
			"duration", s.info.Duration().Round(time.Millisecond),
			"err", err)
	case len(records) == 0:
		s.state = StateEmpty
		s.logger.Debug("no pull requests found", "fetch_id", fetchID)
	default:
		s.state = StateLoaded
		s.records = records
		s.info.Count = len(records)
		s.logger.Debug("fetch completed",
			"fetch_id", fetchID,
			"count", len(records),
			"duration", s.info.Duration().Round(time.Millisecond))
	}
	return true
}

// Fetch runs one complete cycle synchronously and returns its error, if any.
func (s *Session) Fetch(ctx context.Context, q azdo.Query) error {
	info := s.Begin(q)
	records, err := Run(ctx, s.client, q)
	s.Complete(info.FetchID, records, err)
	return err
}

// Client returns the client used by Fetch.
func (s *Session) Client() azdo.Client { return s.client }

// SetClient replaces the client, e.g. after the connection settings changed.
// The loaded result is kept until the next fetch.
func (s *Session) SetClient(c azdo.Client) { s.client = c }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Err returns the failure of the last cycle when in StateError.
func (s *Session) Err() error { return s.err }

// Info returns the current cycle's info.
func (s *Session) Info() FetchInfo { return s.info }

// Records returns the full, unfiltered result set.
func (s *Session) Records() []pullrequest.Record { return s.records }

// Criteria returns the current filter selection.
func (s *Session) Criteria() pullrequest.Criteria { return s.criteria }

// SetCriteria replaces the filter selection. It never triggers a fetch.
func (s *Session) SetCriteria(c pullrequest.Criteria) {
	s.criteria = c
	s.logger.Debug("filters changed",
		"fetch_id", s.info.FetchID,
		"statuses", len(c.Statuses),
		"repositories", len(c.Repositories),
		"creators", len(c.Creators))
}

// Filtered returns the rows matching the current criteria.
func (s *Session) Filtered() []pullrequest.Record {
	return pullrequest.Filter(s.records, s.criteria)
}

// Options returns the selectable filter values, always computed from the
// full result set.
func (s *Session) Options() pullrequest.FilterOptions {
	return pullrequest.Options(s.records)
}

// CanExport reports whether an export is offered in the current state.
func (s *Session) CanExport() bool {
	return s.state == StateLoaded
}

// Export serializes the currently filtered rows as the CSV artifact.
func (s *Session) Export() (*output.Artifact, error) {
	if !s.CanExport() {
		return nil, fmt.Errorf("cannot export in %s state: %w", s.state, relayerrors.ErrNoResults)
	}
	rows := s.Filtered()
	artifact, err := output.NewArtifact(rows)
	if err != nil {
		return nil, err
	}
	s.logger.Info("exported pull requests", "fetch_id", s.info.FetchID, "rows", len(rows), "file", artifact.Name)
	return artifact, nil
}
