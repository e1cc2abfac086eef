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

// Package pullrequest holds the fixed-shape pull request row used by every
// stage after the fetch, together with the two pure transformations applied
// to it: Normalize (raw JSON object to Record) and Filter (Criteria over rows).
package pullrequest

import (
	"strconv"
	"time"
)

// DateLayout is the display and export format of Record.CreatedAt.
const DateLayout = "2006-01-02 15:04:05"

// Column labels shared by the table view and the CSV export.
const (
	ColumnID          = "PR ID"
	ColumnTitle       = "Title"
	ColumnStatus      = "Status"
	ColumnRepository  = "Repository"
	ColumnCreator     = "Creator"
	ColumnCreatedDate = "Created Date"
)

// Columns returns the column labels in display order.
func Columns() []string {
	return []string{ColumnID, ColumnTitle, ColumnStatus, ColumnRepository, ColumnCreator, ColumnCreatedDate}
}

// Record is one normalized pull request. Records are treated as immutable
// and live for a single fetch cycle.
type Record struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	Repository string    `json:"repository"`
	Creator    string    `json:"creator"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreatedDate returns CreatedAt formatted with DateLayout.
func (r Record) CreatedDate() string {
	return r.CreatedAt.UTC().Format(DateLayout)
}

// Fields returns the record as display strings in Columns order.
func (r Record) Fields() []string {
	return []string{
		strconv.Itoa(r.ID),
		r.Title,
		r.Status,
		r.Repository,
		r.Creator,
		r.CreatedDate(),
	}
}
