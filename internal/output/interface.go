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

package output

import "github.com/sirseerhq/ado-dashboard/internal/pullrequest"

// OutputWriter defines the interface for writing pull request rows.
// This abstraction lets the fetch command choose the format without
// changing the pipeline.
type OutputWriter interface {
	// Write adds a single record to the output.
	Write(record pullrequest.Record) error

	// Close flushes buffered output and releases any resources.
	// This should be called when all writing is complete.
	Close() error
}

// WriteAll writes records in order and closes w.
func WriteAll(w OutputWriter, records []pullrequest.Record) error {
	for _, r := range records {
		if err := w.Write(r); err != nil {
			_ = w.Close()
			return err
		}
	}
	return w.Close()
}
