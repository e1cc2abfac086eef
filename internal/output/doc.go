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

// Package output renders pull request rows for people and for spreadsheets.
//
// Both formats implement OutputWriter:
//   - TableWriter draws a bordered terminal table with lipgloss
//   - CSVWriter writes RFC 4180 CSV with the same header labels
//
// The CSV export is also available as an in-memory Artifact named
// pull_requests.csv with content type text/csv.
//
// Example usage:
//
//	w, err := output.NewCSVFileWriter("pull_requests.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	for _, record := range records {
//	    if err := w.Write(record); err != nil {
//	        log.Printf("Failed to write record: %v", err)
//	    }
//	}
package output
