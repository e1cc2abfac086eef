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

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirseerhq/ado-dashboard/internal/pullrequest"
)

// Export artifact naming.
const (
	ExportFileName    = "pull_requests.csv"
	ExportContentType = "text/csv"
)

// CSVWriter writes records as CSV. The header row is always written, even
// when no record is, so an empty export is still a valid file.
type CSVWriter struct {
	mu            sync.Mutex
	csv           *csv.Writer
	count         int
	headerWritten bool
	closed        bool
	closeFunc     func() error
}

// NewCSVWriter creates a CSV writer that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// NewCSVFileWriter creates a CSV writer that writes to a file.
// The caller must call Close() when done to ensure the file is properly closed.
func NewCSVFileWriter(filename string) (*CSVWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &CSVWriter{
		csv:       csv.NewWriter(file),
		closeFunc: file.Close,
	}, nil
}

// Write writes a single record as one CSV row.
func (w *CSVWriter) Write(record pullrequest.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writeHeader(); err != nil {
		return err
	}
	if err := w.csv.Write(record.Fields()); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	w.count++
	return nil
}

// Count returns the number of records written.
func (w *CSVWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close flushes the CSV data and closes the underlying file, if any.
func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	err := w.writeHeader()
	if err == nil {
		w.csv.Flush()
		err = w.csv.Error()
	}
	if w.closeFunc != nil {
		if cerr := w.closeFunc(); err == nil {
			err = cerr
		}
	}
	return err
}

func (w *CSVWriter) writeHeader() error {
	if w.headerWritten {
		return nil
	}
	if err := w.csv.Write(pullrequest.Columns()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	w.headerWritten = true
	return nil
}

// Artifact is a downloadable export.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// NewArtifact serializes records to CSV in memory.
func NewArtifact(records []pullrequest.Record) (*Artifact, error) {
	var buf bytes.Buffer
	if err := WriteAll(NewCSVWriter(&buf), records); err != nil {
		return nil, err
	}
	return &Artifact{
		Name:        ExportFileName,
		ContentType: ExportContentType,
		Data:        buf.Bytes(),
	}, nil
}

// SaveTo writes the artifact into dir and returns the full path.
func (a *Artifact) SaveTo(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, a.Name)
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
