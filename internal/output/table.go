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
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sirseerhq/ado-dashboard/internal/pullrequest"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	idStyle     = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// TableWriter collects records and renders them as a bordered table on Close.
// Column widths depend on every row, so nothing is written before Close.
type TableWriter struct {
	mu     sync.Mutex
	output io.Writer
	rows   [][]string
	closed bool
}

// NewTableWriter creates a table writer that renders to w.
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{output: w}
}

// Write buffers a single record.
func (w *TableWriter) Write(record pullrequest.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("table writer is closed")
	}
	w.rows = append(w.rows, record.Fields())
	return nil
}

// Count returns the number of records buffered.
func (w *TableWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.rows)
}

// Close renders the table.
func (w *TableWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if _, err := fmt.Fprintln(w.output, RenderTable(w.rows)); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

// RenderTable draws rows (in pullrequest.Columns order) as a table string.
func RenderTable(rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(pullrequest.Columns()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return idStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}
