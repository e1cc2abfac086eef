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

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sirseerhq/ado-dashboard/internal/pullrequest"
)

// filterForm edits the filter selection with one multi-select per
// dimension. Choices come from the full result set.
type filterForm struct {
	form *huh.Form

	statuses     []string
	repositories []string
	creators     []string

	done      bool
	cancelled bool
}

func newFilterForm(opts pullrequest.FilterOptions, current pullrequest.Criteria) *filterForm {
	sel := current.Selection()
	f := &filterForm{
		statuses:     sel.Statuses,
		repositories: sel.Repositories,
		creators:     sel.Creators,
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			multiSelect("Filter by Status", opts.Statuses, &f.statuses),
			multiSelect("Filter by Repository", opts.Repositories, &f.repositories),
			multiSelect("Filter by Creator", opts.Creators, &f.creators),
		),
	)
	return f
}

func multiSelect(title string, options []string, value *[]string) *huh.MultiSelect[string] {
	return huh.NewMultiSelect[string]().
		Title(title).
		Description("Nothing selected shows all").
		Options(huh.NewOptions(options...)...).
		Value(value)
}

func (f *filterForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update forwards msg to the form. Escape cancels without changing the
// selection.
func (f *filterForm) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			f.cancelled = true
			f.done = true
			return nil
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		f.done = true
		return nil
	}
	return cmd
}

func (f *filterForm) View() string {
	return f.form.View()
}

// Criteria returns the selection made in the form.
func (f *filterForm) Criteria() pullrequest.Criteria {
	return pullrequest.NewCriteria(f.statuses, f.repositories, f.creators)
}
