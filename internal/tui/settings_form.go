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
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sirseerhq/ado-dashboard/internal/azdo"
	"github.com/sirseerhq/ado-dashboard/internal/config"
)

// settingsForm edits the connection settings and the start date. An empty
// PAT keeps the current one.
type settingsForm struct {
	form *huh.Form

	organization string
	project      string
	pat          string
	since        string

	done      bool
	cancelled bool
}

func newSettingsForm(cfg config.Config, since time.Time) *settingsForm {
	sf := &settingsForm{
		organization: cfg.Azure.Organization,
		project:      cfg.Azure.Project,
		since:        since.Format(azdo.StartDateLayout),
	}

	patDescription := "Personal access token with Code (Read) scope"
	if cfg.PAT != "" {
		patDescription = "Leave empty to keep the current token"
	}

	sf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Azure DevOps Organization").
				Value(&sf.organization).
				Validate(required("organization")),
			huh.NewInput().
				Title("Azure DevOps Project").
				Value(&sf.project).
				Validate(required("project")),
			huh.NewInput().
				Title("Personal Access Token").
				Description(patDescription).
				EchoMode(huh.EchoModePassword).
				Value(&sf.pat).
				Validate(func(s string) error {
					if cfg.PAT == "" && strings.TrimSpace(s) == "" {
						return errors.New("PAT required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Start Date").
				Description("YYYY-MM-DD").
				Value(&sf.since).
				Validate(func(s string) error {
					_, err := azdo.ParseStartDate(s, time.Now())
					return err
				}),
		),
	)
	return sf
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " required")
		}
		return nil
	}
}

func (sf *settingsForm) Init() tea.Cmd {
	return sf.form.Init()
}

func (sf *settingsForm) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			sf.cancelled = true
			sf.done = true
			return nil
		}
	}

	form, cmd := sf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		sf.form = f
	}

	if sf.form.State == huh.StateCompleted {
		sf.done = true
		return nil
	}
	return cmd
}

func (sf *settingsForm) View() string {
	return sf.form.View()
}

// Overrides returns the entered connection settings.
func (sf *settingsForm) Overrides() config.Overrides {
	return config.Overrides{
		Organization: sf.organization,
		Project:      sf.project,
		PAT:          sf.pat,
	}
}
