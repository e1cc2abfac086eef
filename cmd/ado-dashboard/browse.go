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

package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/ado-dashboard/internal/logging"
	"github.com/sirseerhq/ado-dashboard/internal/tui"
	"github.com/sirseerhq/ado-dashboard/internal/version"
)

func newBrowseCommand() *cobra.Command {
	flags := &connectionFlags{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse pull requests interactively",
		Long: `Open an interactive dashboard. Press r to fetch, f to pick filters,
c to clear them, e to export the filtered rows as pull_requests.csv,
s to edit the connection settings and q to quit.

Logs go to --log-file (or ADO_DASHBOARD_LOG_FILE) and are discarded otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd.Context(), flags)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func runBrowse(ctx context.Context, flags *connectionFlags) error {
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}

	since, err := flags.startDate()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Initialize(logging.Options{
		Level:       cfg.Logging.Level,
		Debug:       flags.debug,
		File:        cfg.Logging.File,
		Interactive: true,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("starting browser", "version", version.Version)

	model := tui.New(tui.Options{
		Config:    cfg,
		StartDate: since,
		NewClient: newClient,
		Logger:    logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
