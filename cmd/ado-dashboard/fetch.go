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
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/ado-dashboard/internal/azdo"
	"github.com/sirseerhq/ado-dashboard/internal/logging"
	"github.com/sirseerhq/ado-dashboard/internal/output"
	"github.com/sirseerhq/ado-dashboard/internal/pullrequest"
	"github.com/sirseerhq/ado-dashboard/internal/session"
)

const emptyMessage = "No pull requests found in the selected time period."

type fetchOptions struct {
	connectionFlags

	statuses     []string
	repositories []string
	creators     []string
	format       string
	output       string
	showOptions  bool
}

func newFetchCommand() *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch pull requests and print them as a table or CSV",
		Long: `Fetch the pull requests of an Azure DevOps project created since a date
and print them as a table (default) or CSV.

Filters narrow the rows that are printed or exported; they can be repeated,
and values within one filter are alternatives:
  ado-dashboard fetch --status active --status completed --repository Alpha

Authentication uses a personal access token:
  - Use --pat to provide the token directly
  - Or set ADO_PAT
  - Or put ado_pat into .streamlit/secrets.toml or ~/.ado-dashboard/secrets.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().StringArrayVar(&opts.statuses, "status", nil, "Only show pull requests with this status (repeatable)")
	cmd.Flags().StringArrayVar(&opts.repositories, "repository", nil, "Only show pull requests of this repository (repeatable)")
	cmd.Flags().StringArrayVar(&opts.creators, "creator", nil, "Only show pull requests created by this person (repeatable)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format: table or csv (default from config, else table)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the CSV export to this file or directory (requires --format csv)")
	cmd.Flags().BoolVar(&opts.showOptions, "show-options", false, "Print the distinct status, repository and creator values")

	return cmd
}

// runFetch executes the fetch command
func runFetch(ctx context.Context, opts *fetchOptions, stdout, stderr io.Writer) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if opts.format != "" {
		cfg.Defaults.OutputFormat = opts.format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if opts.output != "" && cfg.Defaults.OutputFormat != "csv" {
		return fmt.Errorf("--output requires --format csv")
	}

	since, err := opts.startDate()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Initialize(logging.Options{
		Level:  cfg.Logging.Level,
		Debug:  opts.debug,
		File:   cfg.Logging.File,
		Stderr: stderr,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	sess := session.New(newClient(cfg), logger)
	q := azdo.Query{
		Organization: cfg.Azure.Organization,
		Project:      cfg.Azure.Project,
		StartDate:    since,
	}

	// The progress line and debug logs share stderr.
	showProgress := logger.GetLevel() > log.DebugLevel
	if showProgress {
		fmt.Fprintf(stderr, "Fetching pull requests from %s/%s...", q.Organization, q.Project)
	}
	err = sess.Fetch(ctx, q)
	if showProgress {
		fmt.Fprintf(stderr, "\r\033[K") // Clear progress line
	}
	if err != nil {
		return err
	}

	if sess.State() == session.StateEmpty {
		fmt.Fprintln(stderr, emptyMessage)
		return nil
	}

	sess.SetCriteria(pullrequest.NewCriteria(opts.statuses, opts.repositories, opts.creators))
	rows := sess.Filtered()

	fmt.Fprintln(stderr, sess.Info().Summary())
	if !sess.Criteria().IsEmpty() {
		fmt.Fprintf(stderr, "%d of %d pull requests match the filters\n", len(rows), len(sess.Records()))
	}

	if opts.showOptions {
		printOptions(stdout, sess.Options())
	}

	switch {
	case opts.output != "":
		return exportCSV(sess, opts.output, len(rows), stderr)
	case cfg.Defaults.OutputFormat == "csv":
		return output.WriteAll(output.NewCSVWriter(stdout), rows)
	default:
		return output.WriteAll(output.NewTableWriter(stdout), rows)
	}
}

// exportCSV writes the filtered rows to target. A directory target receives
// pull_requests.csv.
func exportCSV(sess *session.Session, target string, rows int, stderr io.Writer) error {
	artifact, err := sess.Export()
	if err != nil {
		return err
	}

	path := target
	if info, statErr := os.Stat(target); (statErr == nil && info.IsDir()) || strings.HasSuffix(target, string(os.PathSeparator)) {
		path, err = artifact.SaveTo(target)
		if err != nil {
			return err
		}
	} else if err := os.WriteFile(target, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	fmt.Fprintf(stderr, "Saved %d pull requests to %s\n", rows, path)
	return nil
}

func printOptions(w io.Writer, opts pullrequest.FilterOptions) {
	fmt.Fprintf(w, "Statuses: %s\n", strings.Join(opts.Statuses, ", "))
	fmt.Fprintf(w, "Repositories: %s\n", strings.Join(opts.Repositories, ", "))
	fmt.Fprintf(w, "Creators: %s\n\n", strings.Join(opts.Creators, ", "))
}
