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
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	relayerrors "github.com/sirseerhq/ado-dashboard/internal/errors"
	"github.com/sirseerhq/ado-dashboard/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(mapErrorToExitCode(err))
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ado-dashboard",
		Short: "Browse and export Azure DevOps pull requests",
		Long: `ado-dashboard lists the pull requests of an Azure DevOps project created
since a given date. Results can be filtered by status, repository and creator,
printed as a table, browsed interactively, or exported as CSV.`,
		Version:       version.Info(),
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newFetchCommand())
	rootCmd.AddCommand(newBrowseCommand())
	return rootCmd
}

// printError writes err for the user. HTTP and transport errors already
// carry their own prefix.
func printError(w io.Writer, err error) {
	var (
		httpErr      *relayerrors.HTTPError
		transportErr *relayerrors.TransportError
	)
	if errors.As(err, &httpErr) || errors.As(err, &transportErr) {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, relayerrors.ErrInvalidToken) ||
		errors.Is(err, relayerrors.ErrConfigIncomplete) {
		return 2 // Authentication/configuration errors
	}

	if errors.Is(err, relayerrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	if errors.Is(err, relayerrors.ErrMapping) {
		return 4 // Unexpected response shape
	}

	return 1 // General error
}
