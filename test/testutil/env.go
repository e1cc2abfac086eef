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

package testutil

import (
	"os"
	"testing"
)

// envVars are the environment variables read by the configuration loader.
var envVars = []string{
	"ADO_ORGANIZATION",
	"ADO_PROJECT",
	"ADO_PAT",
	"ADO_BASE_URL",
	"ADO_INSECURE_SKIP_VERIFY",
	"ADO_TIMEOUT",
	"ADO_DASHBOARD_LOG_FILE",
}

// IsolateEnv runs the rest of the test in an empty home and working
// directory with the dashboard's environment variables cleared, so that no
// config or secrets file of the developer's machine is picked up. It returns
// the temporary directory.
func IsolateEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("USERPROFILE", dir)
	for _, name := range envVars {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Chdir(dir)
	return dir
}

// SetConnectionEnv points the dashboard at serverURL with the given
// connection settings.
func SetConnectionEnv(t *testing.T, serverURL, org, project, pat string) {
	t.Helper()
	t.Setenv("ADO_BASE_URL", serverURL)
	t.Setenv("ADO_ORGANIZATION", org)
	t.Setenv("ADO_PROJECT", project)
	t.Setenv("ADO_PAT", pat)
}
