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
	"time"

	"github.com/spf13/pflag"

	"github.com/sirseerhq/ado-dashboard/internal/azdo"
	"github.com/sirseerhq/ado-dashboard/internal/config"
)

// connectionFlags are shared by every command that talks to Azure DevOps.
type connectionFlags struct {
	org         string
	project     string
	pat         string
	baseURL     string
	since       string
	configPath  string
	secretsPath string
	logFile     string
	debug       bool
}

func (f *connectionFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.org, "org", "", "Azure DevOps organization (overrides ADO_ORGANIZATION)")
	fs.StringVar(&f.project, "project", "", "Azure DevOps project (overrides ADO_PROJECT)")
	fs.StringVar(&f.pat, "pat", "", "Personal access token (overrides ADO_PAT)")
	fs.StringVar(&f.baseURL, "base-url", "", "Service URL, e.g. an Azure DevOps Server collection (default https://dev.azure.com)")
	fs.StringVar(&f.since, "since", "", "Only pull requests created on or after this date, YYYY-MM-DD (default today)")
	fs.StringVar(&f.configPath, "config", "", "Path to the YAML config file")
	fs.StringVar(&f.secretsPath, "secrets", "", "Path to a secrets.toml with ado_organization, ado_project and ado_pat")
	fs.StringVar(&f.logFile, "log-file", "", "Write logs to this file (overrides ADO_DASHBOARD_LOG_FILE)")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
}

// loadConfig resolves the configuration with the flags applied last.
func (f *connectionFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(f.configPath, f.secretsPath)
	if err != nil {
		return nil, err
	}

	cfg.Apply(config.Overrides{
		Organization: f.org,
		Project:      f.project,
		PAT:          f.pat,
		BaseURL:      f.baseURL,
	})
	if f.logFile != "" {
		cfg.Logging.File = f.logFile
	}
	return cfg, nil
}

func (f *connectionFlags) startDate() (time.Time, error) {
	return azdo.ParseStartDate(f.since, time.Now())
}

func newClient(cfg *config.Config) azdo.Client {
	return azdo.NewRESTClient(cfg.PAT, cfg.ClientOptions())
}
