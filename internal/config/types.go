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

// Package config types define the configuration structures used throughout
// ado-dashboard. These types represent settings that can be loaded from a
// YAML configuration file, a TOML secrets file, environment variables, or
// command-line flags.
package config

import "time"

// Config represents the complete configuration for ado-dashboard.
type Config struct {
	Azure    AzureConfig    `yaml:"azure"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Logging  LoggingConfig  `yaml:"logging"`

	// PAT is never read from the YAML file; it comes from the secrets file,
	// the environment variable named by Azure.PATEnv, or the --pat flag.
	PAT string `yaml:"-"`
}

// AzureConfig contains the Azure DevOps connection settings. BaseURL and
// APIVersion allow pointing the dashboard at an Azure DevOps Server
// collection instead of dev.azure.com.
type AzureConfig struct {
	BaseURL      string `yaml:"base_url"`
	APIVersion   string `yaml:"api_version"`
	Organization string `yaml:"organization"`
	Project      string `yaml:"project"`
	PATEnv       string `yaml:"pat_env"`

	// InsecureSkipVerify disables TLS certificate validation. It defaults to
	// true so self-signed on-premises servers work out of the box.
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify"`
	Timeout            time.Duration `yaml:"timeout"`
}

// DefaultsConfig controls output when no flag is given.
type DefaultsConfig struct {
	OutputFormat string `yaml:"output_format"`
	ExportDir    string `yaml:"export_dir"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Secrets mirrors the keys of a Streamlit-style secrets.toml file.
type Secrets struct {
	Organization string `toml:"ado_organization"`
	Project      string `toml:"ado_project"`
	PAT          string `toml:"ado_pat"`
}

// Overrides carries explicit user input. Non-empty fields win over every
// other source.
type Overrides struct {
	Organization string
	Project      string
	PAT          string
	BaseURL      string
}

// DefaultConfig returns a Config with defaults suitable for dev.azure.com.
func DefaultConfig() *Config {
	return &Config{
		Azure: AzureConfig{
			BaseURL:            "https://dev.azure.com",
			APIVersion:         "7.2-preview.2",
			PATEnv:             "ADO_PAT",
			InsecureSkipVerify: true,
			Timeout:            30 * time.Second,
		},
		Defaults: DefaultsConfig{
			OutputFormat: "table",
			ExportDir:    ".",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
