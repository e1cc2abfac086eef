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

// Package config provides configuration management for ado-dashboard with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Secrets file (TOML)
//  4. Configuration file (YAML)
//  5. Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/sirseerhq/ado-dashboard/internal/azdo"
	relayerrors "github.com/sirseerhq/ado-dashboard/internal/errors"
)

// Supported output formats.
var validFormats = []string{"table", "csv"}

// LoadConfig loads configuration from the YAML config file, the TOML secrets
// file and the environment. If configPath or secretsPath is empty, standard
// locations are searched:
//   - .ado-dashboard.yaml, .ado-dashboard.yml (current directory)
//   - ~/.ado-dashboard/config.yaml
//   - .streamlit/secrets.toml (current directory)
//   - ~/.ado-dashboard/secrets.toml
//
// A missing file in a standard location is not an error; an explicitly given
// path that cannot be loaded is.
func LoadConfig(configPath, secretsPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else if path := firstExisting(defaultConfigPaths()); path != "" {
		if err := loadConfigFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	if secretsPath == "" {
		secretsPath = firstExisting(defaultSecretsPaths())
	}
	if secretsPath != "" {
		secrets, err := LoadSecrets(secretsPath)
		if err != nil {
			return nil, err
		}
		applySecrets(cfg, secrets)
	}

	applyEnvOverrides(cfg)

	cfg.Logging.File = expandPath(cfg.Logging.File)
	cfg.Defaults.ExportDir = expandPath(cfg.Defaults.ExportDir)

	return cfg, nil
}

// LoadSecrets reads a TOML secrets file.
func LoadSecrets(path string) (*Secrets, error) {
	var secrets Secrets
	if _, err := toml.DecodeFile(path, &secrets); err != nil {
		return nil, fmt.Errorf("failed to parse secrets file %s: %w", path, err)
	}
	return &secrets, nil
}

// Apply applies explicit user input on top of the loaded configuration.
func (c *Config) Apply(o Overrides) {
	if v := strings.TrimSpace(o.Organization); v != "" {
		c.Azure.Organization = v
	}
	if v := strings.TrimSpace(o.Project); v != "" {
		c.Azure.Project = v
	}
	if o.PAT != "" {
		c.PAT = o.PAT
	}
	if v := strings.TrimSpace(o.BaseURL); v != "" {
		c.Azure.BaseURL = v
	}
}

// Validate checks that the connection settings needed for a fetch are
// present. Missing organization, project or PAT yields a
// *errors.ConfigIncompleteError naming all of them.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Azure.Organization) == "" {
		missing = append(missing, "organization")
	}
	if strings.TrimSpace(c.Azure.Project) == "" {
		missing = append(missing, "project")
	}
	if strings.TrimSpace(c.PAT) == "" {
		missing = append(missing, "PAT")
	}
	if len(missing) > 0 {
		return &relayerrors.ConfigIncompleteError{Missing: missing}
	}

	if c.Azure.BaseURL == "" {
		return fmt.Errorf("Azure DevOps base URL cannot be empty")
	}
	if !strings.HasPrefix(c.Azure.BaseURL, "http://") && !strings.HasPrefix(c.Azure.BaseURL, "https://") {
		return fmt.Errorf("Azure DevOps base URL must start with http:// or https://, got: %s", c.Azure.BaseURL)
	}
	if c.Azure.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %s", c.Azure.Timeout)
	}
	if !isValidFormat(c.Defaults.OutputFormat) {
		return fmt.Errorf("unsupported output format %q (want one of %s)", c.Defaults.OutputFormat, strings.Join(validFormats, ", "))
	}
	return nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

func applySecrets(cfg *Config, s *Secrets) {
	if s.Organization != "" {
		cfg.Azure.Organization = s.Organization
	}
	if s.Project != "" {
		cfg.Azure.Project = s.Project
	}
	if s.PAT != "" {
		cfg.PAT = s.PAT
	}
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ADO_ORGANIZATION"); v != "" {
		cfg.Azure.Organization = v
	}
	if v := os.Getenv("ADO_PROJECT"); v != "" {
		cfg.Azure.Project = v
	}
	if v := os.Getenv("ADO_BASE_URL"); v != "" {
		cfg.Azure.BaseURL = v
	}
	if cfg.Azure.PATEnv != "" {
		if v := os.Getenv(cfg.Azure.PATEnv); v != "" {
			cfg.PAT = v
		}
	}
	if v := os.Getenv("ADO_INSECURE_SKIP_VERIFY"); v != "" {
		cfg.Azure.InsecureSkipVerify = parseBool(v)
	}
	if v := os.Getenv("ADO_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Azure.Timeout = d
		}
	}
	if v := os.Getenv("ADO_DASHBOARD_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
}

func defaultConfigPaths() []string {
	home := homeDir()
	return []string{
		".ado-dashboard.yaml",
		".ado-dashboard.yml",
		filepath.Join(home, ".ado-dashboard", "config.yaml"),
		filepath.Join(home, ".ado-dashboard", "config.yml"),
	}
}

func defaultSecretsPaths() []string {
	return []string{
		filepath.Join(".streamlit", "secrets.toml"),
		filepath.Join(homeDir(), ".ado-dashboard", "secrets.toml"),
	}
}

func firstExisting(paths []string) string {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func homeDir() string {
	home := os.Getenv("HOME")
	if home == "" {
		home = os.Getenv("USERPROFILE") // Windows
	}
	return home
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(homeDir(), path[2:])
	}
	return os.ExpandEnv(path)
}

// parseBool parses various boolean representations
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

func isValidFormat(f string) bool {
	for _, v := range validFormats {
		if f == v {
			return true
		}
	}
	return false
}

// ClientOptions returns the REST client settings derived from c.
func (c *Config) ClientOptions() azdo.ClientOptions {
	return azdo.ClientOptions{
		BaseURL:            c.Azure.BaseURL,
		APIVersion:         c.Azure.APIVersion,
		Timeout:            c.Azure.Timeout,
		InsecureSkipVerify: c.Azure.InsecureSkipVerify,
	}
}
