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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	relayerrors "github.com/sirseerhq/ado-dashboard/internal/errors"
)

// isolate points HOME and the working directory at an empty temp dir and
// clears the environment variables LoadConfig reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	for _, key := range []string{
		"ADO_ORGANIZATION", "ADO_PROJECT", "ADO_PAT", "ADO_BASE_URL",
		"ADO_INSECURE_SKIP_VERIFY", "ADO_TIMEOUT", "ADO_DASHBOARD_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Azure.BaseURL != "https://dev.azure.com" {
		t.Errorf("BaseURL = %s, want https://dev.azure.com", cfg.Azure.BaseURL)
	}
	if cfg.Azure.APIVersion != "7.2-preview.2" {
		t.Errorf("APIVersion = %s, want 7.2-preview.2", cfg.Azure.APIVersion)
	}
	if cfg.Azure.PATEnv != "ADO_PAT" {
		t.Errorf("PATEnv = %s, want ADO_PAT", cfg.Azure.PATEnv)
	}
	if !cfg.Azure.InsecureSkipVerify {
		t.Error("InsecureSkipVerify = false, want true")
	}
	if cfg.Azure.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", cfg.Azure.Timeout)
	}
	if cfg.Defaults.OutputFormat != "table" {
		t.Errorf("OutputFormat = %s, want table", cfg.Defaults.OutputFormat)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "custom.yaml")

	writeFile(t, configPath, `
azure:
  base_url: https://tfs.example.com/DefaultCollection
  api_version: "7.1"
  organization: contoso
  project: web
  pat_env: TFS_TOKEN
  insecure_skip_verify: false
  timeout: 45s

defaults:
  output_format: csv
  export_dir: /tmp/exports

logging:
  level: debug
  file: /tmp/ado.log
`)
	t.Setenv("TFS_TOKEN", "from-custom-env")

	cfg, err := LoadConfig(configPath, "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Azure.BaseURL != "https://tfs.example.com/DefaultCollection" {
		t.Errorf("BaseURL = %s", cfg.Azure.BaseURL)
	}
	if cfg.Azure.APIVersion != "7.1" {
		t.Errorf("APIVersion = %s, want 7.1", cfg.Azure.APIVersion)
	}
	if cfg.Azure.Organization != "contoso" || cfg.Azure.Project != "web" {
		t.Errorf("Organization/Project = %s/%s, want contoso/web", cfg.Azure.Organization, cfg.Azure.Project)
	}
	if cfg.PAT != "from-custom-env" {
		t.Errorf("PAT = %q, want from-custom-env", cfg.PAT)
	}
	if cfg.Azure.InsecureSkipVerify {
		t.Error("InsecureSkipVerify = true, want false")
	}
	if cfg.Azure.Timeout != 45*time.Second {
		t.Errorf("Timeout = %s, want 45s", cfg.Azure.Timeout)
	}
	if cfg.Defaults.OutputFormat != "csv" {
		t.Errorf("OutputFormat = %s, want csv", cfg.Defaults.OutputFormat)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.File != "/tmp/ado.log" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadConfig_DefaultLocations(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".ado-dashboard", "config.yaml"), "azure:\n  organization: home-org\n")
	writeFile(t, filepath.Join(dir, ".streamlit", "secrets.toml"), `
ado_project = "secret-project"
ado_pat = "secret-pat"
`)

	cfg, err := LoadConfig("", "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Azure.Organization != "home-org" {
		t.Errorf("Organization = %q, want home-org", cfg.Azure.Organization)
	}
	if cfg.Azure.Project != "secret-project" {
		t.Errorf("Project = %q, want secret-project", cfg.Azure.Project)
	}
	if cfg.PAT != "secret-pat" {
		t.Errorf("PAT = %q, want secret-pat", cfg.PAT)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "config.yaml")
	secretsPath := filepath.Join(dir, "secrets.toml")

	writeFile(t, configPath, "azure:\n  organization: file-org\n  project: file-project\n")
	writeFile(t, secretsPath, "ado_organization = \"secret-org\"\nado_project = \"secret-project\"\nado_pat = \"secret-pat\"\n")
	t.Setenv("ADO_PROJECT", "env-project")

	cfg, err := LoadConfig(configPath, secretsPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// secrets over file, env over secrets
	if cfg.Azure.Organization != "secret-org" {
		t.Errorf("Organization = %q, want secret-org", cfg.Azure.Organization)
	}
	if cfg.Azure.Project != "env-project" {
		t.Errorf("Project = %q, want env-project", cfg.Azure.Project)
	}

	// flags over everything
	cfg.Apply(Overrides{Organization: " flag-org ", PAT: "flag-pat"})
	if cfg.Azure.Organization != "flag-org" {
		t.Errorf("Organization = %q, want flag-org", cfg.Azure.Organization)
	}
	if cfg.Azure.Project != "env-project" {
		t.Errorf("empty override must not clear Project, got %q", cfg.Azure.Project)
	}
	if cfg.PAT != "flag-pat" {
		t.Errorf("PAT = %q, want flag-pat", cfg.PAT)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := isolate(t)

	badYAML := filepath.Join(dir, "bad.yaml")
	writeFile(t, badYAML, "azure: [unclosed")
	if _, err := LoadConfig(badYAML, ""); err == nil {
		t.Error("expected error for malformed YAML")
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml"), ""); err == nil {
		t.Error("expected error for missing explicit config file")
	}

	badTOML := filepath.Join(dir, "bad.toml")
	writeFile(t, badTOML, "ado_pat = ")
	if _, err := LoadConfig("", badTOML); err == nil {
		t.Error("expected error for malformed secrets file")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("ADO_ORGANIZATION", "env-org")
	t.Setenv("ADO_BASE_URL", "https://ado.internal")
	t.Setenv("ADO_PAT", "env-pat")
	t.Setenv("ADO_INSECURE_SKIP_VERIFY", "no")
	t.Setenv("ADO_TIMEOUT", "5s")
	t.Setenv("ADO_DASHBOARD_LOG_FILE", "~/logs/ado.log")

	cfg, err := LoadConfig("", "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Azure.Organization != "env-org" {
		t.Errorf("Organization = %s, want env-org", cfg.Azure.Organization)
	}
	if cfg.Azure.BaseURL != "https://ado.internal" {
		t.Errorf("BaseURL = %s, want https://ado.internal", cfg.Azure.BaseURL)
	}
	if cfg.PAT != "env-pat" {
		t.Errorf("PAT = %s, want env-pat", cfg.PAT)
	}
	if cfg.Azure.InsecureSkipVerify {
		t.Error("InsecureSkipVerify = true, want false")
	}
	if cfg.Azure.Timeout != 5*time.Second {
		t.Errorf("Timeout = %s, want 5s", cfg.Azure.Timeout)
	}
	if !strings.HasSuffix(cfg.Logging.File, filepath.Join("logs", "ado.log")) || strings.HasPrefix(cfg.Logging.File, "~") {
		t.Errorf("Logging.File = %s, want expanded path", cfg.Logging.File)
	}
}

func TestValidate(t *testing.T) {
	complete := func() *Config {
		cfg := DefaultConfig()
		cfg.Azure.Organization = "contoso"
		cfg.Azure.Project = "web"
		cfg.PAT = "pat"
		return cfg
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     string
		wantMissing []string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:        "nothing set",
			mutate:      func(c *Config) { c.Azure.Organization, c.Azure.Project, c.PAT = "", "", "" },
			wantErr:     "please provide Azure DevOps organization, project, PAT",
			wantMissing: []string{"organization", "project", "PAT"},
		},
		{
			name:        "whitespace project",
			mutate:      func(c *Config) { c.Azure.Project = "   " },
			wantErr:     "project",
			wantMissing: []string{"project"},
		},
		{
			name:    "bad base url",
			mutate:  func(c *Config) { c.Azure.BaseURL = "dev.azure.com" },
			wantErr: "must start with http",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Azure.Timeout = 0 },
			wantErr: "timeout must be positive",
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Defaults.OutputFormat = "xml" },
			wantErr: "unsupported output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := complete()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() error = nil, want %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %s", err, tt.wantErr)
			}
			if tt.wantMissing != nil {
				var incomplete *relayerrors.ConfigIncompleteError
				if !errors.As(err, &incomplete) {
					t.Fatalf("expected *ConfigIncompleteError, got %T", err)
				}
				if strings.Join(incomplete.Missing, ",") != strings.Join(tt.wantMissing, ",") {
					t.Errorf("Missing = %v, want %v", incomplete.Missing, tt.wantMissing)
				}
				if !errors.Is(err, relayerrors.ErrConfigIncomplete) {
					t.Error("expected errors.Is(err, ErrConfigIncomplete)")
				}
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)

	tests := []struct {
		input string
		want  string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		if got := expandPath(tt.input); got != tt.want {
			t.Errorf("expandPath(%s) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"1", true},
		{"on", true},
		{"false", false},
		{"no", false},
		{"0", false},
		{"", false},
		{"random", false},
	}

	for _, tt := range tests {
		if got := parseBool(tt.input); got != tt.want {
			t.Errorf("parseBool(%s) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestClientOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Azure.BaseURL = "https://ado.internal/tfs"
	cfg.Azure.InsecureSkipVerify = false
	cfg.Azure.Timeout = 5 * time.Second

	opts := cfg.ClientOptions()
	if opts.BaseURL != "https://ado.internal/tfs" {
		t.Errorf("BaseURL = %q", opts.BaseURL)
	}
	if opts.APIVersion != "7.2-preview.2" {
		t.Errorf("APIVersion = %q", opts.APIVersion)
	}
	if opts.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", opts.Timeout)
	}
	if opts.InsecureSkipVerify {
		t.Error("InsecureSkipVerify should follow the config")
	}
}
