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

package azdo

import (
	"fmt"
	"strings"
	"time"
)

// Defaults for the pull request search.
const (
	DefaultBaseURL    = "https://dev.azure.com"
	DefaultAPIVersion = "7.2-preview.2"

	// MaxResults is the single-page cap sent as $top. Results beyond it are not fetched.
	MaxResults = 1000

	// StartDateLayout is the format of searchCriteria.minTime.
	StartDateLayout = "2006-01-02"
)

// Query selects the pull requests of one project.
type Query struct {
	Organization string
	Project      string

	// StartDate is the earliest creation date to include. Only the date part is sent.
	StartDate time.Time
}

// ClientOptions configures a RESTClient. Zero values select the defaults.
type ClientOptions struct {
	// BaseURL is the scheme and host of the organization service, e.g.
	// https://dev.azure.com or an Azure DevOps Server collection URL.
	BaseURL string

	APIVersion string

	// Timeout bounds the whole request. Defaults to 30s.
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate validation. The dashboard
	// enables it by default to work against servers with self-signed
	// certificates.
	InsecureSkipVerify bool
}

func (o ClientOptions) withDefaults() ClientOptions {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.APIVersion == "" {
		o.APIVersion = DefaultAPIVersion
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return o
}

// ParseStartDate parses a YYYY-MM-DD date in the local time zone. An empty
// string selects today.
func ParseStartDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation(StartDateLayout, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}
