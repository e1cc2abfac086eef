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
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	relayerrors "github.com/sirseerhq/ado-dashboard/internal/errors"
	"github.com/sirseerhq/ado-dashboard/internal/neterror"
)

// RESTClient implements Client against the Azure DevOps REST API.
type RESTClient struct {
	httpClient *http.Client
	opts       ClientOptions
}

// NewRESTClient creates a client that authenticates with the given personal
// access token. The client is configured with:
//   - HTTP Basic authentication with an empty user name
//   - TLS verification as set by opts.InsecureSkipVerify
//   - A request timeout and a response size limit
func NewRESTClient(pat string, opts ClientOptions) *RESTClient {
	opts = opts.withDefaults()

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.IdleConnTimeout = 90 * time.Second
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: opts.InsecureSkipVerify, // #nosec G402 - opt-in, see ClientOptions
		MinVersion:         tls.VersionTLS12,
	}

	return &RESTClient{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			Transport: &authTransport{
				pat:  pat,
				base: transport,
			},
		},
		opts: opts,
	}
}

// FetchPullRequests issues one GET against the pull request listing endpoint.
// Non-200 answers become *errors.HTTPError, failures while sending the request
// or reading the body *errors.TransportError, and a complete body that is not
// JSON or has no `value` array *errors.MappingError.
// There are no retries.
func (c *RESTClient) FetchPullRequests(ctx context.Context, q Query) ([]map[string]any, error) {
	reqURL := buildURL(c.opts.BaseURL, c.opts.APIVersion, q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &relayerrors.TransportError{Kind: neterror.Classify(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil && len(body) == 0 {
			body = []byte(readErr.Error())
		}
		return nil, &relayerrors.HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &relayerrors.TransportError{Kind: neterror.Classify(err), Err: err}
	}

	return decodeValue(body)
}

// buildURL assembles the search URL. The query string is written by hand so
// that `$top` is sent literally rather than percent-encoded.
func buildURL(baseURL, apiVersion string, q Query) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))
	b.WriteString("/")
	b.WriteString(url.PathEscape(q.Organization))
	b.WriteString("/")
	b.WriteString(url.PathEscape(q.Project))
	b.WriteString("/_apis/git/pullrequests")

	params := [][2]string{
		{"api-version", apiVersion},
		{"searchCriteria.status", "all"},
		{"searchCriteria.queryTimeRangeType", "created"},
		{"$top", strconv.Itoa(MaxResults)},
		{"searchCriteria.minTime", q.StartDate.Format(StartDateLayout)},
	}
	for i, p := range params {
		if i == 0 {
			b.WriteString("?")
		} else {
			b.WriteString("&")
		}
		b.WriteString(p[0])
		b.WriteString("=")
		b.WriteString(url.QueryEscape(p[1]))
	}

	return b.String()
}

// decodeValue extracts the `value` array from a fully read body, keeping
// numbers as json.Number so the normalizer can reject non-integral ids.
func decodeValue(body []byte) ([]map[string]any, error) {
	var envelope struct {
		Count int               `json:"count"`
		Value *[]map[string]any `json:"value"`
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&envelope); err != nil {
		return nil, &relayerrors.MappingError{Index: -1, Field: "response", Reason: fmt.Sprintf("is not valid JSON: %v", err)}
	}
	if envelope.Value == nil {
		return nil, &relayerrors.MappingError{Index: -1, Field: "value", Reason: "is missing"}
	}

	return *envelope.Value, nil
}
