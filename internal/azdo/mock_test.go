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
	"context"
	"errors"
	"testing"

	relayerrors "github.com/sirseerhq/ado-dashboard/internal/errors"
)

func TestMockClient(t *testing.T) {
	tests := []struct {
		name      string
		opts      []MockClientOption
		wantCount int
		wantErr   error
	}{
		{
			name:      "default data",
			wantCount: 3,
		},
		{
			name:      "empty result",
			opts:      []MockClientOption{WithPullRequests([]map[string]any{})},
			wantCount: 0,
		},
		{
			name:    "auth failure",
			opts:    []MockClientOption{WithAuthFailure()},
			wantErr: relayerrors.ErrInvalidToken,
		},
		{
			name:    "network failure",
			opts:    []MockClientOption{WithNetworkFailure()},
			wantErr: relayerrors.ErrNetworkFailure,
		},
		{
			name:    "custom error",
			opts:    []MockClientOption{WithError(relayerrors.ErrMapping)},
			wantErr: relayerrors.ErrMapping,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewMockClientWithOptions(tt.opts...)
			raw, err := client.FetchPullRequests(context.Background(), testQuery)

			if client.CallCount != 1 {
				t.Errorf("CallCount = %d, want 1", client.CallCount)
			}
			if client.LastQuery != testQuery {
				t.Errorf("LastQuery = %+v, want %+v", client.LastQuery, testQuery)
			}

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(raw) != tt.wantCount {
				t.Errorf("got %d records, want %d", len(raw), tt.wantCount)
			}
		})
	}
}

func TestMockClient_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMockClient().FetchPullRequests(ctx, testQuery)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
