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

package pullrequest

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	relayerrors "github.com/sirseerhq/ado-dashboard/internal/errors"
)

// Normalize maps raw pull request objects, as decoded from the `value` array
// of the Azure DevOps response, into Records. The first object with a missing
// or wrongly shaped field fails the whole batch with a *MappingError; no
// partial result is returned. Ids must be unique within the batch.
func Normalize(raw []map[string]any) ([]Record, error) {
	records := make([]Record, 0, len(raw))
	seen := make(map[int]struct{}, len(raw))
	for i, obj := range raw {
		rec, err := normalizeOne(obj)
		if err != nil {
			err.Index = i
			return nil, err
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, &relayerrors.MappingError{Index: i, Field: "pullRequestId", Reason: "is duplicated"}
		}
		seen[rec.ID] = struct{}{}
		records = append(records, rec)
	}
	return records, nil
}

func normalizeOne(obj map[string]any) (Record, *relayerrors.MappingError) {
	var rec Record
	var err *relayerrors.MappingError

	if rec.ID, err = intField(obj, "pullRequestId"); err != nil {
		return Record{}, err
	}
	if rec.Title, err = stringField(obj, "title"); err != nil {
		return Record{}, err
	}
	if rec.Status, err = stringField(obj, "status"); err != nil {
		return Record{}, err
	}
	if rec.Repository, err = stringField(obj, "repository.name"); err != nil {
		return Record{}, err
	}
	if rec.Creator, err = stringField(obj, "createdBy.displayName"); err != nil {
		return Record{}, err
	}

	created, err := stringField(obj, "creationDate")
	if err != nil {
		return Record{}, err
	}
	if rec.CreatedAt, err = parseCreationDate(created); err != nil {
		return Record{}, err
	}

	return rec, nil
}

// lookup walks a dotted path through nested objects.
func lookup(obj map[string]any, path string) (any, *relayerrors.MappingError) {
	parts := strings.Split(path, ".")
	var cur any = obj
	for i, part := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			parent := strings.Join(parts[:i], ".")
			return nil, &relayerrors.MappingError{Field: parent, Reason: "is not an object"}
		}
		v, ok := m[part]
		if !ok || v == nil {
			return nil, &relayerrors.MappingError{Field: path, Reason: "is missing"}
		}
		cur = v
	}
	return cur, nil
}

func stringField(obj map[string]any, path string) (string, *relayerrors.MappingError) {
	v, err := lookup(obj, path)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &relayerrors.MappingError{Field: path, Reason: fmt.Sprintf("must be a string, got %T", v)}
	}
	return s, nil
}

func intField(obj map[string]any, path string) (int, *relayerrors.MappingError) {
	v, err := lookup(obj, path)
	if err != nil {
		return 0, err
	}

	switch n := v.(type) {
	case json.Number:
		i, convErr := n.Int64()
		if convErr != nil {
			return 0, &relayerrors.MappingError{Field: path, Reason: fmt.Sprintf("must be an integer, got %s", n)}
		}
		return int(i), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, &relayerrors.MappingError{Field: path, Reason: fmt.Sprintf("must be an integer, got %v", n)}
		}
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, &relayerrors.MappingError{Field: path, Reason: fmt.Sprintf("must be a number, got %T", v)}
	}
}

// parseCreationDate accepts RFC 3339 timestamps with any number of fractional
// digits. A trailing "Z" is UTC.
func parseCreationDate(s string) (time.Time, *relayerrors.MappingError) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, &relayerrors.MappingError{Field: "creationDate", Reason: fmt.Sprintf("is not an ISO-8601 timestamp: %q", s)}
	}
	return t.UTC(), nil
}
