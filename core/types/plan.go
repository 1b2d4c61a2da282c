// Package types - Plan identity
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// PlanID is an opaque plan identifier. Upstream records use either strings
// or integers; both are kept in their textual form.
type PlanID string

// String returns the string representation
func (id PlanID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is unset.
func (id PlanID) IsZero() bool {
	return id == ""
}

// PlanIDFrom converts a decoded source value into a PlanID. Integral floats
// (as produced by encoding/json) print without a fraction.
func PlanIDFrom(v any) (PlanID, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return PlanID(x), true
	case PlanID:
		return x, true
	case json.Number:
		return PlanID(x.String()), true
	case int:
		return PlanID(strconv.Itoa(x)), true
	case int32:
		return PlanID(strconv.FormatInt(int64(x), 10)), true
	case int64:
		return PlanID(strconv.FormatInt(x, 10)), true
	case uint:
		return PlanID(strconv.FormatUint(uint64(x), 10)), true
	case uint64:
		return PlanID(strconv.FormatUint(x, 10)), true
	case float64:
		return PlanID(strconv.FormatFloat(x, 'f', -1, 64)), true
	default:
		return "", false
	}
}

// UnmarshalJSON accepts both JSON strings and numbers.
func (id *PlanID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PlanID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("plan id must be a string or number: %w", err)
	}
	*id = PlanID(n.String())
	return nil
}
