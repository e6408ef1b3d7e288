/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package policy

import (
	"encoding/json"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/model"
	"gopkg.in/yaml.v3"
)

// RoundingMode selects the direction in which a quantity is moved to a
// multiple of a rounding increment.
type RoundingMode int

const (
	// Nearest rounds to the closest multiple; exact halves move away from
	// zero (150 -> 200, -150 -> -200). This is not banker's rounding.
	Nearest RoundingMode = iota

	// Ceil rounds toward positive infinity.
	Ceil

	// Floor rounds toward negative infinity.
	Floor

	// Trunc rounds toward zero.
	Trunc
)

// Canonical names of the RoundingMode values.
const (
	NearestStr = "nearest"
	CeilStr    = "ceil"
	FloorStr   = "floor"
	TruncStr   = "trunc"
)

// ParseRoundingMode converts a textual rounding mode into a RoundingMode.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch s {
	case NearestStr, "Nearest", "NEAREST":
		return Nearest, nil
	case CeilStr, "Ceil", "CEIL":
		return Ceil, nil
	case FloorStr, "Floor", "FLOOR":
		return Floor, nil
	case TruncStr, "Trunc", "TRUNC":
		return Trunc, nil
	default:
		return Nearest, &errors.ParseError{Type: "RoundingMode", Value: s}
	}
}

// String returns the canonical name, or "unknown" for values outside the
// constant set.
func (m RoundingMode) String() string {
	switch m {
	case Nearest:
		return NearestStr
	case Ceil:
		return CeilStr
	case Floor:
		return FloorStr
	case Trunc:
		return TruncStr
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the defined constants.
func (m RoundingMode) Valid() bool {
	return m >= Nearest && m <= Trunc
}

// TypeName returns "RoundingMode".
func (m RoundingMode) TypeName() string { return "RoundingMode" }

// Redacted returns String(); a mode carries nothing sensitive.
func (m RoundingMode) Redacted() string { return m.String() }

// IsZero reports whether m is Nearest, the zero value.
func (m RoundingMode) IsZero() bool { return m == Nearest }

// Validate returns a *errors.ValidationError for values outside the
// constant set.
func (m RoundingMode) Validate() error {
	if !m.Valid() {
		return &errors.ValidationError{Type: "RoundingMode", Reason: "invalid RoundingMode value", Value: int(m)}
	}
	return nil
}

// MarshalJSON encodes m as its canonical name.
func (m RoundingMode) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return nil, &errors.MarshalError{Type: "RoundingMode", Value: int(m)}
	}
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts any name ParseRoundingMode accepts as a JSON string.
func (m *RoundingMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "RoundingMode", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseRoundingMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalYAML encodes m as its canonical name.
func (m RoundingMode) MarshalYAML() (any, error) {
	if !m.Valid() {
		return nil, &errors.MarshalError{Type: "RoundingMode", Value: int(m)}
	}
	return m.String(), nil
}

// UnmarshalYAML decodes a scalar rounding mode name.
func (m *RoundingMode) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "RoundingMode", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseRoundingMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m RoundingMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, &errors.MarshalError{Type: "RoundingMode", Value: int(m)}
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *RoundingMode) UnmarshalText(text []byte) error {
	parsed, err := ParseRoundingMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

var _ model.Model = (*RoundingMode)(nil)
