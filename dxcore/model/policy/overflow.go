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

// Package policy defines the closed option enums that steer dxtime's
// algorithms: how out-of-range fields are treated (Overflow), how values are
// quantized (RoundingMode), how a wall-clock time is mapped to an instant
// when a zone makes it ambiguous (Disambiguation) and which unit an
// operation targets (Unit).
//
// Every type follows the same shape: an int-backed constant set, a ParseX
// function accepting the canonical lowercase name plus a couple of case
// variants, String/Valid/Validate, and JSON, YAML and text marshalling of
// the canonical name. Callers switching on these values get exhaustive,
// compile-time-checked branches instead of open string matching.
package policy

import (
	"encoding/json"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Overflow selects what happens when a field lies outside its natural
// bounds.
//
// Constrain and Balance are deliberately different: Constrain clamps each
// field to its own legal range and never moves a value into another unit,
// while Balance carries the excess into the next larger unit. Balance only
// applies to durations; civil date and time regulation rejects it.
type Overflow int

const (
	// Constrain clamps each field independently to its legal bound.
	// It is the default policy.
	Constrain Overflow = iota

	// Reject fails with a *errors.ValidationError on any out-of-range field.
	Reject

	// Balance carries excess into the next larger unit (durations only).
	Balance
)

// Canonical names of the Overflow values.
const (
	ConstrainStr = "constrain"
	RejectStr    = "reject"
	BalanceStr   = "balance"
)

// ParseOverflow converts a textual overflow policy into an Overflow value.
//
// Accepted inputs are the canonical lowercase names and their Title and
// UPPER case variants. Anything else yields a *errors.ParseError.
func ParseOverflow(s string) (Overflow, error) {
	switch s {
	case ConstrainStr, "Constrain", "CONSTRAIN":
		return Constrain, nil
	case RejectStr, "Reject", "REJECT":
		return Reject, nil
	case BalanceStr, "Balance", "BALANCE":
		return Balance, nil
	default:
		return Constrain, &errors.ParseError{Type: "Overflow", Value: s}
	}
}

// String returns the canonical name, or "unknown" for values outside the
// constant set.
func (o Overflow) String() string {
	switch o {
	case Constrain:
		return ConstrainStr
	case Reject:
		return RejectStr
	case Balance:
		return BalanceStr
	default:
		return "unknown"
	}
}

// Valid reports whether o is one of the defined constants.
func (o Overflow) Valid() bool {
	return o == Constrain || o == Reject || o == Balance
}

// TypeName returns "Overflow".
func (o Overflow) TypeName() string { return "Overflow" }

// Redacted returns String(); policies carry nothing sensitive.
func (o Overflow) Redacted() string { return o.String() }

// IsZero reports whether o is Constrain, the default policy.
func (o Overflow) IsZero() bool { return o == Constrain }

// Validate returns a *errors.ValidationError for values outside the
// constant set.
func (o Overflow) Validate() error {
	if !o.Valid() {
		return &errors.ValidationError{Type: "Overflow", Reason: "invalid Overflow value", Value: int(o)}
	}
	return nil
}

// MarshalJSON encodes o as its canonical name.
func (o Overflow) MarshalJSON() ([]byte, error) {
	if !o.Valid() {
		return nil, &errors.MarshalError{Type: "Overflow", Value: int(o)}
	}
	return []byte(`"` + o.String() + `"`), nil
}

// UnmarshalJSON accepts the canonical name (or a case variant) as a JSON
// string.
func (o *Overflow) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Overflow", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseOverflow(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// MarshalYAML encodes o as its canonical name.
func (o Overflow) MarshalYAML() (any, error) {
	if !o.Valid() {
		return nil, &errors.MarshalError{Type: "Overflow", Value: int(o)}
	}
	return o.String(), nil
}

// UnmarshalYAML decodes a scalar policy name.
func (o *Overflow) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Overflow", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseOverflow(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (o Overflow) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, &errors.MarshalError{Type: "Overflow", Value: int(o)}
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Overflow) UnmarshalText(text []byte) error {
	parsed, err := ParseOverflow(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

var _ model.Model = (*Overflow)(nil)
