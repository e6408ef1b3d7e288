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

// Unit names one of the ten duration components. Units are ordered from
// largest (Years) to smallest (Nanoseconds), so a numerically smaller Unit
// is a larger unit of time.
type Unit int

const (
	Years Unit = iota
	Months
	Weeks
	Days
	Hours
	Minutes
	Seconds
	Milliseconds
	Microseconds
	Nanoseconds
)

var unitNames = [...]string{
	Years:        "years",
	Months:       "months",
	Weeks:        "weeks",
	Days:         "days",
	Hours:        "hours",
	Minutes:      "minutes",
	Seconds:      "seconds",
	Milliseconds: "milliseconds",
	Microseconds: "microseconds",
	Nanoseconds:  "nanoseconds",
}

var unitNanoseconds = [...]int64{
	Days:         86_400_000_000_000,
	Hours:        3_600_000_000_000,
	Minutes:      60_000_000_000,
	Seconds:      1_000_000_000,
	Milliseconds: 1_000_000,
	Microseconds: 1_000,
	Nanoseconds:  1,
}

// ParseUnit accepts the plural ("hours") and singular ("hour") lowercase
// unit names.
func ParseUnit(s string) (Unit, error) {
	for u, name := range unitNames {
		if s == name || s == name[:len(name)-1] {
			return Unit(u), nil
		}
	}
	return Nanoseconds, &errors.ParseError{Type: "Unit", Value: s}
}

// String returns the plural lowercase name.
func (u Unit) String() string {
	if !u.Valid() {
		return "unknown"
	}
	return unitNames[u]
}

// Singular returns the singular lowercase name ("hour").
func (u Unit) Singular() string {
	if !u.Valid() {
		return "unknown"
	}
	name := unitNames[u]
	return name[:len(name)-1]
}

// Valid reports whether u is one of the defined constants.
func (u Unit) Valid() bool {
	return u >= Years && u <= Nanoseconds
}

// Larger reports whether u is a strictly larger unit than other.
func (u Unit) Larger(other Unit) bool {
	return u < other
}

// Calendar reports whether the length of u depends on a calendar and a
// reference date (years, months and weeks).
func (u Unit) Calendar() bool {
	return u == Years || u == Months || u == Weeks
}

// Nanoseconds returns the fixed length of u in nanoseconds. Calendar units
// have no fixed length and return 0. A day is always 24 hours here; zone
// transitions are handled by the tz package, not by unit arithmetic.
func (u Unit) Nanoseconds() int64 {
	if !u.Valid() || u.Calendar() {
		return 0
	}
	return unitNanoseconds[u]
}

// Modulus returns how many of u make up the next larger unit when u is a
// time-of-day field: 24 for hours, 60 for minutes and seconds, 1000 for the
// sub-second units. Days and larger return 0.
func (u Unit) Modulus() int64 {
	switch u {
	case Hours:
		return 24
	case Minutes, Seconds:
		return 60
	case Milliseconds, Microseconds, Nanoseconds:
		return 1000
	default:
		return 0
	}
}

// TypeName returns "Unit".
func (u Unit) TypeName() string { return "Unit" }

// Redacted returns String(); a unit carries nothing sensitive.
func (u Unit) Redacted() string { return u.String() }

// IsZero reports whether u is Years, the zero value.
func (u Unit) IsZero() bool { return u == Years }

// Validate returns a *errors.ValidationError for values outside the
// constant set.
func (u Unit) Validate() error {
	if !u.Valid() {
		return &errors.ValidationError{Type: "Unit", Reason: "invalid Unit value", Value: int(u)}
	}
	return nil
}

// MarshalJSON encodes u as its canonical name.
func (u Unit) MarshalJSON() ([]byte, error) {
	if !u.Valid() {
		return nil, &errors.MarshalError{Type: "Unit", Value: int(u)}
	}
	return []byte(`"` + u.String() + `"`), nil
}

// UnmarshalJSON accepts any name ParseUnit accepts as a JSON string.
func (u *Unit) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Unit", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseUnit(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// MarshalYAML encodes u as its canonical name.
func (u Unit) MarshalYAML() (any, error) {
	if !u.Valid() {
		return nil, &errors.MarshalError{Type: "Unit", Value: int(u)}
	}
	return u.String(), nil
}

// UnmarshalYAML decodes a scalar unit name.
func (u *Unit) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Unit", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseUnit(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, &errors.MarshalError{Type: "Unit", Value: int(u)}
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

var _ model.Model = (*Unit)(nil)
