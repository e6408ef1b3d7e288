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

// Disambiguation chooses one instant for a wall-clock time that a time zone
// maps to zero instants (a skipped interval, typically a spring-forward
// transition) or to two instants (a repeated interval, typically a
// fall-back transition).
type Disambiguation int

const (
	// Compatible matches common wall-clock convention: a skipped time is
	// moved forward by the length of the gap (02:30 becomes 03:30 when
	// 02:00 jumps to 03:00) and a repeated time resolves to its earlier
	// occurrence.
	Compatible Disambiguation = iota

	// Earlier picks the earlier of two candidates; a skipped time is moved
	// backward by the length of the gap.
	Earlier

	// Later picks the later of two candidates; a skipped time is moved
	// forward by the length of the gap.
	Later

	// RejectAmbiguous fails with a *errors.AmbiguityError unless exactly one instant
	// matches.
	RejectAmbiguous
)

// Canonical names of the Disambiguation values.
const (
	CompatibleStr      = "compatible"
	EarlierStr         = "earlier"
	LaterStr           = "later"
	RejectAmbiguousStr = "reject"
)

// ParseDisambiguation converts a textual policy into a Disambiguation.
func ParseDisambiguation(s string) (Disambiguation, error) {
	switch s {
	case CompatibleStr, "Compatible", "COMPATIBLE":
		return Compatible, nil
	case EarlierStr, "Earlier", "EARLIER":
		return Earlier, nil
	case LaterStr, "Later", "LATER":
		return Later, nil
	case RejectAmbiguousStr, "Reject", "REJECT":
		return RejectAmbiguous, nil
	default:
		return Compatible, &errors.ParseError{Type: "Disambiguation", Value: s}
	}
}

// String returns the canonical name, or "unknown" for values outside the
// constant set.
func (d Disambiguation) String() string {
	switch d {
	case Compatible:
		return CompatibleStr
	case Earlier:
		return EarlierStr
	case Later:
		return LaterStr
	case RejectAmbiguous:
		return RejectAmbiguousStr
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the defined constants.
func (d Disambiguation) Valid() bool {
	return d >= Compatible && d <= RejectAmbiguous
}

// TypeName returns "Disambiguation".
func (d Disambiguation) TypeName() string { return "Disambiguation" }

// Redacted returns String(); a policy carries nothing sensitive.
func (d Disambiguation) Redacted() string { return d.String() }

// IsZero reports whether d is Compatible, the zero value.
func (d Disambiguation) IsZero() bool { return d == Compatible }

// Validate returns a *errors.ValidationError for values outside the
// constant set.
func (d Disambiguation) Validate() error {
	if !d.Valid() {
		return &errors.ValidationError{Type: "Disambiguation", Reason: "invalid Disambiguation value", Value: int(d)}
	}
	return nil
}

// MarshalJSON encodes d as its canonical name.
func (d Disambiguation) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, &errors.MarshalError{Type: "Disambiguation", Value: int(d)}
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts any name ParseDisambiguation accepts as a JSON string.
func (d *Disambiguation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Disambiguation", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseDisambiguation(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML encodes d as its canonical name.
func (d Disambiguation) MarshalYAML() (any, error) {
	if !d.Valid() {
		return nil, &errors.MarshalError{Type: "Disambiguation", Value: int(d)}
	}
	return d.String(), nil
}

// UnmarshalYAML decodes a scalar policy name.
func (d *Disambiguation) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Disambiguation", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseDisambiguation(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Disambiguation) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, &errors.MarshalError{Type: "Disambiguation", Value: int(d)}
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Disambiguation) UnmarshalText(text []byte) error {
	parsed, err := ParseDisambiguation(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ model.Model = (*Disambiguation)(nil)
