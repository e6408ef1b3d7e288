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

// Package model defines the contracts shared by every dxtime value type.
//
// Instants, civil dates and times, durations and the policy enums all
// implement Model: they validate their own invariants, round-trip through
// JSON and YAML using their ISO text form, render themselves for logs and
// report a canonical type name. The generic helpers in this package
// (ValidateAll, SafeString, ToJSON and ToYAML) are written against Value,
// the read side of that contract, so they accept plain values as well as
// pointers.
//
// Value types are immutable. Methods never mutate their receiver except
// for the Unmarshal family, which callers MUST NOT invoke concurrently on
// the same value.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining every contract a dxtime value type
// satisfies.
//
// Example implementation:
//
//	type Span struct{ Start, End int64 }
//
//	func (s Span) Validate() error {
//	    if s.End < s.Start {
//	        return &errors.ValidationError{Type: "Span", Field: "End", Reason: "before Start"}
//	    }
//	    return nil
//	}
//
//	func (s Span) TypeName() string { return "Span" }
//	func (s Span) IsZero() bool     { return s == Span{} }
//	// ... Redacted, String, MarshalJSON, UnmarshalJSON, MarshalYAML, UnmarshalYAML
//
//	var _ Model = (*Span)(nil)
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Value is the part of Model a type satisfies with value receivers alone.
// Every Model's value type is a Value; the Unmarshal half of Serializable
// needs a pointer and is left out.
type Value interface {
	Validatable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable is implemented by types that check their own invariants.
//
// Validate MUST be deterministic and side-effect free: no I/O, no logging,
// no mutation of the receiver. It returns nil if and only if the value is
// usable by the algorithms in this module. Field range violations SHOULD be
// reported as *errors.ValidationError so callers can match them with
// errors.As.
type Validatable interface {
	Validate() error
}

// Serializable covers JSON and YAML round-tripping.
//
// Marshal methods MUST refuse to encode an invalid value and Unmarshal
// methods MUST validate what they decoded. Temporal values encode as their
// ISO 8601 text form (for example "2021-03-14T02:30:00" or "P1M1D"), so a
// value decoded from either format compares equal to the one encoded.
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable supplies two string forms of a value.
//
// String is the canonical human form. Redacted is what goes into logs.
// Temporal values carry nothing secret, so for most types the two are the
// same; a type that does hold sensitive data MUST mask it in Redacted.
type Loggable interface {
	// Redacted returns a representation safe for production logs.
	Redacted() string

	// String returns the full human-readable representation.
	String() string
}

// Identifiable reports a constant CamelCase type name without a package
// prefix ("Instant", "DateTime", "Duration"). It appears in error messages
// and structured log fields.
type Identifiable interface {
	TypeName() string
}

// ZeroCheckable reports whether a value is the zero value of its type.
//
// For enums the zero value is the documented default (Constrain, Nearest,
// Compatible). For civil values IsZero is purely structural; the zero Date
// is not a valid calendar date.
type ZeroCheckable interface {
	IsZero() bool
}
