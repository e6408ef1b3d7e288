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

// Package errors provides the error types returned by every dxtime package.
//
// dxtime distinguishes two failure classes:
//
//   - ValidationError
//     Malformed or out-of-domain input: an out-of-range field under the
//     Reject overflow policy, a mixed-sign duration, an instant outside the
//     supported range, an arithmetic overflow while balancing, a missing
//     rounding anchor, or a time zone identifier the zone database cannot
//     resolve.
//
//   - AmbiguityError
//     A wall-clock time maps to zero or several instants in a zone and the
//     caller asked for the Reject disambiguation policy.
//
// ParseError, MarshalError and UnmarshalError cover the textual surface of
// the enum-like policy types and the ISO-8601 representations of the value
// types.
//
// None of these errors are retried internally. All of them are plain value
// carriers with stable messages; callers match them with errors.As:
//
//	var verr *errors.ValidationError
//	if stderrors.As(err, &verr) && verr.Field == "Month" {
//	    // ...
//	}
package errors

import (
	"strconv"
	"strings"
)

// ParseError is returned when a textual value (for example an overflow
// policy name or an ISO-8601 date) cannot be interpreted.
type ParseError struct {
	// Type is the logical name of the type being parsed (for example,
	// "Overflow" or "Date").
	Type string

	// Value is the text that was rejected.
	Value string
}

// Error implements the error interface for ParseError.
//
// The message format is "dxtime: invalid {Type} value: {Value}".
func (e *ParseError) Error() string {
	return "dxtime: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when an enum-like value outside its constant set
// is asked to serialize itself.
type MarshalError struct {
	// Type is the logical name of the type being marshaled.
	Type string

	// Value is the underlying numeric value.
	Value int
}

// Error implements the error interface for MarshalError.
func (e *MarshalError) Error() string {
	return "dxtime: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when decoding a payload into a dxtime type
// fails before validation could run.
//
// Data is kept for diagnostics but deliberately left out of Error().
type UnmarshalError struct {
	Type   string
	Data   []byte
	Reason string
}

// Error implements the error interface for UnmarshalError.
func (e *UnmarshalError) Error() string {
	return "dxtime: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError reports that an input lies outside the domain of an
// operation.
//
// Type names the value or operation ("Date", "Duration", "TimeZone"),
// Field optionally names the offending component ("Month", "Days"), Reason
// is a short explanation and Value optionally carries the rejected input.
type ValidationError struct {
	// Type is the logical name of the type or operation being validated.
	Type string

	// Field is the name of the field that failed validation.
	// May be empty if the error applies to the entire value.
	Field string

	// Reason is a short, human-readable explanation.
	Reason string

	// Value optionally contains the invalid value.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The message format is:
//
//	"dxtime: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"dxtime: invalid {Type}: {Reason}" (when Field is empty)
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "dxtime: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "dxtime: invalid " + e.Type + ": " + e.Reason
}

// OutOfRange builds the ValidationError used by every range check:
// "value out of range: {min} <= {value} <= {max}".
func OutOfRange(typ, field string, value, minimum, maximum int64) *ValidationError {
	return &ValidationError{
		Type:  typ,
		Field: field,
		Reason: "value out of range: " + strconv.FormatInt(minimum, 10) + " <= " +
			strconv.FormatInt(value, 10) + " <= " + strconv.FormatInt(maximum, 10),
		Value: value,
	}
}

// AmbiguityError is returned when a wall-clock time does not identify
// exactly one instant in a time zone and the Reject disambiguation policy
// was requested.
//
// Candidates holds the epoch nanoseconds of the matching instants as
// decimal strings; it is empty for a wall-clock time that falls into a
// skipped interval and holds two entries for a repeated interval.
type AmbiguityError struct {
	// Zone is the time zone identifier.
	Zone string

	// DateTime is the ISO-8601 rendering of the wall-clock time.
	DateTime string

	// Candidates lists the instants that map to DateTime.
	Candidates []string
}

// Error implements the error interface for AmbiguityError.
func (e *AmbiguityError) Error() string {
	if len(e.Candidates) == 0 {
		return "dxtime: " + e.DateTime + " does not exist in time zone " + e.Zone
	}
	return "dxtime: " + e.DateTime + " is ambiguous in time zone " + e.Zone +
		" (candidates: " + strings.Join(e.Candidates, ", ") + ")"
}
