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

package civil

import (
	"encoding/json"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/model"
	"dirpx.dev/dxtime/dxcore/model/policy"
	"gopkg.in/yaml.v3"
)

// Time is a wall-clock time of day with nanosecond precision.
//
// A regulated Time has every field within its natural bound (hour 0..23,
// minute and second 0..59, sub-second fields 0..999). Intermediate values
// produced while balancing may exceed those bounds.
type Time struct {
	Hour        int
	Minute      int
	Second      int
	Millisecond int
	Microsecond int
	Nanosecond  int
}

// Midnight is 00:00:00.
var Midnight = Time{}

// Noon is 12:00:00.
var Noon = Time{Hour: 12}

// NewTime regulates the fields with Reject.
func NewTime(hour, minute, second, millisecond, microsecond, nanosecond int) (Time, error) {
	return RegulateTime(hour, minute, second, millisecond, microsecond, nanosecond, policy.Reject)
}

// ParseTime reads "HH:MM", "HH:MM:SS" or "HH:MM:SS.fffffffff".
func ParseTime(s string) (Time, error) {
	p := parser{s: s}
	t, ok := p.time()
	if !ok || !p.done() {
		return Time{}, &errors.ParseError{Type: "Time", Value: s}
	}
	if err := t.Validate(); err != nil {
		return Time{}, err
	}
	return t, nil
}

// CompareTimes returns -1, 0 or +1 as a is before, equal to, or after b.
func CompareTimes(a, b Time) int {
	switch {
	case a.Hour != b.Hour:
		return cmpInt(a.Hour, b.Hour)
	case a.Minute != b.Minute:
		return cmpInt(a.Minute, b.Minute)
	case a.Second != b.Second:
		return cmpInt(a.Second, b.Second)
	case a.Millisecond != b.Millisecond:
		return cmpInt(a.Millisecond, b.Millisecond)
	case a.Microsecond != b.Microsecond:
		return cmpInt(a.Microsecond, b.Microsecond)
	default:
		return cmpInt(a.Nanosecond, b.Nanosecond)
	}
}

// Nanoseconds returns the time as nanoseconds since midnight.
func (t Time) Nanoseconds() int64 {
	return int64(t.Hour)*3_600_000_000_000 +
		int64(t.Minute)*60_000_000_000 +
		int64(t.Second)*1_000_000_000 +
		int64(t.Millisecond)*1_000_000 +
		int64(t.Microsecond)*1_000 +
		int64(t.Nanosecond)
}

// Validate checks that every field is within its natural bound.
func (t Time) Validate() error {
	_, err := RegulateTime(t.Hour, t.Minute, t.Second, t.Millisecond, t.Microsecond, t.Nanosecond, policy.Reject)
	return err
}

// TypeName returns "Time".
func (t Time) TypeName() string { return "Time" }

// IsZero reports whether t is midnight.
func (t Time) IsZero() bool { return t == Time{} }

// String returns "HH:MM:SS" followed by the sub-second fraction with
// trailing zeros removed, if any.
func (t Time) String() string {
	return string(appendTime(make([]byte, 0, 18), t))
}

// Redacted returns String.
func (t Time) Redacted() string { return t.String() }

// MarshalJSON encodes t as its ISO string.
func (t Time) MarshalJSON() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes an ISO time string.
func (t *Time) UnmarshalJSON(data []byte) error {
	s, err := jsonString("Time", data)
	if err != nil {
		return err
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML encodes t as its ISO string.
func (t Time) MarshalYAML() (any, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t.String(), nil
}

// UnmarshalYAML decodes an ISO time scalar.
func (t *Time) UnmarshalYAML(node *yaml.Node) error {
	s, err := yamlString("Time", node)
	if err != nil {
		return err
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Time) MarshalText() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Time) UnmarshalText(text []byte) error {
	parsed, err := ParseTime(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func appendTime(buf []byte, t Time) []byte {
	buf = appendPadded(buf, t.Hour, 2)
	buf = append(buf, ':')
	buf = appendPadded(buf, t.Minute, 2)
	buf = append(buf, ':')
	buf = appendPadded(buf, t.Second, 2)
	return AppendFraction(buf, t.Millisecond*1_000_000+t.Microsecond*1_000+t.Nanosecond)
}

// AppendFraction appends "." and the nine-digit fraction ns with trailing
// zeros trimmed. Nothing is appended when ns is zero.
func AppendFraction(buf []byte, ns int) []byte {
	if ns == 0 {
		return buf
	}
	digits := appendPadded(nil, ns, 9)
	end := len(digits)
	for end > 0 && digits[end-1] == '0' {
		end--
	}
	buf = append(buf, '.')
	return append(buf, digits[:end]...)
}

var _ model.Model = (*Time)(nil)
