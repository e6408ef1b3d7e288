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

// Package civil implements wall-clock dates and times in the proleptic ISO
// 8601 calendar, together with the field balancing and regulation rules
// every higher-level temporal operation is built on.
//
// Three operations recur throughout the package:
//
//   - Balance functions carry an out-of-range field into the next larger
//     unit (day 32 of January becomes February 1st).
//   - Regulate functions apply a policy.Overflow: Reject fails on any
//     out-of-range field, Constrain clamps each field on its own.
//   - Reject*Range functions enforce the supported range, which keeps every
//     DateTime within one day of an instant.Instant.
//
// Values are plain comparable structs. Zero-valued Date and DateTime are
// not valid calendar values; the zero Time is midnight.
package civil

import (
	"encoding/json"
	"strconv"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/model"
	"dirpx.dev/dxtime/dxcore/model/policy"
	"gopkg.in/yaml.v3"
)

// Date is a calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// NewDate regulates the fields with Reject and checks the supported range.
func NewDate(year, month, day int) (Date, error) {
	d, err := RegulateDate(year, month, day, policy.Reject)
	if err != nil {
		return Date{}, err
	}
	if err := RejectDateRange(d); err != nil {
		return Date{}, err
	}
	return d, nil
}

// ParseDate reads "YYYY-MM-DD" or the expanded "±YYYYYY-MM-DD" form.
func ParseDate(s string) (Date, error) {
	p := parser{s: s}
	d, ok := p.date()
	if !ok || !p.done() {
		return Date{}, &errors.ParseError{Type: "Date", Value: s}
	}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// CompareDates returns -1, 0 or +1 as a is before, equal to, or after b.
func CompareDates(a, b Date) int {
	switch {
	case a.Year != b.Year:
		return cmpInt(a.Year, b.Year)
	case a.Month != b.Month:
		return cmpInt(a.Month, b.Month)
	default:
		return cmpInt(a.Day, b.Day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// EpochDays returns the number of days between 1970-01-01 and d.
func (d Date) EpochDays() int64 { return EpochDays(d.Year, d.Month, d.Day) }

// DayOfWeek returns 1 (Monday) through 7 (Sunday).
func (d Date) DayOfWeek() int { return DayOfWeek(d.Year, d.Month, d.Day) }

// DayOfYear returns the ordinal day within the year.
func (d Date) DayOfYear() int { return DayOfYear(d.Year, d.Month, d.Day) }

// WeekOfYear returns the ISO week number.
func (d Date) WeekOfYear() int { return WeekOfYear(d.Year, d.Month, d.Day) }

// InLeapYear reports whether d's year has 366 days.
func (d Date) InLeapYear() bool { return LeapYear(d.Year) }

// Validate checks the field bounds and the supported range.
func (d Date) Validate() error {
	if _, err := RegulateDate(d.Year, d.Month, d.Day, policy.Reject); err != nil {
		return err
	}
	return RejectDateRange(d)
}

// TypeName returns "Date".
func (d Date) TypeName() string { return "Date" }

// IsZero reports whether every field is zero.
func (d Date) IsZero() bool { return d == Date{} }

// String returns the ISO 8601 form. Years outside 0..9999 use the
// six-digit signed form.
func (d Date) String() string {
	buf := make([]byte, 0, 17)
	return string(appendDate(buf, d))
}

// Redacted returns String.
func (d Date) Redacted() string { return d.String() }

// MarshalJSON encodes d as its ISO string.
func (d Date) MarshalJSON() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes an ISO date string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := jsonString("Date", data)
	if err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML encodes d as its ISO string.
func (d Date) MarshalYAML() (any, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d.String(), nil
}

// UnmarshalYAML decodes an ISO date scalar.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	s, err := yamlString("Date", node)
	if err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func appendDate(buf []byte, d Date) []byte {
	buf = appendYear(buf, d.Year)
	buf = append(buf, '-')
	buf = appendPadded(buf, d.Month, 2)
	buf = append(buf, '-')
	return appendPadded(buf, d.Day, 2)
}

func appendYear(buf []byte, year int) []byte {
	if year >= 0 && year <= 9999 {
		return appendPadded(buf, year, 4)
	}
	if year < 0 {
		buf = append(buf, '-')
		year = -year
	} else {
		buf = append(buf, '+')
	}
	return appendPadded(buf, year, 6)
}

func appendPadded(buf []byte, v, width int) []byte {
	s := strconv.Itoa(v)
	for i := len(s); i < width; i++ {
		buf = append(buf, '0')
	}
	return append(buf, s...)
}

func jsonString(typ string, data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", &errors.UnmarshalError{Type: typ, Data: data, Reason: err.Error()}
	}
	return s, nil
}

func yamlString(typ string, node *yaml.Node) (string, error) {
	var s string
	if err := node.Decode(&s); err != nil {
		return "", &errors.UnmarshalError{Type: typ, Data: []byte(node.Value), Reason: err.Error()}
	}
	return s, nil
}

var _ model.Model = (*Date)(nil)
