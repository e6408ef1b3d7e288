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

// Package duration implements Duration, a span of time in mixed calendar
// and clock units, and the engine that adds, balances, differences and
// rounds durations.
//
// A Duration holds ten signed components. All non-zero components share
// one sign, so a duration is either zero, forward or backward; mixed signs
// are rejected everywhere. Years, months and weeks have no fixed length:
// operations that must convert them to days take an anchor date and a
// Calendar.
package duration

import (
	"encoding/json"
	"math/big"
	"strconv"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Duration is a signed span of time. The zero value is the empty duration.
type Duration struct {
	Years        int64
	Months       int64
	Weeks        int64
	Days         int64
	Hours        int64
	Minutes      int64
	Seconds      int64
	Milliseconds int64
	Microseconds int64
	Nanoseconds  int64
}

// New builds a duration and rejects mixed signs.
func New(years, months, weeks, days, hours, minutes, seconds, milliseconds, microseconds, nanoseconds int64) (Duration, error) {
	d := Duration{years, months, weeks, days, hours, minutes, seconds, milliseconds, microseconds, nanoseconds}
	if err := d.Validate(); err != nil {
		return Duration{}, err
	}
	return d, nil
}

// fields returns the components from Years to Nanoseconds.
func (d Duration) fields() [10]int64 {
	return [10]int64{d.Years, d.Months, d.Weeks, d.Days, d.Hours, d.Minutes, d.Seconds, d.Milliseconds, d.Microseconds, d.Nanoseconds}
}

func fromFields(f [10]int64) Duration {
	return Duration{f[0], f[1], f[2], f[3], f[4], f[5], f[6], f[7], f[8], f[9]}
}

var fieldNames = [10]string{"Years", "Months", "Weeks", "Days", "Hours", "Minutes", "Seconds", "Milliseconds", "Microseconds", "Nanoseconds"}

// Sign returns the sign of the first non-zero component, or 0.
func (d Duration) Sign() int {
	for _, v := range d.fields() {
		switch {
		case v < 0:
			return -1
		case v > 0:
			return 1
		}
	}
	return 0
}

// Negated returns d with every component negated.
func (d Duration) Negated() Duration {
	f := d.fields()
	for i := range f {
		f[i] = -f[i]
	}
	return fromFields(f)
}

// Abs returns d with a non-negative sign.
func (d Duration) Abs() Duration {
	if d.Sign() < 0 {
		return d.Negated()
	}
	return d
}

// Validate rejects mixed signs and components equal to math.MinInt64,
// which cannot be negated.
func (d Duration) Validate() error {
	sign := d.Sign()
	for i, v := range d.fields() {
		if v == -1<<63 {
			return &errors.ValidationError{Type: "Duration", Field: fieldNames[i], Reason: "value out of range", Value: v}
		}
		if (v < 0 && sign > 0) || (v > 0 && sign < 0) {
			return &errors.ValidationError{Type: "Duration", Field: fieldNames[i], Reason: "mixed-sign values not allowed", Value: v}
		}
	}
	return nil
}

// TypeName returns "Duration".
func (d Duration) TypeName() string { return "Duration" }

// IsZero reports whether every component is zero.
func (d Duration) IsZero() bool { return d == Duration{} }

// Redacted returns String.
func (d Duration) Redacted() string { return d.String() }

// String returns the ISO 8601 form, for example "P1Y2M3DT4H5M6.007S" or
// "-PT1.500S". Sub-second components are carried into the seconds and
// printed in groups of three digits. The empty duration is "PT0S" and a
// mixed-sign duration is "unknown".
func (d Duration) String() string {
	if d.IsZero() {
		return "PT0S"
	}
	if d.Validate() != nil {
		return "unknown"
	}
	a := d.Abs()
	buf := make([]byte, 0, 32)
	if d.Sign() < 0 {
		buf = append(buf, '-')
	}
	buf = append(buf, 'P')
	for _, p := range []struct {
		v int64
		c byte
	}{{a.Years, 'Y'}, {a.Months, 'M'}, {a.Weeks, 'W'}, {a.Days, 'D'}} {
		if p.v != 0 {
			buf = strconv.AppendInt(buf, p.v, 10)
			buf = append(buf, p.c)
		}
	}

	var timePart []byte
	if a.Hours != 0 {
		timePart = append(strconv.AppendInt(timePart, a.Hours, 10), 'H')
	}
	if a.Minutes != 0 {
		timePart = append(strconv.AppendInt(timePart, a.Minutes, 10), 'M')
	}
	timePart = appendSeconds(timePart, a)
	if len(timePart) > 0 {
		buf = append(buf, 'T')
		buf = append(buf, timePart...)
	}
	return string(buf)
}

// appendSeconds carries the non-negative sub-second components of a into
// whole seconds and appends "s[.fff[fff[fff]]]S" when anything is left.
func appendSeconds(buf []byte, a Duration) []byte {
	us := a.Microseconds + a.Nanoseconds/1000
	ns := a.Nanoseconds % 1000
	ms := a.Milliseconds + us/1000
	us %= 1000
	secs := new(big.Int).SetInt64(a.Seconds)
	secs.Add(secs, big.NewInt(ms/1000))
	ms %= 1000

	var frac []byte
	for _, g := range []int64{ms, us, ns} {
		frac = append(frac, byte('0'+g/100), byte('0'+g/10%10), byte('0'+g%10))
	}
	switch {
	case ns != 0:
	case us != 0:
		frac = frac[:6]
	case ms != 0:
		frac = frac[:3]
	default:
		frac = nil
	}

	if secs.Sign() == 0 && frac == nil {
		return buf
	}
	buf = secs.Append(buf, 10)
	if frac != nil {
		buf = append(buf, '.')
		buf = append(buf, frac...)
	}
	return append(buf, 'S')
}

// Parse reads an ISO 8601 duration such as "P1Y2M10DT2H30M", "-P3W" or
// "PT0.000000001S". A fraction is only accepted on the seconds.
func Parse(s string) (Duration, error) {
	d, ok := parse(s)
	if !ok {
		return Duration{}, &errors.ParseError{Type: "Duration", Value: s}
	}
	if err := d.Validate(); err != nil {
		return Duration{}, err
	}
	return d, nil
}

func parse(s string) (Duration, bool) {
	var d Duration
	i := 0
	neg := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	if i >= len(s) || (s[i] != 'P' && s[i] != 'p') {
		return Duration{}, false
	}
	i++

	inTime := false
	seen := false
	// order tracks designators so each appears once and in sequence.
	order := -1
	for i < len(s) {
		if s[i] == 'T' || s[i] == 't' {
			if inTime {
				return Duration{}, false
			}
			inTime = true
			i++
			if i == len(s) {
				return Duration{}, false
			}
			continue
		}
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return Duration{}, false
		}
		v, err := strconv.ParseInt(s[start:i], 10, 64)
		if err != nil {
			return Duration{}, false
		}

		frac, fracDigits := int64(0), 0
		if i < len(s) && (s[i] == '.' || s[i] == ',') {
			i++
			for i < len(s) && s[i] >= '0' && s[i] <= '9' {
				if fracDigits == 9 {
					return Duration{}, false
				}
				frac = frac*10 + int64(s[i]-'0')
				fracDigits++
				i++
			}
			if fracDigits == 0 {
				return Duration{}, false
			}
		}
		if i == len(s) {
			return Duration{}, false
		}

		pos := designator(s[i], inTime)
		if pos <= order || (fracDigits > 0 && pos != 6) {
			return Duration{}, false
		}
		order = pos
		i++
		seen = true

		switch pos {
		case 0:
			d.Years = v
		case 1:
			d.Months = v
		case 2:
			d.Weeks = v
		case 3:
			d.Days = v
		case 4:
			d.Hours = v
		case 5:
			d.Minutes = v
		case 6:
			d.Seconds = v
			for ; fracDigits < 9; fracDigits++ {
				frac *= 10
			}
			d.Milliseconds = frac / 1_000_000
			d.Microseconds = frac / 1_000 % 1_000
			d.Nanoseconds = frac % 1_000
		}
	}
	if !seen {
		return Duration{}, false
	}
	if neg {
		d = d.Negated()
	}
	return d, true
}

// designator maps a unit letter to its component index, or -1.
func designator(c byte, inTime bool) int {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if inTime {
		switch c {
		case 'H':
			return 4
		case 'M':
			return 5
		case 'S':
			return 6
		}
		return -1
	}
	switch c {
	case 'Y':
		return 0
	case 'M':
		return 1
	case 'W':
		return 2
	case 'D':
		return 3
	}
	return -1
}

// MarshalJSON encodes d as its ISO string.
func (d Duration) MarshalJSON() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes an ISO duration string.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Duration", Data: data, Reason: err.Error()}
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML encodes d as its ISO string.
func (d Duration) MarshalYAML() (any, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d.String(), nil
}

// UnmarshalYAML decodes an ISO duration scalar.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Duration", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ model.Model = (*Duration)(nil)
