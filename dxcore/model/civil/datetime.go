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
	"math/big"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/internal/mathx"
	"dirpx.dev/dxtime/dxcore/model"
	"dirpx.dev/dxtime/dxcore/model/instant"
	"dirpx.dev/dxtime/dxcore/model/policy"
	"gopkg.in/yaml.v3"
)

// DateTime is a calendar date paired with a wall-clock time. It names no
// time zone; converting it to an instant interprets it as UTC unless a
// zone resolver is involved.
type DateTime struct {
	Date
	Time
}

// NewDateTime regulates every field with Reject and checks the supported
// range.
func NewDateTime(year, month, day, hour, minute, second, millisecond, microsecond, nanosecond int) (DateTime, error) {
	dt, err := RegulateDateTime(year, month, day, hour, minute, second, millisecond, microsecond, nanosecond, policy.Reject)
	if err != nil {
		return DateTime{}, err
	}
	if err := RejectDateTimeRange(dt); err != nil {
		return DateTime{}, err
	}
	return dt, nil
}

// ParseDateTime reads "YYYY-MM-DDTHH:MM[:SS[.fffffffff]]". A bare date is
// accepted and means midnight.
func ParseDateTime(s string) (DateTime, error) {
	p := parser{s: s}
	dt, ok := p.dateTime()
	if !ok || !p.done() {
		return DateTime{}, &errors.ParseError{Type: "DateTime", Value: s}
	}
	if err := dt.Validate(); err != nil {
		return DateTime{}, err
	}
	return dt, nil
}

// CompareDateTimes orders by date, then by time.
func CompareDateTimes(a, b DateTime) int {
	if c := CompareDates(a.Date, b.Date); c != 0 {
		return c
	}
	return CompareTimes(a.Time, b.Time)
}

// EpochNanoseconds interprets dt as UTC and returns the nanoseconds since
// the epoch. The fields need not be balanced: the result is linear in the
// day and in every time field.
func EpochNanoseconds(dt DateTime) *big.Int {
	ns := big.NewInt(EpochDays(dt.Year, dt.Month, dt.Day))
	ns.Mul(ns, big.NewInt(instant.NanosecondsPerDay))
	return ns.Add(ns, timeNanoseconds(dt.Time))
}

// timeNanoseconds is Time.Nanoseconds without the int64 overflow risk of
// unbalanced fields.
func timeNanoseconds(t Time) *big.Int {
	ns := big.NewInt(int64(t.Hour))
	ns.Mul(ns, big.NewInt(60)).Add(ns, big.NewInt(int64(t.Minute)))
	ns.Mul(ns, big.NewInt(60)).Add(ns, big.NewInt(int64(t.Second)))
	ns.Mul(ns, big.NewInt(1000)).Add(ns, big.NewInt(int64(t.Millisecond)))
	ns.Mul(ns, big.NewInt(1000)).Add(ns, big.NewInt(int64(t.Microsecond)))
	return ns.Mul(ns, big.NewInt(1000)).Add(ns, big.NewInt(int64(t.Nanosecond)))
}

// ToInstant interprets dt as UTC. DateTimes within a day of the range
// bounds are valid but have no instant; they yield a
// *errors.ValidationError.
func ToInstant(dt DateTime) (instant.Instant, error) {
	return instant.New(EpochNanoseconds(dt))
}

// FromInstant returns the UTC wall-clock reading of i.
func FromInstant(i instant.Instant) DateTime {
	return FromEpochNanoseconds(i.EpochNanoseconds())
}

// FromEpochNanoseconds is FromInstant for a raw nanosecond count, which
// may lie outside the instant range. Local readings of instants near the
// range bounds need it.
func FromEpochNanoseconds(ns *big.Int) DateTime {
	day := big.NewInt(instant.NanosecondsPerDay)
	rem := mathx.BigMod(ns, day)
	days := mathx.BigFloorDiv(ns, day).Int64()
	_, t, _ := BalanceTime(0, 0, 0, 0, 0, rem.Int64())
	return DateTime{Date: DateFromEpochDays(days), Time: t}
}

// FromEpochSeconds returns the UTC wall-clock reading of a Unix time. The
// result is outside the supported range for inputs beyond
// ±8.64e12 seconds.
func FromEpochSeconds(s int64) DateTime {
	days := mathx.FloorDiv(s, 86400)
	rem := mathx.Mod(s, 86400)
	return DateTime{
		Date: DateFromEpochDays(days),
		Time: Time{Hour: int(rem / 3600), Minute: int(rem / 60 % 60), Second: int(rem % 60)},
	}
}

// WithTime returns dt with its time replaced.
func (dt DateTime) WithTime(t Time) DateTime {
	return DateTime{Date: dt.Date, Time: t}
}

// Validate checks the field bounds and the supported range.
func (dt DateTime) Validate() error {
	if err := dt.Time.Validate(); err != nil {
		return err
	}
	if _, err := RegulateDate(dt.Year, dt.Month, dt.Day, policy.Reject); err != nil {
		return err
	}
	return RejectDateTimeRange(dt)
}

// TypeName returns "DateTime".
func (dt DateTime) TypeName() string { return "DateTime" }

// IsZero reports whether every field is zero.
func (dt DateTime) IsZero() bool { return dt == DateTime{} }

// String returns "YYYY-MM-DDTHH:MM:SS[.fffffffff]".
func (dt DateTime) String() string {
	buf := appendDate(make([]byte, 0, 36), dt.Date)
	buf = append(buf, 'T')
	return string(appendTime(buf, dt.Time))
}

// Redacted returns String.
func (dt DateTime) Redacted() string { return dt.String() }

// MarshalJSON encodes dt as its ISO string.
func (dt DateTime) MarshalJSON() ([]byte, error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(dt.String())
}

// UnmarshalJSON decodes an ISO date-time string.
func (dt *DateTime) UnmarshalJSON(data []byte) error {
	s, err := jsonString("DateTime", data)
	if err != nil {
		return err
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}

// MarshalYAML encodes dt as its ISO string.
func (dt DateTime) MarshalYAML() (any, error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	return dt.String(), nil
}

// UnmarshalYAML decodes an ISO date-time scalar.
func (dt *DateTime) UnmarshalYAML(node *yaml.Node) error {
	s, err := yamlString("DateTime", node)
	if err != nil {
		return err
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (dt DateTime) MarshalText() ([]byte, error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	return []byte(dt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (dt *DateTime) UnmarshalText(text []byte) error {
	parsed, err := ParseDateTime(string(text))
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}

var _ model.Model = (*DateTime)(nil)
