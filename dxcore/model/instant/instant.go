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

// Package instant implements Instant, an exact point on the time line
// counted in nanoseconds since 1970-01-01T00:00:00Z.
//
// Nanosecond counts across the supported range (plus or minus 10^8 days)
// need 74 bits, so Instant is backed by a *big.Int. The integer is never
// shared: constructors copy their input and accessors return copies, which
// keeps Instant an immutable value type that may be passed around freely
// and used concurrently.
//
// The text form of an Instant is its decimal nanosecond count, for example
// "1615712400000000000". Rendering an instant as a calendar date needs a
// time zone and belongs to the civil and tz packages.
package instant

import (
	"encoding/json"
	"math/big"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/internal/mathx"
	"dirpx.dev/dxtime/dxcore/model"
	"dirpx.dev/dxtime/dxcore/model/policy"
	"dirpx.dev/dxtime/dxcore/model/rounding"
	"gopkg.in/yaml.v3"
)

// Nanosecond multiples used throughout the module.
const (
	NanosecondsPerSecond = 1_000_000_000
	NanosecondsPerMinute = 60 * NanosecondsPerSecond
	NanosecondsPerHour   = 60 * NanosecondsPerMinute
	NanosecondsPerDay    = 24 * NanosecondsPerHour

	// MaxDays is the number of days on either side of the epoch covered by
	// the instant range.
	MaxDays = 100_000_000
)

var (
	// MaxNanoseconds is the largest representable epoch nanosecond count,
	// 8.64e21 (275760-09-13T00:00:00Z).
	MaxNanoseconds = new(big.Int).Mul(big.NewInt(MaxDays), big.NewInt(NanosecondsPerDay))

	// MinNanoseconds is the smallest representable epoch nanosecond count,
	// -8.64e21 (-271821-04-20T00:00:00Z).
	MinNanoseconds = new(big.Int).Neg(MaxNanoseconds)

	bigDay = big.NewInt(NanosecondsPerDay)
)

// Instant is an exact point in time. The zero value is the Unix epoch.
type Instant struct {
	ns *big.Int
}

// Epoch is 1970-01-01T00:00:00Z.
var Epoch = Instant{}

// Min and Max are the range bounds as instants.
var (
	Min = Instant{ns: MinNanoseconds}
	Max = Instant{ns: MaxNanoseconds}
)

// CheckRange returns a *errors.ValidationError when ns lies outside
// [MinNanoseconds, MaxNanoseconds].
func CheckRange(ns *big.Int) error {
	if ns.Cmp(MinNanoseconds) < 0 || ns.Cmp(MaxNanoseconds) > 0 {
		return &errors.ValidationError{
			Type:   "Instant",
			Reason: "epoch nanoseconds out of range: |ns| <= " + MaxNanoseconds.String(),
			Value:  ns.String(),
		}
	}
	return nil
}

// New returns the instant ns nanoseconds after the epoch.
func New(ns *big.Int) (Instant, error) {
	if err := CheckRange(ns); err != nil {
		return Instant{}, err
	}
	return Instant{ns: new(big.Int).Set(ns)}, nil
}

// FromEpochNanoseconds never fails: every int64 lies inside the range.
func FromEpochNanoseconds(ns int64) Instant {
	return Instant{ns: big.NewInt(ns)}
}

// FromEpochMicroseconds scales us to nanoseconds and range-checks it.
func FromEpochMicroseconds(us int64) (Instant, error) {
	return scaled(us, 1_000)
}

// FromEpochMilliseconds scales ms to nanoseconds and range-checks it.
func FromEpochMilliseconds(ms int64) (Instant, error) {
	return scaled(ms, 1_000_000)
}

// FromEpochSeconds scales s to nanoseconds and range-checks it.
func FromEpochSeconds(s int64) (Instant, error) {
	return scaled(s, NanosecondsPerSecond)
}

func scaled(v, factor int64) (Instant, error) {
	ns := new(big.Int).Mul(big.NewInt(v), big.NewInt(factor))
	if err := CheckRange(ns); err != nil {
		return Instant{}, err
	}
	return Instant{ns: ns}, nil
}

// Parse reads the decimal nanosecond form produced by String.
func Parse(s string) (Instant, error) {
	ns, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Instant{}, &errors.ParseError{Type: "Instant", Value: s}
	}
	if err := CheckRange(ns); err != nil {
		return Instant{}, err
	}
	return Instant{ns: ns}, nil
}

func (i Instant) value() *big.Int {
	if i.ns == nil {
		return new(big.Int)
	}
	return i.ns
}

// EpochNanoseconds returns a copy of the nanosecond count.
func (i Instant) EpochNanoseconds() *big.Int {
	return new(big.Int).Set(i.value())
}

// EpochMicroseconds returns the count in microseconds, rounded toward
// negative infinity so that pre-epoch instants truncate consistently.
func (i Instant) EpochMicroseconds() int64 {
	return mathx.BigFloorDiv(i.value(), big.NewInt(1_000)).Int64()
}

// EpochMilliseconds returns the count in milliseconds, floored.
func (i Instant) EpochMilliseconds() int64 {
	return mathx.BigFloorDiv(i.value(), big.NewInt(1_000_000)).Int64()
}

// EpochSeconds returns the count in seconds, floored.
func (i Instant) EpochSeconds() int64 {
	return mathx.BigFloorDiv(i.value(), big.NewInt(NanosecondsPerSecond)).Int64()
}

// Add returns i shifted by ns nanoseconds, or a *errors.ValidationError if
// the result leaves the range.
func (i Instant) Add(ns *big.Int) (Instant, error) {
	return New(new(big.Int).Add(i.value(), ns))
}

// AddNanoseconds is Add for an int64 offset.
func (i Instant) AddNanoseconds(ns int64) (Instant, error) {
	return i.Add(big.NewInt(ns))
}

// Sub returns i - j in nanoseconds.
func (i Instant) Sub(j Instant) *big.Int {
	return new(big.Int).Sub(i.value(), j.value())
}

// Compare returns -1, 0 or +1 as a is before, equal to, or after b.
func Compare(a, b Instant) int {
	return a.value().Cmp(b.value())
}

// Equal reports whether i and j denote the same nanosecond.
func (i Instant) Equal(j Instant) bool { return Compare(i, j) == 0 }

// Before reports whether i is strictly earlier than j.
func (i Instant) Before(j Instant) bool { return Compare(i, j) < 0 }

// After reports whether i is strictly later than j.
func (i Instant) After(j Instant) bool { return Compare(i, j) > 0 }

// Round rounds i to a multiple of increment units, measured from UTC
// midnight of its day.
//
// unit must be Hours or smaller and increment must divide one day evenly
// (24 hours, 1440 minutes, 86400 seconds and so on). The time-of-day
// remainder is taken with a non-negative modulo so that instants before
// the epoch round the same way as later ones.
func (i Instant) Round(unit policy.Unit, increment int64, mode policy.RoundingMode) (Instant, error) {
	if unit.Larger(policy.Hours) || !unit.Valid() {
		return Instant{}, &errors.ValidationError{Type: "Instant", Field: "Unit", Reason: "must be hours or smaller", Value: unit.String()}
	}
	unitNs := unit.Nanoseconds()
	if err := rounding.ValidateIncrement(increment, NanosecondsPerDay/unitNs, true); err != nil {
		return Instant{}, err
	}

	ns := i.value()
	remainder := mathx.BigMod(ns, bigDay)
	wholeDays := new(big.Int).Sub(ns, remainder)
	rounded, err := rounding.BigToIncrement(remainder, big.NewInt(increment*unitNs), mode)
	if err != nil {
		return Instant{}, err
	}
	return New(wholeDays.Add(wholeDays, rounded))
}

// Validate checks the range invariant. It only fails for instants built
// by decoding untrusted input.
func (i Instant) Validate() error {
	return CheckRange(i.value())
}

// TypeName returns "Instant".
func (i Instant) TypeName() string { return "Instant" }

// IsZero reports whether i is the epoch.
func (i Instant) IsZero() bool { return i.value().Sign() == 0 }

// String returns the decimal nanosecond count.
func (i Instant) String() string { return i.value().String() }

// Redacted returns String.
func (i Instant) Redacted() string { return i.String() }

// MarshalJSON encodes i as a JSON string holding its decimal nanoseconds;
// JSON numbers cannot carry 74-bit integers portably.
func (i Instant) MarshalJSON() ([]byte, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(i.String())
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (i *Instant) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Instant", Data: data, Reason: err.Error()}
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// MarshalYAML encodes i as its decimal string.
func (i Instant) MarshalYAML() (any, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	return i.String(), nil
}

// UnmarshalYAML decodes a scalar nanosecond count.
func (i *Instant) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Instant", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (i Instant) MarshalText() ([]byte, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Instant) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

var _ model.Model = (*Instant)(nil)
