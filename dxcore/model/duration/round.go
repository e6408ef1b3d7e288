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

package duration

import (
	"math/big"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/internal/mathx"
	"dirpx.dev/dxtime/dxcore/model/civil"
	"dirpx.dev/dxtime/dxcore/model/policy"
	"dirpx.dev/dxtime/dxcore/model/rounding"
)

// Calendar is the date capability the duration engine needs from a
// calendar system. The calendar package provides the ISO implementation.
type Calendar interface {
	// ID returns the calendar identifier, for example "iso8601".
	ID() string

	// DateFromFields builds a date from calendar fields, regulating them
	// with overflow.
	DateFromFields(year, month, day int, overflow policy.Overflow) (civil.Date, error)

	// DateAdd adds the calendar and day components of d to date.
	DateAdd(date civil.Date, d Duration, overflow policy.Overflow) (civil.Date, error)

	// DateSubtract subtracts the calendar and day components of d from date.
	DateSubtract(date civil.Date, d Duration, overflow policy.Overflow) (civil.Date, error)

	// DateDifference returns b - a in units no larger than largest.
	DateDifference(a, b civil.Date, largest policy.Unit) (Duration, error)

	DaysInMonth(date civil.Date) int
	DaysInYear(date civil.Date) int
	DaysInWeek(date civil.Date) int
}

// Anchor is the reference point for rounding calendar units. Years, months
// and weeks are measured in days around DateTime using Calendar.
type Anchor struct {
	DateTime civil.DateTime
	Calendar Calendar
}

// Options configures Round.
type Options struct {
	// Unit is the smallest unit kept in the result.
	Unit policy.Unit

	// Increment is the rounding step in Unit. Zero means 1.
	Increment int64

	Mode policy.RoundingMode

	// RelativeTo is required when Unit is Years, Months or Weeks.
	RelativeTo *Anchor
}

// Round rounds d to a multiple of opts.Increment of opts.Unit. Every
// component smaller than the unit is folded into it and then cleared;
// larger components are kept as they are.
//
// Day and clock units are rounded exactly with a day counted as 24 hours.
// Calendar units have no fixed length, so they are measured against the
// anchor: the weeks and months below the target unit are converted to days
// by stepping back from the anchor, and the fractional part is divided by
// the length of the unit immediately before the anchor (for example the
// number of days in the year before it). Calendar units without an anchor
// fail with a *errors.ValidationError.
func Round(d Duration, opts Options) (Duration, error) {
	if err := d.Validate(); err != nil {
		return Duration{}, err
	}
	if err := opts.Unit.Validate(); err != nil {
		return Duration{}, err
	}
	if err := opts.Mode.Validate(); err != nil {
		return Duration{}, err
	}
	inc := opts.Increment
	if inc == 0 {
		inc = 1
	}
	if err := rounding.ValidateIncrement(inc, opts.Unit.Modulus(), false); err != nil {
		return Duration{}, err
	}

	var (
		out Duration
		err error
	)
	switch opts.Unit {
	case policy.Years, policy.Months, policy.Weeks:
		out, err = roundCalendar(d, opts.Unit, inc, opts.Mode, opts.RelativeTo)
	default:
		out, err = roundFixed(d, opts.Unit, inc, opts.Mode)
	}
	if err != nil {
		return Duration{}, err
	}
	if err := out.Validate(); err != nil {
		return Duration{}, err
	}
	return out, nil
}

// roundFixed rounds to Days or a clock unit.
func roundFixed(d Duration, unit policy.Unit, inc int64, mode policy.RoundingMode) (Duration, error) {
	f := d.fields()
	num := new(big.Int)
	for u := unit; u <= policy.Nanoseconds; u++ {
		num.Add(num, new(big.Int).Mul(big.NewInt(f[u]), big.NewInt(u.Nanoseconds())))
		f[u] = 0
	}
	r, err := rounding.Rational(num, big.NewInt(unit.Nanoseconds()), big.NewInt(inc), mode)
	if err != nil {
		return Duration{}, err
	}
	v, ok := mathx.Big64(r)
	if !ok {
		return Duration{}, overflowError(int(unit))
	}
	f[unit] = v
	return fromFields(f), nil
}

// roundCalendar rounds to Years, Months or Weeks relative to an anchor.
func roundCalendar(d Duration, unit policy.Unit, inc int64, mode policy.RoundingMode, anchor *Anchor) (Duration, error) {
	if anchor == nil {
		return Duration{}, &errors.ValidationError{Type: "Duration", Field: "RelativeTo", Reason: "a starting point is required for " + unit.String() + " rounding"}
	}
	cal := anchor.Calendar
	if cal == nil {
		return Duration{}, &errors.ValidationError{Type: "Duration", Field: "RelativeTo", Reason: "anchor has no calendar"}
	}
	at := anchor.DateTime.Date

	// days holds the day count below the target unit, in nanoseconds.
	days := big.NewInt(d.Days)
	switch unit {
	case policy.Years:
		extra, err := daysBetweenSteps(cal, at, Duration{Years: d.Years, Months: d.Months, Weeks: d.Weeks}, Duration{Years: d.Years})
		if err != nil {
			return Duration{}, err
		}
		days.Add(days, big.NewInt(extra))
	case policy.Months:
		extra, err := daysBetweenSteps(cal, at, Duration{Years: d.Years, Months: d.Months, Weeks: d.Weeks}, Duration{Years: d.Years, Months: d.Months})
		if err != nil {
			return Duration{}, err
		}
		days.Add(days, big.NewInt(extra))
	}
	frac := days.Mul(days, big.NewInt(policy.Days.Nanoseconds()))
	frac.Add(frac, TotalNanoseconds(Duration{
		Hours:        d.Hours,
		Minutes:      d.Minutes,
		Seconds:      d.Seconds,
		Milliseconds: d.Milliseconds,
		Microseconds: d.Microseconds,
		Nanoseconds:  d.Nanoseconds,
	}))

	var (
		step  Duration
		whole int64
	)
	switch unit {
	case policy.Years:
		step, whole = Duration{Years: 1}, d.Years
	case policy.Months:
		step, whole = Duration{Months: 1}, d.Months
	default:
		step, whole = Duration{Weeks: 1}, d.Weeks
	}
	before, err := cal.DateSubtract(at, step, policy.Constrain)
	if err != nil {
		return Duration{}, err
	}
	var length int
	switch unit {
	case policy.Years:
		length = cal.DaysInYear(before)
	case policy.Months:
		length = cal.DaysInMonth(before)
	default:
		length = cal.DaysInWeek(before)
	}

	den := big.NewInt(int64(length))
	den.Mul(den, big.NewInt(policy.Days.Nanoseconds()))
	num := new(big.Int).Mul(big.NewInt(whole), den)
	num.Add(num, frac)

	r, err := rounding.Rational(num, den, big.NewInt(inc), mode)
	if err != nil {
		return Duration{}, err
	}
	v, ok := mathx.Big64(r)
	if !ok {
		return Duration{}, overflowError(int(unit))
	}

	out := Duration{Years: d.Years, Months: d.Months, Weeks: d.Weeks}
	f := out.fields()
	f[unit] = v
	for u := unit + 1; u <= policy.Weeks; u++ {
		f[u] = 0
	}
	return fromFields(f), nil
}

// daysBetweenSteps returns the number of days from at - longer to
// at - shorter.
func daysBetweenSteps(cal Calendar, at civil.Date, longer, shorter Duration) (int64, error) {
	from, err := cal.DateSubtract(at, longer, policy.Constrain)
	if err != nil {
		return 0, err
	}
	to, err := cal.DateSubtract(at, shorter, policy.Constrain)
	if err != nil {
		return 0, err
	}
	diff, err := cal.DateDifference(from, to, policy.Days)
	if err != nil {
		return 0, err
	}
	return diff.Days, nil
}
