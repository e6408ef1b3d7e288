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
	"dirpx.dev/dxtime/dxcore/model"
	"dirpx.dev/dxtime/dxcore/model/civil"
	"dirpx.dev/dxtime/dxcore/model/instant"
	"dirpx.dev/dxtime/dxcore/model/policy"
	"dirpx.dev/dxtime/dxcore/model/rounding"
)

// DifferenceDate returns the ISO calendar difference b - a using units no
// larger than largest, which must be Years, Months, Weeks or Days.
//
// Months are counted from the earlier date with the day clamped to the
// target month, and the remainder is given in days:
//
//	DifferenceDate(2021-01-31, 2021-03-01, Months) // {Months: 1, Days: 1}
//
// When b is before a every component is negative.
func DifferenceDate(a, b civil.Date, largest policy.Unit) (Duration, error) {
	if err := largest.Validate(); err != nil {
		return Duration{}, err
	}
	if !largest.Calendar() && largest != policy.Days {
		return Duration{}, &errors.ValidationError{Type: "Duration", Field: "LargestUnit", Reason: "date difference needs years, months, weeks or days", Value: largest.String()}
	}

	sign := int64(civil.CompareDates(b, a))
	if sign == 0 {
		return Duration{}, nil
	}
	smaller, larger := a, b
	if sign < 0 {
		smaller, larger = b, a
	}

	var out Duration
	switch largest {
	case policy.Years, policy.Months:
		months := int64(larger.Year-smaller.Year)*12 + int64(larger.Month-smaller.Month)
		mid, err := civil.AddDate(smaller, 0, months, 0, 0, policy.Constrain)
		if err != nil {
			return Duration{}, err
		}
		if civil.CompareDates(mid, larger) > 0 {
			months--
			if mid, err = civil.AddDate(smaller, 0, months, 0, 0, policy.Constrain); err != nil {
				return Duration{}, err
			}
		}
		out.Days = larger.EpochDays() - mid.EpochDays()
		if largest == policy.Years {
			out.Years, out.Months = months/12, months%12
		} else {
			out.Months = months
		}
	case policy.Weeks:
		days := larger.EpochDays() - smaller.EpochDays()
		out.Weeks, out.Days = days/7, days%7
	default:
		out.Days = larger.EpochDays() - smaller.EpochDays()
	}
	if sign < 0 {
		out = out.Negated()
	}
	return out, nil
}

// DifferenceTime returns the clock difference b - a as a balanced duration
// of hours and smaller, plus the whole-day carry. The carry is always zero
// for two valid times; it is non-zero only when a or b hold unbalanced
// fields.
func DifferenceTime(a, b civil.Time) (int64, Duration, error) {
	f := [6]int64{
		int64(b.Hour - a.Hour),
		int64(b.Minute - a.Minute),
		int64(b.Second - a.Second),
		int64(b.Millisecond - a.Millisecond),
		int64(b.Microsecond - a.Microsecond),
		int64(b.Nanosecond - a.Nanosecond),
	}
	sign := int64(Duration{Hours: f[0], Minutes: f[1], Seconds: f[2], Milliseconds: f[3], Microseconds: f[4], Nanoseconds: f[5]}.Sign())
	for i := range f {
		f[i] *= sign
	}
	days, t, err := civil.BalanceTime(f[0], f[1], f[2], f[3], f[4], f[5])
	if err != nil {
		return 0, Duration{}, err
	}
	return days * sign, Duration{
		Hours:        int64(t.Hour) * sign,
		Minutes:      int64(t.Minute) * sign,
		Seconds:      int64(t.Second) * sign,
		Milliseconds: int64(t.Millisecond) * sign,
		Microseconds: int64(t.Microsecond) * sign,
		Nanoseconds:  int64(t.Nanosecond) * sign,
	}, nil
}

// DifferenceOptions configures DifferenceDateTime and Between.
type DifferenceOptions struct {
	// Largest is the largest unit allowed in the result.
	Largest policy.Unit

	// Smallest is the unit the result is rounded to.
	Smallest policy.Unit

	// Increment is the rounding step in Smallest. Zero means 1.
	Increment int64

	Mode policy.RoundingMode
}

// DateTimeDifferenceDefaults returns the options DifferenceDateTime uses
// when the caller only cares about smallest: the largest unit is Days, or
// smallest itself when that is a calendar unit, and rounding is an exact
// Trunc to one smallest.
func DateTimeDifferenceDefaults(smallest policy.Unit) DifferenceOptions {
	largest := policy.Days
	if smallest.Calendar() {
		largest = smallest
	}
	return DifferenceOptions{Largest: largest, Smallest: smallest, Increment: 1, Mode: policy.Trunc}
}

// InstantDifferenceDefaults returns the defaults of Between: the largest
// unit is Seconds, or smallest when that is Hours or Minutes.
func InstantDifferenceDefaults(smallest policy.Unit) DifferenceOptions {
	largest := policy.Seconds
	if smallest == policy.Hours || smallest == policy.Minutes {
		largest = smallest
	}
	return DifferenceOptions{Largest: largest, Smallest: smallest, Increment: 1, Mode: policy.Trunc}
}

func (o DifferenceOptions) validate(disallowDays bool) (int64, error) {
	if err := model.ValidateAll([]model.Value{o.Largest, o.Smallest, o.Mode}); err != nil {
		return 0, err
	}
	for _, u := range []policy.Unit{o.Largest, o.Smallest} {
		if disallowDays && (u.Calendar() || u == policy.Days) {
			return 0, &errors.ValidationError{Type: "Duration", Field: "Unit", Reason: "calendar units and days are not allowed for an instant difference", Value: u.String()}
		}
	}
	if o.Smallest.Larger(o.Largest) {
		return 0, &errors.ValidationError{Type: "Duration", Field: "LargestUnit", Reason: "largest unit cannot be smaller than smallest unit", Value: o.Largest.String()}
	}
	inc := o.Increment
	if inc == 0 {
		inc = 1
	}
	if err := rounding.ValidateIncrement(inc, o.Smallest.Modulus(), false); err != nil {
		return 0, err
	}
	return inc, nil
}

// DifferenceDateTime returns b - a for two wall-clock date-times in cal.
//
// The clock difference is computed first and its day carry folded into b.
// The calendar difference of the dates then supplies the years, months,
// weeks and days; if its sign disagrees with the remaining clock part, one
// day is exchanged for 24 hours so that the result is sign-consistent. The
// result is rounded relative to b and finally balanced up to
// opts.Largest.
func DifferenceDateTime(a, b civil.DateTime, cal Calendar, opts DifferenceOptions) (Duration, error) {
	if cal == nil {
		return Duration{}, &errors.ValidationError{Type: "Duration", Field: "Calendar", Reason: "calendar is required"}
	}
	inc, err := opts.validate(false)
	if err != nil {
		return Duration{}, err
	}

	deltaDays, clock, err := DifferenceTime(a.Time, b.Time)
	if err != nil {
		return Duration{}, err
	}
	adjusted, err := civil.BalanceDate(b.Year, b.Month, b.Day+int(deltaDays))
	if err != nil {
		return Duration{}, err
	}

	dateLargest := policy.Days
	if opts.Largest.Calendar() {
		dateLargest = opts.Largest
	}
	date, err := cal.DateDifference(a.Date, adjusted, dateLargest)
	if err != nil {
		return Duration{}, err
	}

	if ds, cs := date.Sign(), clock.Sign(); ds != 0 && cs != 0 && ds != cs {
		if adjusted, err = civil.BalanceDate(adjusted.Year, adjusted.Month, adjusted.Day-ds); err != nil {
			return Duration{}, err
		}
		if date, err = cal.DateDifference(a.Date, adjusted, dateLargest); err != nil {
			return Duration{}, err
		}
		clock.Hours += int64(24 * ds)
		if clock, err = Balance(0, clock.Hours, clock.Minutes, clock.Seconds, clock.Milliseconds, clock.Microseconds, clock.Nanoseconds, policy.Hours); err != nil {
			return Duration{}, err
		}
	}

	d := Duration{
		Years:        date.Years,
		Months:       date.Months,
		Weeks:        date.Weeks,
		Days:         date.Days,
		Hours:        clock.Hours,
		Minutes:      clock.Minutes,
		Seconds:      clock.Seconds,
		Milliseconds: clock.Milliseconds,
		Microseconds: clock.Microseconds,
		Nanoseconds:  clock.Nanoseconds,
	}
	d, err = Round(d, Options{
		Unit:       opts.Smallest,
		Increment:  inc,
		Mode:       opts.Mode,
		RelativeTo: &Anchor{DateTime: b, Calendar: cal},
	})
	if err != nil {
		return Duration{}, err
	}

	balanced, err := Balance(d.Days, d.Hours, d.Minutes, d.Seconds, d.Milliseconds, d.Microseconds, d.Nanoseconds, opts.Largest)
	if err != nil {
		return Duration{}, err
	}
	balanced.Years, balanced.Months, balanced.Weeks = d.Years, d.Months, d.Weeks
	if err := balanced.Validate(); err != nil {
		return Duration{}, err
	}
	return balanced, nil
}

// Between returns the exact time elapsed from a to b as a duration of
// hours and smaller units. Calendar units and days are rejected because an
// instant carries no calendar.
//
// The part of the difference below one day is rounded to opts.Increment
// of opts.Smallest; whole days are kept exactly and then balanced up to
// opts.Largest.
func Between(a, b instant.Instant, opts DifferenceOptions) (Duration, error) {
	inc, err := opts.validate(true)
	if err != nil {
		return Duration{}, err
	}
	diff := b.Sub(a)
	day := big.NewInt(instant.NanosecondsPerDay)
	rem := new(big.Int).Rem(diff, day)
	whole := new(big.Int).Sub(diff, rem)

	step := big.NewInt(inc * opts.Smallest.Nanoseconds())
	rounded, err := rounding.BigToIncrement(rem, step, opts.Mode)
	if err != nil {
		return Duration{}, err
	}
	return balanceNanoseconds(whole.Add(whole, rounded), opts.Largest)
}
