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
	"dirpx.dev/dxtime/dxcore/model/policy"
)

// borrowModulus[i] is the number of component i+1 units in one component
// i unit, for the clock components Days..Nanoseconds.
var borrowModulus = [10]int64{4: 24, 5: 60, 6: 60, 7: 1000, 8: 1000, 9: 1000}

// Add returns a + b.
//
// Components are summed and then made sign-consistent: clock components
// that disagree with the overall sign borrow from the next larger unit.
// Months, weeks and days cannot borrow, so adding {days: 1} to
// {days: -2, hours: 1} is fine while adding {months: 1} to {days: -1} fails
// with a *errors.ValidationError. The result is then passed through
// Regulate with overflow.
func Add(a, b Duration, overflow policy.Overflow) (Duration, error) {
	if err := a.Validate(); err != nil {
		return Duration{}, err
	}
	if err := b.Validate(); err != nil {
		return Duration{}, err
	}
	fa, fb := a.fields(), b.fields()
	var sum [10]int64
	for i := range sum {
		if mathx.AddOverflows(fa[i], fb[i]) {
			return Duration{}, overflowError(i)
		}
		sum[i] = fa[i] + fb[i]
	}

	sign := int64(fromFields(sum).Sign())
	if sign < 0 {
		for i := range sum {
			if sum[i] == -1<<63 {
				return Duration{}, overflowError(i)
			}
			sum[i] = -sum[i]
		}
	}

	for i := 9; i > 3; i-- {
		if sum[i] >= 0 {
			continue
		}
		c := mathx.FloorDiv(sum[i], borrowModulus[i])
		if mathx.AddOverflows(sum[i-1], c) {
			return Duration{}, overflowError(i - 1)
		}
		sum[i-1] += c
		sum[i] = mathx.Mod(sum[i], borrowModulus[i])
	}
	for i := 1; i <= 3; i++ {
		if sum[i] < 0 {
			return Duration{}, &errors.ValidationError{Type: "Duration", Field: fieldNames[i], Reason: "mixed-sign values not allowed", Value: sum[i] * sign}
		}
	}

	if sign < 0 {
		for i := range sum {
			sum[i] = -sum[i]
		}
	}
	return Regulate(fromFields(sum), overflow)
}

// Subtract returns a - b.
func Subtract(a, b Duration, overflow policy.Overflow) (Duration, error) {
	if err := b.Validate(); err != nil {
		return Duration{}, err
	}
	return Add(a, b.Negated(), overflow)
}

// Regulate checks d for mixed signs. Under policy.Balance the day and clock
// components are additionally balanced with Days as the largest unit;
// calendar components are left alone. Constrain and Reject return d
// unchanged.
func Regulate(d Duration, overflow policy.Overflow) (Duration, error) {
	if err := overflow.Validate(); err != nil {
		return Duration{}, err
	}
	if err := d.Validate(); err != nil {
		return Duration{}, err
	}
	if overflow != policy.Balance {
		return d, nil
	}
	b, err := Balance(d.Days, d.Hours, d.Minutes, d.Seconds, d.Milliseconds, d.Microseconds, d.Nanoseconds, policy.Days)
	if err != nil {
		return Duration{}, err
	}
	b.Years, b.Months, b.Weeks = d.Years, d.Months, d.Weeks
	return b, nil
}

// Balance folds the day and clock components into a duration whose largest
// non-zero component is at most largest. Every smaller component ends up
// within its natural modulus and all components carry the sign of the
// total.
//
// Days are treated as 24 hours. When largest is Years, Months or Weeks the
// result is balanced up to Days, since those units have no fixed length.
// Arithmetic is exact; a result component that does not fit int64 is
// reported as a *errors.ValidationError.
func Balance(days, hours, minutes, seconds, milliseconds, microseconds, nanoseconds int64, largest policy.Unit) (Duration, error) {
	if err := largest.Validate(); err != nil {
		return Duration{}, err
	}
	total := TotalNanoseconds(Duration{
		Days:         days,
		Hours:        hours,
		Minutes:      minutes,
		Seconds:      seconds,
		Milliseconds: milliseconds,
		Microseconds: microseconds,
		Nanoseconds:  nanoseconds,
	})
	return balanceNanoseconds(total, largest)
}

// balanceNanoseconds splits total into the components Days..Nanoseconds,
// starting at largest.
func balanceNanoseconds(total *big.Int, largest policy.Unit) (Duration, error) {
	if largest.Calendar() {
		largest = policy.Days
	}
	sign := total.Sign()
	rem := new(big.Int).Abs(total)

	var f [10]int64
	q := new(big.Int)
	for u := largest; u <= policy.Nanoseconds; u++ {
		q.DivMod(rem, big.NewInt(u.Nanoseconds()), rem)
		v, ok := mathx.Big64(q)
		if !ok {
			return Duration{}, overflowError(int(u))
		}
		f[u] = v
	}
	if sign < 0 {
		for i := range f {
			f[i] = -f[i]
		}
	}
	return fromFields(f), nil
}

// TotalNanoseconds returns the length of the day and clock components of d
// in nanoseconds, counting a day as 24 hours. Years, months and weeks are
// ignored.
func TotalNanoseconds(d Duration) *big.Int {
	total := new(big.Int)
	f := d.fields()
	for u := policy.Days; u <= policy.Nanoseconds; u++ {
		total.Add(total, new(big.Int).Mul(big.NewInt(f[u]), big.NewInt(u.Nanoseconds())))
	}
	return total
}

func overflowError(field int) error {
	return &errors.ValidationError{Type: "Duration", Field: fieldNames[field], Reason: "arithmetic overflow"}
}
