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
	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/internal/mathx"
	"dirpx.dev/dxtime/dxcore/model/policy"
)

// AddDate adds calendar units to d.
//
// Years and months are applied first and the resulting month's day is
// regulated with overflow (January 31st plus one month is February 28th
// under Constrain and an error under Reject). Weeks and days are added
// afterwards and balanced. The supported range is not checked.
func AddDate(d Date, years, months, weeks, days int64, overflow policy.Overflow) (Date, error) {
	year, ok := addInt(d.Year, years)
	if !ok {
		return Date{}, arithmeticOverflow("Date", "Year")
	}
	month, ok := addInt(d.Month, months)
	if !ok {
		return Date{}, arithmeticOverflow("Date", "Month")
	}
	year, month = BalanceYearMonth(year, month)
	r, err := RegulateDate(year, month, d.Day, overflow)
	if err != nil {
		return Date{}, err
	}
	delta, ok := weekDays(weeks, days)
	if !ok {
		return Date{}, arithmeticOverflow("Date", "Day")
	}
	day, ok := addInt(r.Day, delta)
	if !ok {
		return Date{}, arithmeticOverflow("Date", "Day")
	}
	return BalanceDate(r.Year, r.Month, day)
}

// SubtractDate subtracts calendar units from d. Unlike AddDate it removes
// weeks and days first and months and years last, so that subtracting a
// difference undoes adding it.
func SubtractDate(d Date, years, months, weeks, days int64, overflow policy.Overflow) (Date, error) {
	delta, ok := weekDays(weeks, days)
	if !ok || delta == mathMinInt {
		return Date{}, arithmeticOverflow("Date", "Day")
	}
	day, ok := addInt(d.Day, -delta)
	if !ok {
		return Date{}, arithmeticOverflow("Date", "Day")
	}
	b, err := BalanceDate(d.Year, d.Month, day)
	if err != nil {
		return Date{}, err
	}
	month, ok := addInt(b.Month, -months)
	if !ok || months == mathMinInt {
		return Date{}, arithmeticOverflow("Date", "Month")
	}
	year, ok := addInt(b.Year, -years)
	if !ok || years == mathMinInt {
		return Date{}, arithmeticOverflow("Date", "Year")
	}
	year, month = BalanceYearMonth(year, month)
	return RegulateDate(year, month, b.Day, overflow)
}

// AddTime adds clock units to t and balances the result. The returned
// days is the whole-day carry.
func AddTime(t Time, hours, minutes, seconds, milliseconds, microseconds, nanoseconds int64) (int64, Time, error) {
	sums := [6]int64{int64(t.Hour), int64(t.Minute), int64(t.Second), int64(t.Millisecond), int64(t.Microsecond), int64(t.Nanosecond)}
	for i, v := range [6]int64{hours, minutes, seconds, milliseconds, microseconds, nanoseconds} {
		if mathx.AddOverflows(sums[i], v) {
			return 0, Time{}, arithmeticOverflow("Time", timeFields[i])
		}
		sums[i] += v
	}
	return BalanceTime(sums[0], sums[1], sums[2], sums[3], sums[4], sums[5])
}

// SubtractTime subtracts clock units from t and balances the result.
func SubtractTime(t Time, hours, minutes, seconds, milliseconds, microseconds, nanoseconds int64) (int64, Time, error) {
	values := [6]int64{hours, minutes, seconds, milliseconds, microseconds, nanoseconds}
	for i, v := range values {
		if v == mathMinInt {
			return 0, Time{}, arithmeticOverflow("Time", timeFields[i])
		}
		values[i] = -v
	}
	return AddTime(t, values[0], values[1], values[2], values[3], values[4], values[5])
}

var timeFields = [6]string{"Hour", "Minute", "Second", "Millisecond", "Microsecond", "Nanosecond"}

const mathMinInt = -1 << 63

func addInt(a int, b int64) (int, bool) {
	if mathx.AddOverflows(int64(a), b) {
		return 0, false
	}
	return int(int64(a) + b), true
}

// weekDays returns 7*weeks + days.
func weekDays(weeks, days int64) (int64, bool) {
	if weeks > (1<<63-1)/7 || weeks < mathMinInt/7 {
		return 0, false
	}
	if mathx.AddOverflows(7*weeks, days) {
		return 0, false
	}
	return 7*weeks + days, true
}

func arithmeticOverflow(typ, field string) error {
	return &errors.ValidationError{Type: typ, Field: field, Reason: "arithmetic overflow"}
}
