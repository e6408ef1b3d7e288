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
)

// BalanceTime carries out-of-range clock fields into the next larger unit
// until every field lies within its natural modulus. Carries use floor
// division, so negative fields borrow instead of producing negative
// results.
//
// The returned days is the whole-day carry out of the hour field, which
// equals floor(total nanoseconds / nanoseconds per day). An int64 overflow
// while carrying is reported as a *errors.ValidationError.
func BalanceTime(hour, minute, second, millisecond, microsecond, nanosecond int64) (int64, Time, error) {
	var ok bool
	if microsecond, ok = carry(microsecond, nanosecond, 1000); !ok {
		return 0, Time{}, arithmeticOverflow("Time", "Microsecond")
	}
	nanosecond = mathx.Mod(nanosecond, 1000)
	if millisecond, ok = carry(millisecond, microsecond, 1000); !ok {
		return 0, Time{}, arithmeticOverflow("Time", "Millisecond")
	}
	microsecond = mathx.Mod(microsecond, 1000)
	if second, ok = carry(second, millisecond, 1000); !ok {
		return 0, Time{}, arithmeticOverflow("Time", "Second")
	}
	millisecond = mathx.Mod(millisecond, 1000)
	if minute, ok = carry(minute, second, 60); !ok {
		return 0, Time{}, arithmeticOverflow("Time", "Minute")
	}
	second = mathx.Mod(second, 60)
	if hour, ok = carry(hour, minute, 60); !ok {
		return 0, Time{}, arithmeticOverflow("Time", "Hour")
	}
	minute = mathx.Mod(minute, 60)
	days := mathx.FloorDiv(hour, 24)
	hour = mathx.Mod(hour, 24)

	return days, Time{
		Hour:        int(hour),
		Minute:      int(minute),
		Second:      int(second),
		Millisecond: int(millisecond),
		Microsecond: int(microsecond),
		Nanosecond:  int(nanosecond),
	}, nil
}

// carry adds floor(lower / modulus) to upper.
func carry(upper, lower, modulus int64) (int64, bool) {
	c := mathx.FloorDiv(lower, modulus)
	if mathx.AddOverflows(upper, c) {
		return 0, false
	}
	return upper + c, true
}

// BalanceYearMonth moves whole years out of month so that month ends up in
// 1..12. Month 13 of 2021 is January 2022; month 0 is December of the
// previous year.
func BalanceYearMonth(year, month int) (int, int) {
	month--
	year += mathx.FloorDiv(month, 12)
	month = mathx.Mod(month, 12) + 1
	return year, month
}

// MaxBalanceDays bounds the day argument of BalanceDate. It lies far
// outside the supported date range, so nothing valid is lost.
const MaxBalanceDays = 1 << 40

// BalanceDate normalizes a date whose month or day is out of range.
//
// The month is balanced first. Whole years are then skipped while day
// exceeds a year's length; the year whose length applies is the current
// one when the month is after February and the previous one otherwise,
// because a span starting in January or February crosses that year's leap
// day. What remains is walked month by month.
//
// A day beyond ±MaxBalanceDays, or a year that would overflow int, is
// reported as a *errors.ValidationError.
//
//	BalanceDate(2021, 13, 32) // 2022-02-01
//	BalanceDate(2020, 3, 0)   // 2020-02-29
func BalanceDate(year, month, day int) (Date, error) {
	if day > MaxBalanceDays || day < -MaxBalanceDays {
		return Date{}, &errors.ValidationError{Type: "Date", Field: "Day", Reason: "outside the representable day range", Value: day}
	}
	year, month = BalanceYearMonth(year, month)

	// Whole 400-year cycles have a fixed length; skip them in one step.
	var n int
	if day > daysPer400Years {
		n = (day - 1) / daysPer400Years
	} else if day < -daysPer400Years {
		n = -(-day / daysPer400Years)
	}
	if n != 0 {
		var ok bool
		if year, ok = addInt(year, 400*int64(n)); !ok {
			return Date{}, arithmeticOverflow("Date", "Year")
		}
		day -= daysPer400Years * n
	}

	testYear := year
	if month <= 2 {
		testYear--
	}
	for day < -DaysInYear(testYear) {
		day += DaysInYear(testYear)
		year--
		testYear--
	}
	testYear++
	for day > DaysInYear(testYear) {
		day -= DaysInYear(testYear)
		year++
		testYear++
	}

	for day < 1 {
		year, month = BalanceYearMonth(year, month-1)
		day += DaysInMonth(year, month)
	}
	for day > DaysInMonth(year, month) {
		day -= DaysInMonth(year, month)
		year, month = BalanceYearMonth(year, month+1)
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// BalanceDateTime balances the time fields and feeds their day carry into
// the date.
func BalanceDateTime(year, month, day int, hour, minute, second, millisecond, microsecond, nanosecond int64) (DateTime, error) {
	days, t, err := BalanceTime(hour, minute, second, millisecond, microsecond, nanosecond)
	if err != nil {
		return DateTime{}, err
	}
	if mathx.AddOverflows(int64(day), days) {
		return DateTime{}, arithmeticOverflow("DateTime", "Day")
	}
	d, err := BalanceDate(year, month, day+int(days))
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{Date: d, Time: t}, nil
}
