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

import "dirpx.dev/dxtime/dxcore/internal/mathx"

// Supported year range. Dates in the boundary years are further limited
// by RejectDateRange and RejectDateTimeRange.
const (
	YearMin = -271821
	YearMax = 275760
)

// daysPer400Years is the length of one Gregorian cycle.
const daysPer400Years = 146097

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// LeapYear reports whether year has 366 days in the proleptic Gregorian
// calendar. Year 0 is a leap year.
func LeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 365 or 366.
func DaysInYear(year int) int {
	if LeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the length of month (1..12) in year.
func DaysInMonth(year, month int) int {
	if month == 2 && LeapYear(year) {
		return 29
	}
	return monthDays[month-1]
}

// DayOfWeek returns the ISO weekday, 1 for Monday through 7 for Sunday.
func DayOfWeek(year, month, day int) int {
	// 1970-01-01 was a Thursday.
	return int(mathx.Mod(EpochDays(year, month, day)+3, 7)) + 1
}

// DayOfYear returns the ordinal day, 1 for January 1st.
func DayOfYear(year, month, day int) int {
	return int(EpochDays(year, month, day)-EpochDays(year, 1, 1)) + 1
}

// WeekOfYear returns the ISO 8601 week number (1..53). Days early in
// January may belong to the last week of the previous year and days late
// in December to week 1 of the next.
func WeekOfYear(year, month, day int) int {
	doy := DayOfYear(year, month, day)
	dow := DayOfWeek(year, month, day)
	week := (doy - dow + 10) / 7

	if week < 1 {
		return weeksInYear(year - 1)
	}
	if week == 53 && DaysInYear(year)-doy < 4-dow {
		return 1
	}
	return week
}

// weeksInYear is 53 for years starting on a Thursday, and for leap years
// starting on a Wednesday.
func weeksInYear(year int) int {
	jan1 := DayOfWeek(year, 1, 1)
	if jan1 == 4 || (jan1 == 3 && LeapYear(year)) {
		return 53
	}
	return 52
}

// EpochDays returns the number of days from 1970-01-01 to the given date.
// Day may lie outside its month; the result is linear in day.
func EpochDays(year, month, day int) int64 {
	y := int64(year)
	if month <= 2 {
		y--
	}
	era := mathx.FloorDiv(y, 400)
	yoe := y - era*400
	mp := int64(month) + 9
	if month > 2 {
		mp = int64(month) - 3
	}
	doy := (153*mp+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*daysPer400Years + doe - 719468
}

// DateFromEpochDays is the inverse of EpochDays.
func DateFromEpochDays(days int64) Date {
	z := days + 719468
	era := mathx.FloorDiv(z, daysPer400Years)
	doe := z - era*daysPer400Years
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	y := yoe + era*400
	if m <= 2 {
		y++
	}
	return Date{Year: int(y), Month: int(m), Day: int(d)}
}
