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

// Package calendar provides the calendar systems the duration engine is
// parameterized over. Only the proleptic ISO 8601 calendar is built in.
package calendar

import (
	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/model/civil"
	"dirpx.dev/dxtime/dxcore/model/duration"
	"dirpx.dev/dxtime/dxcore/model/policy"
)

// ISOID is the identifier of the ISO 8601 calendar.
const ISOID = "iso8601"

// ISO is the proleptic Gregorian calendar with ISO 8601 week numbering.
// The zero value is ready to use.
type ISO struct{}

var _ duration.Calendar = ISO{}

var (
	firstDate = civil.Date{Year: civil.YearMin, Month: 4, Day: 19}
	lastDate  = civil.Date{Year: civil.YearMax, Month: 9, Day: 13}
)

// Lookup returns the calendar registered under id. Only "iso8601" is
// known; anything else is a *errors.ValidationError.
func Lookup(id string) (duration.Calendar, error) {
	if id == ISOID {
		return ISO{}, nil
	}
	return nil, &errors.ValidationError{Type: "Calendar", Reason: "unknown calendar", Value: id}
}

// ID returns "iso8601".
func (ISO) ID() string { return ISOID }

// DateFromFields regulates the fields with overflow and checks the
// supported range. Under Reject a date outside the range is an error.
//
// Under Constrain the range is clamped like any other field: a date before
// -271821-04-19 becomes that day and a date after 275760-09-13 becomes
// that day. DateTimeFromFields relies on this to recognize a clipped date
// and push it back out of range, so only callers of DateFromFields itself
// ever see the boundary date.
func (ISO) DateFromFields(year, month, day int, overflow policy.Overflow) (civil.Date, error) {
	d, err := civil.RegulateDate(year, month, day, overflow)
	if err != nil {
		return civil.Date{}, err
	}
	if err := civil.RejectDateRange(d); err != nil {
		if overflow != policy.Constrain {
			return civil.Date{}, err
		}
		if civil.CompareDates(d, firstDate) < 0 {
			return firstDate, nil
		}
		return lastDate, nil
	}
	return d, nil
}

// DateAdd adds d to date. Clock components are first balanced into whole
// days; the fraction of a day that remains is dropped.
func (ISO) DateAdd(date civil.Date, d duration.Duration, overflow policy.Overflow) (civil.Date, error) {
	days, err := wholeDays(d)
	if err != nil {
		return civil.Date{}, err
	}
	r, err := civil.AddDate(date, d.Years, d.Months, d.Weeks, days, overflow)
	if err != nil {
		return civil.Date{}, err
	}
	if err := civil.RejectDateRange(r); err != nil {
		return civil.Date{}, err
	}
	return r, nil
}

// DateSubtract subtracts d from date; see DateAdd.
func (ISO) DateSubtract(date civil.Date, d duration.Duration, overflow policy.Overflow) (civil.Date, error) {
	days, err := wholeDays(d)
	if err != nil {
		return civil.Date{}, err
	}
	r, err := civil.SubtractDate(date, d.Years, d.Months, d.Weeks, days, overflow)
	if err != nil {
		return civil.Date{}, err
	}
	if err := civil.RejectDateRange(r); err != nil {
		return civil.Date{}, err
	}
	return r, nil
}

// DateDifference returns b - a; see duration.DifferenceDate.
func (ISO) DateDifference(a, b civil.Date, largest policy.Unit) (duration.Duration, error) {
	return duration.DifferenceDate(a, b, largest)
}

func (ISO) DaysInMonth(date civil.Date) int { return civil.DaysInMonth(date.Year, date.Month) }
func (ISO) DaysInYear(date civil.Date) int  { return civil.DaysInYear(date.Year) }
func (ISO) DaysInWeek(civil.Date) int       { return 7 }

// wholeDays returns the day component of d plus its clock components
// balanced into days.
func wholeDays(d duration.Duration) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	b, err := duration.Balance(d.Days, d.Hours, d.Minutes, d.Seconds, d.Milliseconds, d.Microseconds, d.Nanoseconds, policy.Days)
	if err != nil {
		return 0, err
	}
	return b.Days, nil
}
