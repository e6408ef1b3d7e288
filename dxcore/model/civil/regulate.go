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
	"math/big"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/internal/mathx"
	"dirpx.dev/dxtime/dxcore/model/instant"
	"dirpx.dev/dxtime/dxcore/model/policy"
)

// Reference values used when regulating partial dates.
const (
	// MonthDayReferenceYear is a leap year, so February 29th survives
	// regulation of a MonthDay.
	MonthDayReferenceYear = 1972
	// YearMonthReferenceDay is the day a YearMonth is anchored to.
	YearMonthReferenceDay = 1
)

// field is one value checked by regulate.
type field struct {
	name     string
	value    *int
	min, max int
}

// regulate applies overflow to fields in order. Later bounds may depend on
// earlier results (the day bound depends on the regulated month), so
// callers pass fields whose bounds are already final.
func regulate(typ string, overflow policy.Overflow, fields ...field) error {
	switch overflow {
	case policy.Reject:
		for _, f := range fields {
			if *f.value < f.min || *f.value > f.max {
				return errors.OutOfRange(typ, f.name, int64(*f.value), int64(f.min), int64(f.max))
			}
		}
	case policy.Constrain:
		for _, f := range fields {
			*f.value = mathx.Clamp(*f.value, f.min, f.max)
		}
	default:
		return &errors.ValidationError{Type: typ, Reason: "overflow policy " + overflow.String() + " does not apply to calendar fields", Value: overflow.String()}
	}
	return nil
}

// RegulateDate applies overflow to month and day. The year is left alone;
// the supported range is checked separately by RejectDateRange.
func RegulateDate(year, month, day int, overflow policy.Overflow) (Date, error) {
	if err := regulate("Date", overflow, field{"Month", &month, 1, 12}); err != nil {
		return Date{}, err
	}
	if err := regulate("Date", overflow, field{"Day", &day, 1, DaysInMonth(year, month)}); err != nil {
		return Date{}, err
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// RegulateTime applies overflow to every clock field.
//
// Under Constrain, 25:61:00 becomes 23:59:00; nothing is carried.
func RegulateTime(hour, minute, second, millisecond, microsecond, nanosecond int, overflow policy.Overflow) (Time, error) {
	err := regulate("Time", overflow,
		field{"Hour", &hour, 0, 23},
		field{"Minute", &minute, 0, 59},
		field{"Second", &second, 0, 59},
		field{"Millisecond", &millisecond, 0, 999},
		field{"Microsecond", &microsecond, 0, 999},
		field{"Nanosecond", &nanosecond, 0, 999},
	)
	if err != nil {
		return Time{}, err
	}
	return Time{hour, minute, second, millisecond, microsecond, nanosecond}, nil
}

// RegulateDateTime combines RegulateDate and RegulateTime.
func RegulateDateTime(year, month, day, hour, minute, second, millisecond, microsecond, nanosecond int, overflow policy.Overflow) (DateTime, error) {
	d, err := RegulateDate(year, month, day, overflow)
	if err != nil {
		return DateTime{}, err
	}
	t, err := RegulateTime(hour, minute, second, millisecond, microsecond, nanosecond, overflow)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{Date: d, Time: t}, nil
}

// RegulateYearMonth regulates the month of a year-month.
func RegulateYearMonth(year, month int, overflow policy.Overflow) (YearMonth, error) {
	d, err := RegulateDate(year, month, YearMonthReferenceDay, overflow)
	if err != nil {
		return YearMonth{}, err
	}
	return YearMonth{Year: d.Year, Month: d.Month}, nil
}

// RegulateMonthDay regulates a month-day against the leap reference year,
// so 02-29 is valid and 02-30 is constrained to 02-29.
func RegulateMonthDay(month, day int, overflow policy.Overflow) (MonthDay, error) {
	d, err := RegulateDate(MonthDayReferenceYear, month, day, overflow)
	if err != nil {
		return MonthDay{}, err
	}
	return MonthDay{Month: d.Month, Day: d.Day}, nil
}

// RejectDateRange fails for dates whose noon is not within one day of the
// instant range: the first valid date is -271821-04-19, the last
// 275760-09-13.
func RejectDateRange(d Date) error {
	if err := rejectYear("Date", d.Year); err != nil {
		return err
	}
	return RejectDateTimeRange(DateTime{Date: d, Time: Noon})
}

var (
	// Exclusive bounds of EpochNanoseconds for a valid DateTime.
	dateTimeLower = new(big.Int).Sub(instant.MinNanoseconds, big.NewInt(instant.NanosecondsPerDay))
	dateTimeUpper = new(big.Int).Add(instant.MaxNanoseconds, big.NewInt(instant.NanosecondsPerDay))
)

// RejectDateTimeRange fails unless dt, read as UTC, lies strictly less
// than one day outside the instant range. Every valid DateTime therefore
// has an instant in some time zone.
func RejectDateTimeRange(dt DateTime) error {
	if err := rejectYear("DateTime", dt.Year); err != nil {
		return err
	}
	if dt.Year != YearMin && dt.Year != YearMax {
		return nil
	}
	ns := EpochNanoseconds(dt)
	if ns.Cmp(dateTimeLower) <= 0 || ns.Cmp(dateTimeUpper) >= 0 {
		return &errors.ValidationError{Type: "DateTime", Reason: "outside the supported range", Value: dt.String()}
	}
	return nil
}

// RejectYearMonthRange fails outside -271821-04 .. 275760-09.
func RejectYearMonthRange(year, month int) error {
	if err := rejectYear("YearMonth", year); err != nil {
		return err
	}
	switch {
	case year == YearMin && month < 4:
		return errors.OutOfRange("YearMonth", "Month", int64(month), 4, 12)
	case year == YearMax && month > 9:
		return errors.OutOfRange("YearMonth", "Month", int64(month), 1, 9)
	}
	return nil
}

func rejectYear(typ string, year int) error {
	if year < YearMin || year > YearMax {
		return errors.OutOfRange(typ, "Year", int64(year), YearMin, YearMax)
	}
	return nil
}
