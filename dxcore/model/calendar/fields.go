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

package calendar

import (
	"dirpx.dev/dxtime/dxcore/model/civil"
	"dirpx.dev/dxtime/dxcore/model/duration"
	"dirpx.dev/dxtime/dxcore/model/policy"
)

// Fields is an unvalidated set of date-time fields.
type Fields struct {
	Year, Month, Day int

	Hour, Minute, Second                 int
	Millisecond, Microsecond, Nanosecond int
}

// DateTimeFromFields builds a date-time from fields in cal.
//
// The date is obtained from cal.DateFromFields and the time is regulated
// with overflow. Under Constrain a date that had to be clamped to the first
// or last supported day is moved one day further out, so that the
// date-time range check rejects it instead of silently producing the
// boundary date.
func DateTimeFromFields(cal duration.Calendar, f Fields, overflow policy.Overflow) (civil.DateTime, error) {
	date, err := cal.DateFromFields(f.Year, f.Month, f.Day, overflow)
	if err != nil {
		return civil.DateTime{}, err
	}
	if overflow == policy.Constrain {
		if _, err := cal.DateFromFields(f.Year, f.Month, f.Day, policy.Reject); err != nil {
			switch date {
			case lastDate:
				date.Day++
			case firstDate:
				date.Day--
			}
			if date, err = civil.BalanceDate(date.Year, date.Month, date.Day); err != nil {
				return civil.DateTime{}, err
			}
		}
	}

	t, err := civil.RegulateTime(f.Hour, f.Minute, f.Second, f.Millisecond, f.Microsecond, f.Nanosecond, overflow)
	if err != nil {
		return civil.DateTime{}, err
	}
	dt := civil.DateTime{Date: date, Time: t}
	if err := civil.RejectDateTimeRange(dt); err != nil {
		return civil.DateTime{}, err
	}
	return dt, nil
}
