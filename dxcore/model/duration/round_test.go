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

package duration_test

import (
	stderrors "errors"
	"testing"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/model/calendar"
	"dirpx.dev/dxtime/dxcore/model/duration"
	"dirpx.dev/dxtime/dxcore/model/policy"
)

func TestRound(t *testing.T) {
	anchor := func(y, m, d int) *duration.Anchor {
		return &duration.Anchor{DateTime: dt(y, m, d, 0, 0), Calendar: calendar.ISO{}}
	}

	tests := []struct {
		name string
		d    duration.Duration
		opts duration.Options
		want duration.Duration
	}{
		{"hours half up", duration.Duration{Hours: 1, Minutes: 30}, duration.Options{Unit: policy.Hours, Mode: policy.Nearest}, duration.Duration{Hours: 2}},
		{"hours half negative", duration.Duration{Hours: -1, Minutes: -30}, duration.Options{Unit: policy.Hours, Mode: policy.Nearest}, duration.Duration{Hours: -2}},
		{"hours keep days", duration.Duration{Days: 3, Hours: 5, Minutes: 45}, duration.Options{Unit: policy.Hours, Mode: policy.Nearest}, duration.Duration{Days: 3, Hours: 6}},
		{"days floor", duration.Duration{Days: 1, Hours: 12}, duration.Options{Unit: policy.Days, Mode: policy.Floor}, duration.Duration{Days: 1}},
		{"days ceil", duration.Duration{Days: 1, Hours: 12}, duration.Options{Unit: policy.Days, Mode: policy.Ceil}, duration.Duration{Days: 2}},
		{"days by two", duration.Duration{Days: 3}, duration.Options{Unit: policy.Days, Increment: 2, Mode: policy.Trunc}, duration.Duration{Days: 2}},
		{"seconds trunc", duration.Duration{Seconds: 1, Milliseconds: 500}, duration.Options{Unit: policy.Seconds, Mode: policy.Trunc}, duration.Duration{Seconds: 1}},
		{"quarter hour", duration.Duration{Minutes: 37}, duration.Options{Unit: policy.Minutes, Increment: 15, Mode: policy.Nearest}, duration.Duration{Minutes: 30}},
		{"unbalanced minutes", duration.Duration{Minutes: 125}, duration.Options{Unit: policy.Minutes, Increment: 30, Mode: policy.Ceil}, duration.Duration{Minutes: 150}},
		{"years half", duration.Duration{Years: 1, Months: 6}, duration.Options{Unit: policy.Years, Mode: policy.Nearest, RelativeTo: anchor(2021, 6, 1)}, duration.Duration{Years: 2}},
		{"years floor", duration.Duration{Years: 1, Months: 6}, duration.Options{Unit: policy.Years, Mode: policy.Floor, RelativeTo: anchor(2021, 6, 1)}, duration.Duration{Years: 1}},
		{"months half", duration.Duration{Months: 1, Days: 14}, duration.Options{Unit: policy.Months, Mode: policy.Nearest, RelativeTo: anchor(2021, 3, 15)}, duration.Duration{Months: 2}},
		{"months with weeks", duration.Duration{Months: 1, Weeks: 2}, duration.Options{Unit: policy.Months, Mode: policy.Nearest, RelativeTo: anchor(2021, 3, 15)}, duration.Duration{Months: 2}},
		{"months below half", duration.Duration{Months: 1, Days: 13, Hours: 23}, duration.Options{Unit: policy.Months, Mode: policy.Nearest, RelativeTo: anchor(2021, 3, 15)}, duration.Duration{Months: 1}},
		{"weeks", duration.Duration{Weeks: 1, Days: 4}, duration.Options{Unit: policy.Weeks, Mode: policy.Nearest, RelativeTo: anchor(2021, 1, 1)}, duration.Duration{Weeks: 2}},
		{"weeks trunc keeps months", duration.Duration{Months: 2, Weeks: 1, Days: 4}, duration.Options{Unit: policy.Weeks, Mode: policy.Trunc, RelativeTo: anchor(2021, 1, 1)}, duration.Duration{Months: 2, Weeks: 1}},
		{"nanoseconds no-op", duration.Duration{Days: 1, Nanoseconds: 7}, duration.Options{Unit: policy.Nanoseconds}, duration.Duration{Days: 1, Nanoseconds: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := duration.Round(tt.d, tt.opts)
			if err != nil {
				t.Fatalf("Round() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Round() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRound_Errors(t *testing.T) {
	tests := []struct {
		name string
		d    duration.Duration
		opts duration.Options
	}{
		{"months without anchor", duration.Duration{Months: 1}, duration.Options{Unit: policy.Months}},
		{"anchor without calendar", duration.Duration{Years: 1}, duration.Options{Unit: policy.Years, RelativeTo: &duration.Anchor{DateTime: dt(2021, 1, 1, 0, 0)}}},
		{"hours by 24", duration.Duration{Hours: 1}, duration.Options{Unit: policy.Hours, Increment: 24}},
		{"minutes by 7", duration.Duration{Minutes: 1}, duration.Options{Unit: policy.Minutes, Increment: 7}},
		{"negative increment", duration.Duration{Days: 1}, duration.Options{Unit: policy.Days, Increment: -1}},
		{"mixed sign", duration.Duration{Days: 1, Hours: -1}, duration.Options{Unit: policy.Days}},
		{"invalid unit", duration.Duration{Days: 1}, duration.Options{Unit: policy.Unit(12)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := duration.Round(tt.d, tt.opts)
			var verr *errors.ValidationError
			if !stderrors.As(err, &verr) {
				t.Errorf("Round() error = %v, want *errors.ValidationError", err)
			}
		})
	}
}
