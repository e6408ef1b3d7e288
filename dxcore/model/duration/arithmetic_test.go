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
	"math"
	"testing"

	"dirpx.dev/dxtime/dxcore/model/duration"
	"dirpx.dev/dxtime/dxcore/model/policy"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name     string
		a, b     duration.Duration
		overflow policy.Overflow
		want     duration.Duration
		wantErr  bool
	}{
		{"plain", duration.Duration{Days: 1}, duration.Duration{Hours: 2}, policy.Constrain, duration.Duration{Days: 1, Hours: 2}, false},
		{"hours borrow a day", duration.Duration{Days: 1}, duration.Duration{Hours: -1}, policy.Constrain, duration.Duration{Hours: 23}, false},
		{"negative result", duration.Duration{Hours: -1}, duration.Duration{Minutes: 30}, policy.Constrain, duration.Duration{Minutes: -30}, false},
		{"no balance", duration.Duration{Hours: 20}, duration.Duration{Hours: 10}, policy.Constrain, duration.Duration{Hours: 30}, false},
		{"balance", duration.Duration{Hours: 20}, duration.Duration{Hours: 10}, policy.Balance, duration.Duration{Days: 1, Hours: 6}, false},
		{"balance keeps months", duration.Duration{Months: 1}, duration.Duration{Minutes: 1500}, policy.Balance, duration.Duration{Months: 1, Days: 1, Hours: 1}, false},
		{"sub-second borrow", duration.Duration{Seconds: 1}, duration.Duration{Nanoseconds: -1}, policy.Reject, duration.Duration{Milliseconds: 999, Microseconds: 999, Nanoseconds: 999}, false},
		{"days cannot borrow from months", duration.Duration{Months: 1}, duration.Duration{Days: -1}, policy.Constrain, duration.Duration{}, true},
		{"overflow", duration.Duration{Days: math.MaxInt64}, duration.Duration{Days: 1}, policy.Constrain, duration.Duration{}, true},
		{"mixed input", duration.Duration{Days: 1, Hours: -1}, duration.Duration{}, policy.Constrain, duration.Duration{}, true},
		{"invalid overflow", duration.Duration{Days: 1}, duration.Duration{}, policy.Overflow(9), duration.Duration{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := duration.Add(tt.a, tt.b, tt.overflow)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Add() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Add() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAdd_NeverMixedSign(t *testing.T) {
	samples := []duration.Duration{
		{},
		{Days: 1},
		{Days: -3, Hours: -4},
		{Hours: 25, Minutes: 61},
		{Minutes: -90},
		{Seconds: 1, Nanoseconds: 5},
		{Milliseconds: -1, Microseconds: -2},
		{Weeks: 1, Days: 2},
		{Hours: 7},
	}
	for _, a := range samples {
		for _, b := range samples {
			got, err := duration.Add(a, b, policy.Balance)
			if err != nil {
				continue
			}
			if err := got.Validate(); err != nil {
				t.Errorf("Add(%v, %v) = %+v: %v", a, b, got, err)
			}
		}
	}
}

func TestSubtract(t *testing.T) {
	got, err := duration.Subtract(duration.Duration{Hours: 2}, duration.Duration{Minutes: 90}, policy.Constrain)
	if err != nil {
		t.Fatalf("Subtract() error = %v", err)
	}
	if got != (duration.Duration{Minutes: 30}) {
		t.Errorf("Subtract() = %+v", got)
	}

	got, err = duration.Subtract(duration.Duration{Days: 1}, duration.Duration{Days: 3}, policy.Constrain)
	if err != nil || got != (duration.Duration{Days: -2}) {
		t.Errorf("Subtract(1d, 3d) = %+v, %v", got, err)
	}
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name    string
		f       [7]int64
		largest policy.Unit
		want    duration.Duration
	}{
		{"seconds into minutes", [7]int64{0, 0, 0, 0, 0, 0, 90_000_000_000}, policy.Minutes, duration.Duration{Minutes: 1, Seconds: 30}},
		{"days into hours", [7]int64{1, 1, 0, 0, 0, 0, 0}, policy.Hours, duration.Duration{Hours: 25}},
		{"hours into days", [7]int64{0, 25, 0, 0, 0, 0, 0}, policy.Days, duration.Duration{Days: 1, Hours: 1}},
		{"calendar largest stops at days", [7]int64{0, 25, 0, 0, 0, 0, 0}, policy.Years, duration.Duration{Days: 1, Hours: 1}},
		{"mixed input", [7]int64{0, -1, 30, 0, 0, 0, 0}, policy.Hours, duration.Duration{Minutes: -30}},
		{"nanoseconds", [7]int64{0, 0, 0, 1, 2, 3, 4}, policy.Nanoseconds, duration.Duration{Nanoseconds: 1_002_003_004}},
		{"zero", [7]int64{}, policy.Days, duration.Duration{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.f
			got, err := duration.Balance(f[0], f[1], f[2], f[3], f[4], f[5], f[6], tt.largest)
			if err != nil {
				t.Fatalf("Balance() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Balance() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if _, err := duration.Balance(math.MaxInt64, 0, 0, 0, 0, 0, 0, policy.Nanoseconds); err == nil {
		t.Error("Balance(overflow) error = nil")
	}
	if _, err := duration.Balance(0, 0, 0, 0, 0, 0, 0, policy.Unit(-1)); err == nil {
		t.Error("Balance(invalid unit) error = nil")
	}
}

func TestRegulate(t *testing.T) {
	d := duration.Duration{Years: 1, Hours: 25}

	got, err := duration.Regulate(d, policy.Constrain)
	if err != nil || got != d {
		t.Errorf("Regulate(constrain) = %+v, %v", got, err)
	}
	got, err = duration.Regulate(d, policy.Balance)
	if err != nil || got != (duration.Duration{Years: 1, Days: 1, Hours: 1}) {
		t.Errorf("Regulate(balance) = %+v, %v", got, err)
	}
	if _, err := duration.Regulate(duration.Duration{Years: 1, Hours: -1}, policy.Reject); err == nil {
		t.Error("Regulate(mixed) error = nil")
	}
}
