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

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			"Overflow type",
			&ParseError{Type: "Overflow", Value: "wrap"},
			"dxtime: invalid Overflow value: wrap",
		},
		{
			"Date type",
			&ParseError{Type: "Date", Value: "2021-13-01"},
			"dxtime: invalid Date value: 2021-13-01",
		},
		{
			"empty value",
			&ParseError{Type: "Unit", Value: ""},
			"dxtime: invalid Unit value: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ParseError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarshalError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *MarshalError
		want string
	}{
		{
			"positive value",
			&MarshalError{Type: "RoundingMode", Value: 99},
			"dxtime: cannot marshal invalid RoundingMode value: 99",
		},
		{
			"negative value",
			&MarshalError{Type: "Unit", Value: -1},
			"dxtime: cannot marshal invalid Unit value: -1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("MarshalError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnmarshalError_Error(t *testing.T) {
	err := &UnmarshalError{Type: "Duration", Data: []byte(`{`), Reason: "unexpected end of JSON input"}
	want := "dxtime: cannot unmarshal Duration: unexpected end of JSON input"
	if got := err.Error(); got != want {
		t.Errorf("UnmarshalError.Error() = %q, want %q", got, want)
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			"with field",
			&ValidationError{Type: "Date", Field: "Month", Reason: "must be 1..12"},
			"dxtime: invalid Date.Month: must be 1..12",
		},
		{
			"without field",
			&ValidationError{Type: "Duration", Reason: "mixed-sign values not allowed"},
			"dxtime: invalid Duration: mixed-sign values not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOutOfRange(t *testing.T) {
	err := OutOfRange("Time", "Hour", 24, 0, 23)
	want := "dxtime: invalid Time.Hour: value out of range: 0 <= 24 <= 23"
	if got := err.Error(); got != want {
		t.Errorf("OutOfRange().Error() = %q, want %q", got, want)
	}
	if err.Value != int64(24) {
		t.Errorf("OutOfRange().Value = %v, want 24", err.Value)
	}
}

func TestAmbiguityError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AmbiguityError
		want string
	}{
		{
			"gap",
			&AmbiguityError{Zone: "America/New_York", DateTime: "2021-03-14T02:30:00"},
			"dxtime: 2021-03-14T02:30:00 does not exist in time zone America/New_York",
		},
		{
			"overlap",
			&AmbiguityError{
				Zone:       "America/New_York",
				DateTime:   "2021-11-07T01:30:00",
				Candidates: []string{"1636263000000000000", "1636266600000000000"},
			},
			"dxtime: 2021-11-07T01:30:00 is ambiguous in time zone America/New_York " +
				"(candidates: 1636263000000000000, 1636266600000000000)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AmbiguityError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrors_As(t *testing.T) {
	wrapped := fmt.Errorf("regulate: %w", &ValidationError{Type: "Date", Field: "Day", Reason: "too large"})

	var verr *ValidationError
	if !stderrors.As(wrapped, &verr) {
		t.Fatalf("errors.As() did not find *ValidationError in %v", wrapped)
	}
	if verr.Field != "Day" {
		t.Errorf("Field = %q, want %q", verr.Field, "Day")
	}

	var aerr *AmbiguityError
	if stderrors.As(wrapped, &aerr) {
		t.Errorf("errors.As() unexpectedly matched *AmbiguityError")
	}
}

func TestErrors_Implements_Error_Interface(t *testing.T) {
	var _ error = (*ParseError)(nil)
	var _ error = (*MarshalError)(nil)
	var _ error = (*UnmarshalError)(nil)
	var _ error = (*ValidationError)(nil)
	var _ error = (*AmbiguityError)(nil)
}
