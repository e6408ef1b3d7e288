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
	"encoding/json"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/model"
	"dirpx.dev/dxtime/dxcore/model/policy"
	"gopkg.in/yaml.v3"
)

// YearMonth is a month of a specific year.
type YearMonth struct {
	Year  int
	Month int
}

// NewYearMonth rejects out-of-range fields.
func NewYearMonth(year, month int) (YearMonth, error) {
	ym, err := RegulateYearMonth(year, month, policy.Reject)
	if err != nil {
		return YearMonth{}, err
	}
	if err := RejectYearMonthRange(ym.Year, ym.Month); err != nil {
		return YearMonth{}, err
	}
	return ym, nil
}

// ParseYearMonth reads "YYYY-MM" or "±YYYYYY-MM".
func ParseYearMonth(s string) (YearMonth, error) {
	p := parser{s: s}
	ym, ok := p.yearMonth()
	if !ok || !p.done() {
		return YearMonth{}, &errors.ParseError{Type: "YearMonth", Value: s}
	}
	if err := ym.Validate(); err != nil {
		return YearMonth{}, err
	}
	return ym, nil
}

// FirstDay returns the reference date of ym.
func (ym YearMonth) FirstDay() Date {
	return Date{Year: ym.Year, Month: ym.Month, Day: YearMonthReferenceDay}
}

// DaysInMonth returns the length of ym.
func (ym YearMonth) DaysInMonth() int { return DaysInMonth(ym.Year, ym.Month) }

// Validate checks the month bound and the supported range.
func (ym YearMonth) Validate() error {
	if _, err := RegulateYearMonth(ym.Year, ym.Month, policy.Reject); err != nil {
		return err
	}
	return RejectYearMonthRange(ym.Year, ym.Month)
}

func (ym YearMonth) TypeName() string { return "YearMonth" }
func (ym YearMonth) IsZero() bool     { return ym == YearMonth{} }
func (ym YearMonth) Redacted() string { return ym.String() }

// String returns "YYYY-MM".
func (ym YearMonth) String() string {
	buf := appendYear(make([]byte, 0, 10), ym.Year)
	buf = append(buf, '-')
	return string(appendPadded(buf, ym.Month, 2))
}

func (ym YearMonth) MarshalJSON() ([]byte, error) {
	if err := ym.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(ym.String())
}

func (ym *YearMonth) UnmarshalJSON(data []byte) error {
	s, err := jsonString("YearMonth", data)
	if err != nil {
		return err
	}
	parsed, err := ParseYearMonth(s)
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}

func (ym YearMonth) MarshalYAML() (any, error) {
	if err := ym.Validate(); err != nil {
		return nil, err
	}
	return ym.String(), nil
}

func (ym *YearMonth) UnmarshalYAML(node *yaml.Node) error {
	s, err := yamlString("YearMonth", node)
	if err != nil {
		return err
	}
	parsed, err := ParseYearMonth(s)
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}

// MonthDay is a recurring day of the year such as a birthday.
type MonthDay struct {
	Month int
	Day   int
}

// NewMonthDay rejects out-of-range fields. February 29th is valid.
func NewMonthDay(month, day int) (MonthDay, error) {
	return RegulateMonthDay(month, day, policy.Reject)
}

// ParseMonthDay reads "--MM-DD" or "MM-DD".
func ParseMonthDay(s string) (MonthDay, error) {
	p := parser{s: s}
	md, ok := p.monthDay()
	if !ok || !p.done() {
		return MonthDay{}, &errors.ParseError{Type: "MonthDay", Value: s}
	}
	if err := md.Validate(); err != nil {
		return MonthDay{}, err
	}
	return md, nil
}

// In returns md in year, constraining February 29th to the 28th in
// common years.
func (md MonthDay) In(year int) Date {
	d, _ := RegulateDate(year, md.Month, md.Day, policy.Constrain)
	return d
}

func (md MonthDay) Validate() error {
	_, err := RegulateMonthDay(md.Month, md.Day, policy.Reject)
	return err
}

func (md MonthDay) TypeName() string { return "MonthDay" }
func (md MonthDay) IsZero() bool     { return md == MonthDay{} }
func (md MonthDay) Redacted() string { return md.String() }

// String returns "--MM-DD".
func (md MonthDay) String() string {
	buf := append(make([]byte, 0, 7), '-', '-')
	buf = appendPadded(buf, md.Month, 2)
	buf = append(buf, '-')
	return string(appendPadded(buf, md.Day, 2))
}

func (md MonthDay) MarshalJSON() ([]byte, error) {
	if err := md.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(md.String())
}

func (md *MonthDay) UnmarshalJSON(data []byte) error {
	s, err := jsonString("MonthDay", data)
	if err != nil {
		return err
	}
	parsed, err := ParseMonthDay(s)
	if err != nil {
		return err
	}
	*md = parsed
	return nil
}

func (md MonthDay) MarshalYAML() (any, error) {
	if err := md.Validate(); err != nil {
		return nil, err
	}
	return md.String(), nil
}

func (md *MonthDay) UnmarshalYAML(node *yaml.Node) error {
	s, err := yamlString("MonthDay", node)
	if err != nil {
		return err
	}
	parsed, err := ParseMonthDay(s)
	if err != nil {
		return err
	}
	*md = parsed
	return nil
}

var (
	_ model.Model = (*YearMonth)(nil)
	_ model.Model = (*MonthDay)(nil)
)
