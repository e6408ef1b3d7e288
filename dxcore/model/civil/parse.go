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

// parser reads the ISO 8601 subset used by the text forms of this
// package: extended calendar dates, clock times with up to nine fraction
// digits, and the two joined by 'T'.
type parser struct {
	s string
	i int
}

func (p *parser) done() bool { return p.i == len(p.s) }

func (p *parser) peek() byte {
	if p.i < len(p.s) {
		return p.s[p.i]
	}
	return 0
}

func (p *parser) accept(c byte) bool {
	if p.peek() == c {
		p.i++
		return true
	}
	return false
}

// digits reads exactly n decimal digits.
func (p *parser) digits(n int) (int, bool) {
	if p.i+n > len(p.s) {
		return 0, false
	}
	v := 0
	for _, c := range []byte(p.s[p.i : p.i+n]) {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	p.i += n
	return v, true
}

func (p *parser) year() (int, bool) {
	switch p.peek() {
	case '+', '-':
		neg := p.peek() == '-'
		p.i++
		y, ok := p.digits(6)
		if !ok || (neg && y == 0) {
			return 0, false
		}
		if neg {
			y = -y
		}
		return y, true
	default:
		return p.digits(4)
	}
}

func (p *parser) date() (Date, bool) {
	y, ok := p.year()
	if !ok || !p.accept('-') {
		return Date{}, false
	}
	m, ok := p.digits(2)
	if !ok || !p.accept('-') {
		return Date{}, false
	}
	d, ok := p.digits(2)
	if !ok {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d}, true
}

func (p *parser) yearMonth() (YearMonth, bool) {
	y, ok := p.year()
	if !ok || !p.accept('-') {
		return YearMonth{}, false
	}
	m, ok := p.digits(2)
	if !ok {
		return YearMonth{}, false
	}
	return YearMonth{Year: y, Month: m}, true
}

func (p *parser) monthDay() (MonthDay, bool) {
	// "--MM-DD" is the ISO form; "MM-DD" is accepted as well.
	if p.accept('-') && !p.accept('-') {
		return MonthDay{}, false
	}
	m, ok := p.digits(2)
	if !ok || !p.accept('-') {
		return MonthDay{}, false
	}
	d, ok := p.digits(2)
	if !ok {
		return MonthDay{}, false
	}
	return MonthDay{Month: m, Day: d}, true
}

// time reads HH:MM[:SS[.fffffffff]].
func (p *parser) time() (Time, bool) {
	var t Time
	var ok bool
	if t.Hour, ok = p.digits(2); !ok || !p.accept(':') {
		return Time{}, false
	}
	if t.Minute, ok = p.digits(2); !ok {
		return Time{}, false
	}
	if !p.accept(':') {
		return t, true
	}
	if t.Second, ok = p.digits(2); !ok {
		return Time{}, false
	}
	if !p.accept('.') && !p.accept(',') {
		return t, true
	}
	start := p.i
	frac := 0
	for p.i < len(p.s) && p.i-start < 9 && p.s[p.i] >= '0' && p.s[p.i] <= '9' {
		frac = frac*10 + int(p.s[p.i]-'0')
		p.i++
	}
	n := p.i - start
	if n == 0 {
		return Time{}, false
	}
	for ; n < 9; n++ {
		frac *= 10
	}
	t.Millisecond = frac / 1_000_000
	t.Microsecond = frac / 1_000 % 1_000
	t.Nanosecond = frac % 1_000
	return t, true
}

func (p *parser) dateTime() (DateTime, bool) {
	d, ok := p.date()
	if !ok {
		return DateTime{}, false
	}
	if !p.accept('T') && !p.accept('t') && !p.accept(' ') {
		return DateTime{Date: d}, p.done()
	}
	t, ok := p.time()
	if !ok {
		return DateTime{}, false
	}
	return DateTime{Date: d, Time: t}, true
}
