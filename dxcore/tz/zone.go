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

// Package tz maps instants to wall-clock date-times in a time zone and
// back.
//
// Named zones are looked up through a Database, so the package itself
// holds no zone data and no global state. A Resolver bundles a Database
// with the search limits used for transition lookups and is safe for
// concurrent use.
//
//	r := tz.NewResolver(tzdb.NewHost())
//	z, err := r.Zone("America/New_York")
//	local, err := r.CivilTimeAt(z, instant.FromEpochNanoseconds(0))
package tz

import (
	"regexp"
	"strconv"

	"dirpx.dev/dxtime/dxcore/model/civil"
	"dirpx.dev/dxtime/dxcore/model/instant"
)

// Database is the zone data a Resolver consumes. tzdb provides
// implementations backed by the host zone files and by rule files.
type Database interface {
	// Canonical returns the canonical identifier for id, or an error when
	// the zone is unknown.
	Canonical(id string) (string, error)

	// WallClock returns the local date-time, to the second, of the Unix
	// time epochSeconds in zone id.
	WallClock(id string, epochSeconds int64) (civil.DateTime, error)
}

// TimeZone is either a fixed UTC offset or a named zone resolved through a
// Database. Obtain one from Resolver.Zone or Fixed.
type TimeZone struct {
	id     string
	offset int64
	fixed  bool
}

// UTC is the fixed zone with offset zero.
var UTC = TimeZone{id: "UTC", fixed: true}

// Fixed returns the zone with the constant offset offsetNs. The offset
// must be strictly less than 24 hours in magnitude.
func Fixed(offsetNs int64) (TimeZone, error) {
	if offsetNs <= -instant.NanosecondsPerDay || offsetNs >= instant.NanosecondsPerDay {
		return TimeZone{}, offsetRangeError(offsetNs)
	}
	return TimeZone{id: FormatOffset(offsetNs), offset: offsetNs, fixed: true}, nil
}

// ID returns the canonical identifier: "UTC", an offset such as "+05:30",
// or a zone name.
func (z TimeZone) ID() string { return z.id }

// IsFixed reports whether z has a constant offset.
func (z TimeZone) IsFixed() bool { return z.fixed }

// String returns ID.
func (z TimeZone) String() string { return z.id }

// IsZero reports whether z was never initialized.
func (z TimeZone) IsZero() bool { return z.id == "" }

var offsetPattern = regexp.MustCompile(`^([+\x{2212}-])([01][0-9]|2[0-3])(?::?([0-5][0-9]))?$`)

// ParseOffset reads "+HH", "-HH:MM", "+HHMM" or the same with a Unicode
// minus sign and returns the offset in nanoseconds.
func ParseOffset(s string) (int64, bool) {
	m := offsetPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.ParseInt(m[2], 10, 64)
	var minutes int64
	if m[3] != "" {
		minutes, _ = strconv.ParseInt(m[3], 10, 64)
	}
	ns := (hours*60 + minutes) * instant.NanosecondsPerMinute
	if m[1] != "+" {
		ns = -ns
	}
	return ns, true
}

// FormatOffset renders an offset as "+HH:MM". Seconds and smaller are
// dropped.
func FormatOffset(offsetNs int64) string {
	sign := byte('+')
	if offsetNs < 0 {
		sign = '-'
		offsetNs = -offsetNs
	}
	minutes := offsetNs / instant.NanosecondsPerMinute
	buf := []byte{sign}
	buf = appendTwo(buf, minutes/60)
	buf = append(buf, ':')
	return string(appendTwo(buf, minutes%60))
}

func appendTwo(buf []byte, v int64) []byte {
	if v < 10 {
		buf = append(buf, '0')
	}
	return strconv.AppendInt(buf, v, 10)
}
