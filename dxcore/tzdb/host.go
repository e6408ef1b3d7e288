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

// Package tzdb provides tz.Database implementations.
//
// Host reads the zone files installed on the machine, falling back to the
// copy embedded in the binary. Rules serves small hand-written transition
// tables loaded from YAML or TOML, which is useful for tests and for
// pinning zone behavior independently of the host. Cache wraps any
// Database with a bounded LRU.
package tzdb

import (
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/model/civil"
	"dirpx.dev/dxtime/dxcore/tz"
)

// Host is a tz.Database backed by the IANA zone files known to the Go
// runtime. Loaded locations are kept for the life of the Host.
type Host struct {
	locations sync.Map // string -> *time.Location
}

// NewHost returns an empty Host.
func NewHost() *Host {
	return &Host{}
}

func (h *Host) location(id string) (*time.Location, error) {
	if v, ok := h.locations.Load(id); ok {
		return v.(*time.Location), nil
	}
	// time.LoadLocation maps "" and "UTC" to UTC and "Local" to the
	// process zone; only real zone names are accepted here.
	if id == "" || id == "Local" || strings.HasPrefix(id, "/") || strings.Contains(id, "..") {
		return nil, &errors.ValidationError{Type: "TimeZone", Reason: "unknown time zone", Value: id}
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, &errors.ValidationError{Type: "TimeZone", Reason: "unknown time zone: " + err.Error(), Value: id}
	}
	v, _ := h.locations.LoadOrStore(id, loc)
	return v.(*time.Location), nil
}

// Canonical returns id itself once the zone loads. Identifiers are
// case-sensitive, as they are in the zone file tree.
func (h *Host) Canonical(id string) (string, error) {
	loc, err := h.location(id)
	if err != nil {
		return "", err
	}
	return loc.String(), nil
}

// WallClock renders epochSeconds in zone id.
func (h *Host) WallClock(id string, epochSeconds int64) (civil.DateTime, error) {
	loc, err := h.location(id)
	if err != nil {
		return civil.DateTime{}, err
	}
	t := time.Unix(epochSeconds, 0).In(loc)
	return civil.DateTime{
		Date: civil.Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()},
		Time: civil.Time{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()},
	}, nil
}

var _ tz.Database = (*Host)(nil)
