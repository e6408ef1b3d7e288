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

package tz_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/model/civil"
	"dirpx.dev/dxtime/dxcore/model/instant"
	"dirpx.dev/dxtime/dxcore/model/policy"
	"dirpx.dev/dxtime/dxcore/tz"
)

// =============================================================================
// Fixture zone database
// =============================================================================

type change struct {
	at     int64 // epoch seconds
	offset int64 // seconds east of UTC
}

// fakeDB serves zones as lists of offset changes. The first entry applies
// from the beginning of time.
type fakeDB map[string][]change

func (db fakeDB) Canonical(id string) (string, error) {
	for name := range db {
		if strings.EqualFold(name, id) {
			return name, nil
		}
	}
	return "", fmt.Errorf("zone %q not found", id)
}

func (db fakeDB) WallClock(id string, secs int64) (civil.DateTime, error) {
	changes, ok := db[id]
	if !ok {
		return civil.DateTime{}, fmt.Errorf("zone %q not found", id)
	}
	offset := changes[0].offset
	for _, c := range changes[1:] {
		if secs < c.at {
			break
		}
		offset = c.offset
	}
	return civil.FromEpochSeconds(secs + offset), nil
}

const (
	springForward = 1615705200 // 2021-03-14T07:00:00Z, 02:00 EST
	fallBack      = 1636264800 // 2021-11-07T06:00:00Z, 02:00 EDT
	mayFirst      = 1619827200 // 2021-05-01T00:00:00Z
)

var zones = fakeDB{
	"Test/Eastern": {
		{math.MinInt64, -5 * 3600},
		{springForward, -4 * 3600},
		{fallBack, -5 * 3600},
	},
	"Test/Steps": {
		{math.MinInt64, 0},
		{mayFirst, 3600},
		{mayFirst + 3*86400, 7200},
	},
	"Test/Flat": {
		{math.MinInt64, 3 * 3600},
	},
}

func seconds(s int64) instant.Instant {
	return instant.FromEpochNanoseconds(s * instant.NanosecondsPerSecond)
}

func wall(y, mo, d, h, mi int) civil.DateTime {
	return civil.DateTime{Date: civil.Date{Year: y, Month: mo, Day: d}, Time: civil.Time{Hour: h, Minute: mi}}
}

// =============================================================================
// Resolver Test Suite
// =============================================================================

type ResolverSuite struct {
	suite.Suite
	resolver *tz.Resolver
	eastern  tz.TimeZone
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.resolver = tz.NewResolver(zones, tz.WithClock(func() time.Time {
		return time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	}))

	var err error
	s.eastern, err = s.resolver.Zone("Test/Eastern")
	s.Require().NoError(err)
}

func (s *ResolverSuite) TestZone() {
	s.Run("utc", func() {
		for _, id := range []string{"UTC", "utc", "Z"} {
			z, err := s.resolver.Zone(id)
			s.Require().NoError(err)
			s.Equal(tz.UTC, z)
		}
	})

	s.Run("fixed offsets are canonicalized", func() {
		for id, want := range map[string]string{"+05:30": "+05:30", "-0800": "-08:00", "+01": "+01:00", "−03:00": "-03:00"} {
			z, err := s.resolver.Zone(id)
			s.Require().NoError(err, id)
			s.True(z.IsFixed())
			s.Equal(want, z.ID())
		}
	})

	s.Run("named zones are canonicalized", func() {
		z, err := s.resolver.Zone("test/eastern")
		s.Require().NoError(err)
		s.False(z.IsFixed())
		s.Equal("Test/Eastern", z.ID())
	})

	s.Run("unknown zone is a validation error", func() {
		for _, id := range []string{"Mars/Olympus", "+24:00", ""} {
			_, err := s.resolver.Zone(id)
			var verr *errors.ValidationError
			s.Require().ErrorAs(err, &verr, id)
			s.Equal("TimeZone", verr.Type)
		}
	})

	s.Run("no database", func() {
		_, err := tz.NewResolver(nil).Zone("Test/Eastern")
		s.Error(err)
	})
}

func (s *ResolverSuite) TestOffsetAt() {
	winter, err := s.resolver.OffsetAt(s.eastern, seconds(springForward-1))
	s.Require().NoError(err)
	s.Equal(int64(-5*instant.NanosecondsPerHour), winter)

	summer, err := s.resolver.OffsetAt(s.eastern, seconds(springForward))
	s.Require().NoError(err)
	s.Equal(int64(-4*instant.NanosecondsPerHour), summer)

	str, err := s.resolver.OffsetStringAt(s.eastern, seconds(fallBack))
	s.Require().NoError(err)
	s.Equal("-05:00", str)

	// Sub-second precision survives the second-granular database.
	off, err := s.resolver.OffsetAt(s.eastern, instant.FromEpochNanoseconds(springForward*instant.NanosecondsPerSecond-1))
	s.Require().NoError(err)
	s.Equal(winter, off)

	fixed, err := tz.Fixed(90 * instant.NanosecondsPerMinute)
	s.Require().NoError(err)
	off, err = s.resolver.OffsetAt(fixed, seconds(springForward))
	s.Require().NoError(err)
	s.Equal(int64(90*instant.NanosecondsPerMinute), off)
}

func (s *ResolverSuite) TestCivilTimeAt() {
	got, err := s.resolver.CivilTimeAt(s.eastern, seconds(springForward))
	s.Require().NoError(err)
	s.Equal(wall(2021, 3, 14, 3, 0), got)

	got, err = s.resolver.CivilTimeAt(s.eastern, instant.FromEpochNanoseconds(springForward*instant.NanosecondsPerSecond-1))
	s.Require().NoError(err)
	s.Equal(civil.DateTime{
		Date: civil.Date{Year: 2021, Month: 3, Day: 14},
		Time: civil.Time{Hour: 1, Minute: 59, Second: 59, Millisecond: 999, Microsecond: 999, Nanosecond: 999},
	}, got)

	got, err = s.resolver.CivilTimeAt(tz.UTC, instant.Epoch)
	s.Require().NoError(err)
	s.Equal(wall(1970, 1, 1, 0, 0), got)
}

func (s *ResolverSuite) TestInstantsFor() {
	s.Run("regular time has one instant", func() {
		got, err := s.resolver.InstantsFor(s.eastern, wall(2021, 6, 1, 12, 0))
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal(seconds(1622505600+16*3600), got[0])
	})

	s.Run("spring forward gap has none", func() {
		got, err := s.resolver.InstantsFor(s.eastern, wall(2021, 3, 14, 2, 30))
		s.Require().NoError(err)
		s.Empty(got)
	})

	s.Run("fall back overlap has two in order", func() {
		got, err := s.resolver.InstantsFor(s.eastern, wall(2021, 11, 7, 1, 30))
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal(seconds(fallBack-1800), got[0])
		s.Equal(seconds(fallBack+1800), got[1])
	})

	s.Run("fixed zone", func() {
		z, err := s.resolver.Zone("+01:00")
		s.Require().NoError(err)
		got, err := s.resolver.InstantsFor(z, wall(1970, 1, 1, 1, 0))
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.True(got[0].Equal(instant.Epoch))
	})

	s.Run("invalid date-time", func() {
		_, err := s.resolver.InstantsFor(s.eastern, wall(2021, 2, 30, 0, 0))
		s.Error(err)
	})
}

func (s *ResolverSuite) TestResolve() {
	gap := wall(2021, 3, 14, 2, 30)
	overlap := wall(2021, 11, 7, 1, 30)

	tests := []struct {
		name   string
		dt     civil.DateTime
		policy policy.Disambiguation
		want   instant.Instant
	}{
		{"gap compatible is 03:30", gap, policy.Compatible, seconds(springForward + 1800)},
		{"gap later is 03:30", gap, policy.Later, seconds(springForward + 1800)},
		{"gap earlier is 01:30", gap, policy.Earlier, seconds(springForward - 1800)},
		{"overlap compatible", overlap, policy.Compatible, seconds(fallBack - 1800)},
		{"overlap earlier", overlap, policy.Earlier, seconds(fallBack - 1800)},
		{"overlap later", overlap, policy.Later, seconds(fallBack + 1800)},
		{"overlap earlier first minute", wall(2021, 11, 7, 1, 0), policy.Earlier, seconds(fallBack - 3600)},
		{"overlap later first minute", wall(2021, 11, 7, 1, 0), policy.Later, seconds(fallBack)},
		{"overlap later last minute", wall(2021, 11, 7, 1, 59), policy.Later, seconds(fallBack + 3540)},
		{"after overlap is unique", wall(2021, 11, 7, 2, 0), policy.Earlier, seconds(fallBack + 3600)},
		{"gap earlier first minute", wall(2021, 3, 14, 2, 0), policy.Earlier, seconds(springForward - 3600)},
		{"gap later first minute", wall(2021, 3, 14, 2, 0), policy.Later, seconds(springForward)},
		{"unique reject", wall(2021, 6, 1, 12, 0), policy.RejectAmbiguous, seconds(1622505600 + 16*3600)},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := s.resolver.Resolve(s.eastern, tt.dt, tt.policy)
			s.Require().NoError(err)
			s.Equal(tt.want, got)
		})
	}

	s.Run("compatible gap reads back as 03:30", func() {
		got, err := s.resolver.Resolve(s.eastern, gap, policy.Compatible)
		s.Require().NoError(err)
		local, err := s.resolver.CivilTimeAt(s.eastern, got)
		s.Require().NoError(err)
		s.Equal(wall(2021, 3, 14, 3, 30), local)
	})

	s.Run("reject gap", func() {
		_, err := s.resolver.Resolve(s.eastern, gap, policy.RejectAmbiguous)
		var aerr *errors.AmbiguityError
		s.Require().ErrorAs(err, &aerr)
		s.Empty(aerr.Candidates)
		s.Equal("Test/Eastern", aerr.Zone)
		s.Equal("2021-03-14T02:30:00", aerr.DateTime)
	})

	s.Run("reject overlap", func() {
		_, err := s.resolver.Resolve(s.eastern, overlap, policy.RejectAmbiguous)
		var aerr *errors.AmbiguityError
		s.Require().ErrorAs(err, &aerr)
		s.Len(aerr.Candidates, 2)
	})

	s.Run("reject unique in fold day", func() {
		got, err := s.resolver.Resolve(s.eastern, wall(2021, 11, 7, 3, 0), policy.RejectAmbiguous)
		s.Require().NoError(err)
		s.Equal(seconds(fallBack+2*3600), got)
	})

	s.Run("fixed zone past the upper bound", func() {
		z, err := s.resolver.Zone("+14:00")
		s.Require().NoError(err)

		last, err := s.resolver.Resolve(z, wall(275760, 9, 13, 14, 0), policy.RejectAmbiguous)
		s.Require().NoError(err)
		s.True(last.Equal(instant.Max))

		for _, p := range []policy.Disambiguation{policy.RejectAmbiguous, policy.Compatible, policy.Later} {
			_, err = s.resolver.Resolve(z, wall(275760, 9, 13, 14, 1), p)
			var verr *errors.ValidationError
			s.Require().ErrorAs(err, &verr, "policy %s", p)
			var aerr *errors.AmbiguityError
			s.NotErrorAs(err, &aerr, "policy %s", p)
		}
	})

	s.Run("invalid policy", func() {
		_, err := s.resolver.Resolve(s.eastern, overlap, policy.Disambiguation(7))
		s.Error(err)
	})
}

func (s *ResolverSuite) TestRoundTrip() {
	z, err := s.resolver.Zone("Test/Eastern")
	s.Require().NoError(err)
	for _, start := range []int64{springForward - 3*3600, fallBack - 3*3600} {
		for step := int64(0); step < 6*3600; step += 37 * 60 {
			i := seconds(start + step)
			local, err := s.resolver.CivilTimeAt(z, i)
			s.Require().NoError(err)
			got, err := s.resolver.InstantsFor(z, local)
			s.Require().NoError(err)
			s.Contains(got, i, "instant %s local %s", i, local)
		}
	}
}

func (s *ResolverSuite) TestTransitions() {
	s.Run("next", func() {
		got, ok, err := s.resolver.NextTransition(s.eastern, seconds(1609459200))
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Equal(seconds(springForward), got)
	})

	s.Run("next from a transition finds the following one", func() {
		got, ok, err := s.resolver.NextTransition(s.eastern, seconds(springForward))
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Equal(seconds(fallBack), got)
	})

	s.Run("next beyond lookahead", func() {
		_, ok, err := s.resolver.NextTransition(s.eastern, seconds(fallBack))
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("previous", func() {
		got, ok, err := s.resolver.PreviousTransition(s.eastern, seconds(1622505600))
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Equal(seconds(springForward), got)
	})

	s.Run("previous at a transition is that transition", func() {
		got, ok, err := s.resolver.PreviousTransition(s.eastern, seconds(springForward))
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Equal(seconds(springForward), got)
	})

	s.Run("previous below floor", func() {
		r := tz.NewResolver(zones, tz.WithHistoricalFloor(seconds(946684800)))
		_, ok, err := r.PreviousTransition(s.eastern, seconds(1609459200))
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("fixed zones never transition", func() {
		_, ok, err := s.resolver.NextTransition(tz.UTC, instant.Epoch)
		s.Require().NoError(err)
		s.False(ok)
		_, ok, err = s.resolver.PreviousTransition(tz.UTC, instant.Epoch)
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("two transitions in one window", func() {
		steps, err := s.resolver.Zone("Test/Steps")
		s.Require().NoError(err)

		got, ok, err := s.resolver.NextTransition(steps, seconds(mayFirst-86400))
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Equal(seconds(mayFirst), got)

		got, ok, err = s.resolver.PreviousTransition(steps, seconds(mayFirst+13*86400))
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Equal(seconds(mayFirst+3*86400), got)
	})
}

// =============================================================================
// Offsets and options
// =============================================================================

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"+05:30", 330 * instant.NanosecondsPerMinute, true},
		{"-0800", -480 * instant.NanosecondsPerMinute, true},
		{"+23", 23 * instant.NanosecondsPerHour, true},
		{"−01:15", -75 * instant.NanosecondsPerMinute, true},
		{"+24:00", 0, false},
		{"05:30", 0, false},
		{"+5:30", 0, false},
		{"+05:60", 0, false},
		{"+05:", 0, false},
		{"-12:", 0, false},
		{"+0530", 330 * instant.NanosecondsPerMinute, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := tz.ParseOffset(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatOffset(t *testing.T) {
	assert.Equal(t, "+00:00", tz.FormatOffset(0))
	assert.Equal(t, "+05:30", tz.FormatOffset(330*instant.NanosecondsPerMinute))
	assert.Equal(t, "-09:59", tz.FormatOffset(-(10*instant.NanosecondsPerHour - 1)))
}

func TestFixed(t *testing.T) {
	z, err := tz.Fixed(-instant.NanosecondsPerHour)
	require.NoError(t, err)
	assert.Equal(t, "-01:00", z.String())

	_, err = tz.Fixed(instant.NanosecondsPerDay)
	assert.Error(t, err)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := tz.NewResolver(zones, tz.WithLogger(logger), tz.WithHistoricalFloor(seconds(946684800)))

	z, err := r.Zone("Test/Flat")
	require.NoError(t, err)
	_, ok, err := r.PreviousTransition(z, seconds(1609459200))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "no previous transition")
	assert.Contains(t, buf.String(), "zone=Test/Flat")
}

func TestWithLookahead(t *testing.T) {
	r := tz.NewResolver(zones,
		tz.WithClock(func() time.Time { return time.Unix(1609459200, 0) }),
		tz.WithLookahead(7*24*time.Hour),
	)
	z, err := r.Zone("Test/Eastern")
	require.NoError(t, err)

	_, ok, err := r.NextTransition(z, seconds(1609459200))
	require.NoError(t, err)
	assert.False(t, ok)
}
