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

package tz

import (
	stderrors "errors"
	"log/slog"
	"math/big"
	"slices"
	"strings"
	"time"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/internal/mathx"
	"dirpx.dev/dxtime/dxcore/model"
	"dirpx.dev/dxtime/dxcore/model/civil"
	"dirpx.dev/dxtime/dxcore/model/instant"
	"dirpx.dev/dxtime/dxcore/model/policy"
)

const (
	// DefaultLookahead bounds NextTransition: searching stops this far
	// after the current time.
	DefaultLookahead = 366 * 24 * time.Hour

	// transitionStep is the width of one probe window in the transition
	// search.
	transitionStep = 14 * instant.NanosecondsPerDay
)

// HistoricalFloor is 1847-01-01T00:00:00Z. No zone in the tz database
// changes offset before it, so PreviousTransition never searches past it.
var HistoricalFloor = instant.FromEpochNanoseconds(-3_881_520_000_000_000_000)

// Resolver converts between instants and wall-clock time. It is immutable
// after construction and safe for concurrent use.
type Resolver struct {
	db        Database
	logger    *slog.Logger
	now       func() time.Time
	lookahead time.Duration
	floor     instant.Instant
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for search diagnostics. The default
// discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithClock replaces time.Now as the origin of the NextTransition bound.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// WithLookahead sets how far past the current time NextTransition
// searches.
func WithLookahead(d time.Duration) Option {
	return func(r *Resolver) {
		r.lookahead = d
	}
}

// WithHistoricalFloor sets the instant before which PreviousTransition
// gives up.
func WithHistoricalFloor(floor instant.Instant) Option {
	return func(r *Resolver) {
		r.floor = floor
	}
}

// NewResolver returns a Resolver over db. db may be nil when only fixed
// offset zones are used.
func NewResolver(db Database, opts ...Option) *Resolver {
	r := &Resolver{
		db:        db,
		logger:    slog.New(slog.DiscardHandler),
		now:       time.Now,
		lookahead: DefaultLookahead,
		floor:     HistoricalFloor,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// Zone resolves an identifier. "UTC" and "Z" (any case) are UTC, "+05:30"
// style strings are fixed offsets, anything else is canonicalized through
// the Database. An unknown zone is a *errors.ValidationError.
func (r *Resolver) Zone(id string) (TimeZone, error) {
	if strings.EqualFold(id, "UTC") || strings.EqualFold(id, "Z") {
		return UTC, nil
	}
	if ns, ok := ParseOffset(id); ok {
		return Fixed(ns)
	}
	if r.db == nil {
		return TimeZone{}, unknownZone(id, nil)
	}
	canonical, err := r.db.Canonical(id)
	if err != nil {
		return TimeZone{}, unknownZone(id, err)
	}
	return TimeZone{id: canonical}, nil
}

// OffsetAt returns the UTC offset of z at i in nanoseconds.
//
// For a named zone the Database renders i as local wall-clock time; that
// reading, interpreted as UTC, minus i is the offset.
func (r *Resolver) OffsetAt(z TimeZone, i instant.Instant) (int64, error) {
	if z.fixed {
		return z.offset, nil
	}
	if z.IsZero() || r.db == nil {
		return 0, unknownZone(z.id, nil)
	}
	ns := i.EpochNanoseconds()
	second := big.NewInt(instant.NanosecondsPerSecond)
	secs := mathx.BigFloorDiv(ns, second).Int64()
	sub := mathx.BigMod(ns, second).Int64()

	wall, err := r.db.WallClock(z.id, secs)
	if err != nil {
		return 0, err
	}
	wall.Millisecond = int(sub / 1_000_000)
	wall.Microsecond = int(sub / 1_000 % 1_000)
	wall.Nanosecond = int(sub % 1_000)

	diff := civil.EpochNanoseconds(wall)
	diff.Sub(diff, ns)
	offset, ok := mathx.Big64(diff)
	if !ok || offset <= -instant.NanosecondsPerDay || offset >= instant.NanosecondsPerDay {
		return 0, offsetRangeError(offset)
	}
	return offset, nil
}

// OffsetStringAt returns OffsetAt formatted as "+HH:MM".
func (r *Resolver) OffsetStringAt(z TimeZone, i instant.Instant) (string, error) {
	offset, err := r.OffsetAt(z, i)
	if err != nil {
		return "", err
	}
	return FormatOffset(offset), nil
}

// CivilTimeAt returns the wall-clock date-time of i in z.
func (r *Resolver) CivilTimeAt(z TimeZone, i instant.Instant) (civil.DateTime, error) {
	offset, err := r.OffsetAt(z, i)
	if err != nil {
		return civil.DateTime{}, err
	}
	ns := i.EpochNanoseconds()
	return civil.FromEpochNanoseconds(ns.Add(ns, big.NewInt(offset))), nil
}

// InstantsFor returns every instant whose wall-clock reading in z is dt,
// in ascending order. The result is empty when dt falls into a skipped
// interval (a spring-forward gap) and has two entries when dt is repeated
// (a fall-back overlap).
//
// The offsets one day before and one day after dt, read as UTC, are the
// only candidates; each is kept only if it maps back to dt.
func (r *Resolver) InstantsFor(z TimeZone, dt civil.DateTime) ([]instant.Instant, error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	utc := civil.EpochNanoseconds(dt)

	if z.fixed {
		i, err := instant.New(utc.Sub(utc, big.NewInt(z.offset)))
		if err != nil {
			return nil, nil
		}
		return []instant.Instant{i}, nil
	}

	if err := instant.CheckRange(utc); err != nil {
		return nil, err
	}
	day := big.NewInt(instant.NanosecondsPerDay)
	before := clampInstant(new(big.Int).Sub(utc, day))
	after := clampInstant(new(big.Int).Add(utc, day))

	offBefore, err := r.OffsetAt(z, before)
	if err != nil {
		return nil, err
	}
	offAfter, err := r.OffsetAt(z, after)
	if err != nil {
		return nil, err
	}
	offsets := []int64{offBefore}
	if offAfter != offBefore {
		offsets = append(offsets, offAfter)
	}

	var found []instant.Instant
	for _, off := range offsets {
		candidate, err := instant.New(new(big.Int).Sub(utc, big.NewInt(off)))
		if err != nil {
			continue
		}
		wall, err := r.CivilTimeAt(z, candidate)
		if err != nil {
			return nil, err
		}
		if wall == dt {
			found = append(found, candidate)
		}
	}
	slices.SortFunc(found, instant.Compare)
	return found, nil
}

// Resolve returns the single instant for dt in z chosen by disambiguation.
//
// In a repeated interval Compatible and Earlier pick the first candidate
// and Later the last. In a skipped interval dt is moved by the size of the
// gap: Compatible and Later move it forward and take the later reading, so
// 02:30 in a one-hour spring-forward gap at 02:00 resolves to 03:30;
// Earlier moves it back and takes the earlier reading. RejectAmbiguous
// returns an *errors.AmbiguityError whenever dt does not map to exactly one
// instant. A fixed-offset zone has no gaps, so a date-time it cannot map
// lies outside the instant range and fails with *errors.ValidationError.
func (r *Resolver) Resolve(z TimeZone, dt civil.DateTime, disambiguation policy.Disambiguation) (instant.Instant, error) {
	if err := disambiguation.Validate(); err != nil {
		return instant.Instant{}, err
	}
	candidates, err := r.InstantsFor(z, dt)
	if err != nil {
		return instant.Instant{}, err
	}

	switch {
	case len(candidates) == 1:
		return candidates[0], nil
	case len(candidates) == 0 && z.fixed:
		// Fixed zones have no gaps; dt lies outside the instant range.
		return instant.Instant{}, &errors.ValidationError{Type: "DateTime", Reason: "no instant in " + z.id, Value: dt.String()}
	case disambiguation == policy.RejectAmbiguous:
		return instant.Instant{}, ambiguity(z, dt, candidates)
	case len(candidates) > 1:
		if disambiguation == policy.Later {
			return candidates[len(candidates)-1], nil
		}
		return candidates[0], nil
	}

	utc := civil.EpochNanoseconds(dt)
	day := big.NewInt(instant.NanosecondsPerDay)
	offBefore, err := r.OffsetAt(z, clampInstant(new(big.Int).Sub(utc, day)))
	if err != nil {
		return instant.Instant{}, err
	}
	offAfter, err := r.OffsetAt(z, clampInstant(new(big.Int).Add(utc, day)))
	if err != nil {
		return instant.Instant{}, err
	}
	gap := offAfter - offBefore

	shift := gap
	if disambiguation == policy.Earlier {
		shift = -gap
	}
	moved, err := civil.BalanceDateTime(dt.Year, dt.Month, dt.Day,
		int64(dt.Hour), int64(dt.Minute), int64(dt.Second),
		int64(dt.Millisecond), int64(dt.Microsecond), int64(dt.Nanosecond)+shift)
	if err != nil {
		return instant.Instant{}, err
	}
	candidates, err = r.InstantsFor(z, moved)
	if err != nil {
		return instant.Instant{}, err
	}
	if len(candidates) == 0 {
		r.logger.Warn("tz: no instant after gap shift",
			"zone", z.id,
			"datetime", model.SafeString(dt, false),
			"shift_ns", shift,
		)
		return instant.Instant{}, ambiguity(z, dt, nil)
	}
	if disambiguation == policy.Earlier {
		return candidates[0], nil
	}
	return candidates[len(candidates)-1], nil
}

func clampInstant(ns *big.Int) instant.Instant {
	switch {
	case ns.Cmp(instant.MinNanoseconds) < 0:
		return instant.Min
	case ns.Cmp(instant.MaxNanoseconds) > 0:
		return instant.Max
	}
	i, _ := instant.New(ns)
	return i
}

func ambiguity(z TimeZone, dt civil.DateTime, candidates []instant.Instant) error {
	e := &errors.AmbiguityError{Zone: z.id, DateTime: dt.String()}
	for _, c := range candidates {
		e.Candidates = append(e.Candidates, c.String())
	}
	return e
}

func unknownZone(id string, cause error) error {
	var verr *errors.ValidationError
	if stderrors.As(cause, &verr) {
		return verr
	}
	reason := "unknown time zone"
	if cause != nil {
		reason += ": " + cause.Error()
	}
	return &errors.ValidationError{Type: "TimeZone", Reason: reason, Value: id}
}

func offsetRangeError(offset int64) error {
	return &errors.ValidationError{Type: "TimeZone", Field: "Offset", Reason: "offset must be less than 24 hours", Value: offset}
}
