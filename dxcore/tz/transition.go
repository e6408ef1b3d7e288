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
	"math/big"

	"dirpx.dev/dxtime/dxcore/model/instant"
)

// NextTransition returns the first instant after i at which the offset of
// z changes. The search probes two-week windows forward until the offset
// differs and then bisects the window down to adjacent nanoseconds. It
// gives up one lookahead period after the current time; ok is false in
// that case and for fixed zones.
func (r *Resolver) NextTransition(z TimeZone, i instant.Instant) (t instant.Instant, ok bool, err error) {
	if z.fixed {
		return instant.Instant{}, false, nil
	}
	limit := new(big.Int).Add(big.NewInt(r.now().UnixNano()), big.NewInt(r.lookahead.Nanoseconds()))

	left := i.EpochNanoseconds()
	leftOff, err := r.offsetAtNs(z, left)
	if err != nil {
		return instant.Instant{}, false, err
	}
	right, rightOff := left, leftOff
	step := big.NewInt(transitionStep)
	for leftOff == rightOff && left.Cmp(limit) < 0 && left.Cmp(instant.MaxNanoseconds) < 0 {
		right = new(big.Int).Add(left, step)
		if right.Cmp(instant.MaxNanoseconds) > 0 {
			right.Set(instant.MaxNanoseconds)
		}
		if rightOff, err = r.offsetAtNs(z, right); err != nil {
			return instant.Instant{}, false, err
		}
		if leftOff == rightOff {
			left = right
		}
	}
	if leftOff == rightOff {
		r.logger.Debug("tz: no next transition", "zone", z.id, "from", i.String())
		return instant.Instant{}, false, nil
	}
	found, err := r.bisect(z, left, right, leftOff, rightOff, true)
	if err != nil {
		return instant.Instant{}, false, err
	}
	return found, true, nil
}

// PreviousTransition returns the last transition of z at or before i,
// searching backward in two-week windows down to the historical floor.
// The returned instant is the first nanosecond of the new offset.
func (r *Resolver) PreviousTransition(z TimeZone, i instant.Instant) (t instant.Instant, ok bool, err error) {
	if z.fixed {
		return instant.Instant{}, false, nil
	}
	floor := r.floor.EpochNanoseconds()

	right := i.EpochNanoseconds()
	rightOff, err := r.offsetAtNs(z, right)
	if err != nil {
		return instant.Instant{}, false, err
	}
	left, leftOff := right, rightOff
	step := big.NewInt(transitionStep)
	for leftOff == rightOff && right.Cmp(floor) > 0 && right.Cmp(instant.MinNanoseconds) > 0 {
		left = new(big.Int).Sub(right, step)
		if left.Cmp(instant.MinNanoseconds) < 0 {
			left.Set(instant.MinNanoseconds)
		}
		if leftOff, err = r.offsetAtNs(z, left); err != nil {
			return instant.Instant{}, false, err
		}
		if leftOff == rightOff {
			right = left
		}
	}
	if leftOff == rightOff {
		r.logger.Debug("tz: no previous transition", "zone", z.id, "from", i.String())
		return instant.Instant{}, false, nil
	}
	found, err := r.bisect(z, left, right, leftOff, rightOff, false)
	if err != nil {
		return instant.Instant{}, false, err
	}
	return found, true, nil
}

// bisect narrows [left, right], whose endpoint offsets differ, until the
// endpoints are adjacent and returns right.
//
// A window can hold more than one transition. When the midpoint offset
// matches neither endpoint, forward searches keep the left half so that
// the earliest change wins, and backward searches keep the right half.
func (r *Resolver) bisect(z TimeZone, left, right *big.Int, leftOff, rightOff int64, forward bool) (instant.Instant, error) {
	left, right = new(big.Int).Set(left), new(big.Int).Set(right)
	one := big.NewInt(1)
	mid := new(big.Int)
	for new(big.Int).Sub(right, left).Cmp(one) > 0 {
		mid.Add(left, right).Rsh(mid, 1)
		off, err := r.offsetAtNs(z, mid)
		if err != nil {
			return instant.Instant{}, err
		}
		var moveLeft bool
		if forward {
			moveLeft = off == leftOff
		} else {
			moveLeft = off != rightOff
		}
		if moveLeft {
			left.Set(mid)
			leftOff = off
		} else {
			right.Set(mid)
			rightOff = off
		}
	}
	return instant.New(right)
}

func (r *Resolver) offsetAtNs(z TimeZone, ns *big.Int) (int64, error) {
	i, err := instant.New(ns)
	if err != nil {
		return 0, err
	}
	return r.OffsetAt(z, i)
}
