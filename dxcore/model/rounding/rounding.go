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

// Package rounding quantizes integers to a multiple of an increment.
//
// All functions are exact. Quantities that are not whole multiples of a
// unit are passed as a rational numerator/denominator pair instead of a
// float, so results never depend on binary floating-point representation.
//
// The four modes of policy.RoundingMode are supported:
//
//	Ceil     toward positive infinity
//	Floor    toward negative infinity
//	Trunc    toward zero
//	Nearest  to the closest multiple, ties away from zero
//
// These functions are modulus-agnostic. Whether an increment is acceptable
// for a given clock unit is checked separately with ValidateIncrement.
package rounding

import (
	"math/big"
	"strconv"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/internal/mathx"
	"dirpx.dev/dxtime/dxcore/model/policy"
)

// ToIncrement rounds q to a multiple of inc using mode.
//
//	ToIncrement(150, 100, policy.Nearest)  // 200
//	ToIncrement(149, 100, policy.Nearest)  // 100
//	ToIncrement(-150, 100, policy.Nearest) // -200
//
// inc MUST be at least 1. A result that does not fit in int64 is reported
// as a *errors.ValidationError.
func ToIncrement(q, inc int64, mode policy.RoundingMode) (int64, error) {
	if inc < 1 {
		return 0, &errors.ValidationError{Type: "Rounding", Field: "Increment", Reason: "must be at least 1", Value: inc}
	}
	if err := mode.Validate(); err != nil {
		return 0, err
	}
	r := quotient(big.NewInt(q), big.NewInt(inc), mode)
	r.Mul(r, big.NewInt(inc))
	v, ok := mathx.Big64(r)
	if !ok {
		return 0, &errors.ValidationError{Type: "Rounding", Field: "Quantity", Reason: "rounded value overflows int64", Value: q}
	}
	return v, nil
}

// BigToIncrement is ToIncrement for arbitrary-precision quantities. It
// returns a new integer; q and inc are not modified.
func BigToIncrement(q, inc *big.Int, mode policy.RoundingMode) (*big.Int, error) {
	return Rational(q, big.NewInt(1), inc, mode)
}

// Rational rounds the fraction num/den to a multiple of inc and returns
// that multiple. den and inc MUST be positive.
//
// Duration rounding uses it to round "3 months and 12 of 30 days" without
// ever forming 3.4 as a float: num = 3*30 + 12, den = 30.
func Rational(num, den, inc *big.Int, mode policy.RoundingMode) (*big.Int, error) {
	if inc.Sign() <= 0 {
		return nil, &errors.ValidationError{Type: "Rounding", Field: "Increment", Reason: "must be at least 1", Value: inc.String()}
	}
	if den.Sign() <= 0 {
		return nil, &errors.ValidationError{Type: "Rounding", Field: "Denominator", Reason: "must be positive", Value: den.String()}
	}
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	d := new(big.Int).Mul(den, inc)
	r := quotient(num, d, mode)
	return r.Mul(r, inc), nil
}

// quotient returns n/d rounded to an integer according to mode. d > 0.
func quotient(n, d *big.Int, mode policy.RoundingMode) *big.Int {
	q, r := new(big.Int), new(big.Int)
	// Euclidean division: r >= 0, so q is the floor for positive d.
	q.DivMod(n, d, r)
	if r.Sign() == 0 {
		return q
	}

	up := false
	switch mode {
	case policy.Floor:
	case policy.Ceil:
		up = true
	case policy.Trunc:
		up = n.Sign() < 0
	case policy.Nearest:
		twice := new(big.Int).Lsh(r, 1)
		switch twice.Cmp(d) {
		case 1:
			up = true
		case 0:
			up = n.Sign() > 0
		}
	}
	if up {
		q.Add(q, big.NewInt(1))
	}
	return q
}

// ValidateIncrement checks that inc is usable for a unit whose next larger
// unit holds dividend of it (24 for hours, 1000 for milliseconds).
//
// inc must be at least 1 and must divide dividend evenly. When inclusive
// is false the increment must also be strictly smaller than dividend, so
// rounding a clock time to "24 hours" is rejected while rounding an
// instant to "86400 seconds" is allowed. A dividend of 0 means the unit
// has no fixed modulus and only the lower bound applies.
func ValidateIncrement(inc, dividend int64, inclusive bool) error {
	if inc < 1 {
		return &errors.ValidationError{Type: "Rounding", Field: "Increment", Reason: "must be at least 1", Value: inc}
	}
	if dividend <= 0 {
		return nil
	}
	maximum := dividend
	if !inclusive {
		maximum--
	}
	if inc > maximum {
		return errors.OutOfRange("Rounding", "Increment", inc, 1, maximum)
	}
	if dividend%inc != 0 {
		return &errors.ValidationError{Type: "Rounding", Field: "Increment", Reason: "must divide " + strconv.FormatInt(dividend, 10) + " evenly", Value: inc}
	}
	return nil
}
