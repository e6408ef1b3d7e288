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

// Package mathx holds the small integer helpers shared by the civil-time
// packages. Go's / and % truncate toward zero; every carry in dxtime needs
// floor semantics instead.
package mathx

import (
	"math"
	"math/big"

	"golang.org/x/exp/constraints"
)

// FloorDiv returns the quotient of a / b rounded toward negative infinity.
// b MUST be positive.
func FloorDiv[T constraints.Signed](a, b T) T {
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}

// Mod returns the non-negative remainder of a / b, so that
// a == FloorDiv(a, b)*b + Mod(a, b). b MUST be positive.
func Mod[T constraints.Signed](a, b T) T {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// Sign returns -1, 0 or +1.
func Sign[T constraints.Signed](v T) T {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return min(hi, max(lo, v))
}

// Big64 converts b to int64, reporting false when it does not fit.
func Big64(b *big.Int) (int64, bool) {
	if !b.IsInt64() {
		return 0, false
	}
	return b.Int64(), true
}

// BigMod returns the non-negative remainder of a / m for positive m.
// big.Int.Mod already implements Euclidean modulus, which equals floor
// modulus for a positive divisor.
func BigMod(a, m *big.Int) *big.Int {
	return new(big.Int).Mod(a, m)
}

// BigFloorDiv returns floor(a / m) for positive m.
func BigFloorDiv(a, m *big.Int) *big.Int {
	return new(big.Int).Div(a, m)
}

// AddOverflows reports whether a + b overflows int64.
func AddOverflows(a, b int64) bool {
	if b > 0 {
		return a > math.MaxInt64-b
	}
	return a < math.MinInt64-b
}
