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

package mathx_test

import (
	"math"
	"math/big"
	"testing"

	"dirpx.dev/dxtime/dxcore/internal/mathx"
)

func TestFloorDivMod(t *testing.T) {
	tests := []struct {
		a, b, q, r int64
	}{
		{7, 2, 3, 1},
		{-7, 2, -4, 1},
		{-8, 2, -4, 0},
		{0, 5, 0, 0},
		{-1, 86400, -1, 86399},
	}
	for _, tt := range tests {
		if q := mathx.FloorDiv(tt.a, tt.b); q != tt.q {
			t.Errorf("FloorDiv(%d, %d) = %d, want %d", tt.a, tt.b, q, tt.q)
		}
		if r := mathx.Mod(tt.a, tt.b); r != tt.r {
			t.Errorf("Mod(%d, %d) = %d, want %d", tt.a, tt.b, r, tt.r)
		}
		if got := mathx.FloorDiv(tt.a, tt.b)*tt.b + mathx.Mod(tt.a, tt.b); got != tt.a {
			t.Errorf("FloorDiv*b+Mod = %d, want %d", got, tt.a)
		}
	}
}

func TestBigFloorDivMod(t *testing.T) {
	m := big.NewInt(10)
	for _, a := range []int64{-21, -20, -1, 0, 9, 21} {
		q := mathx.BigFloorDiv(big.NewInt(a), m)
		r := mathx.BigMod(big.NewInt(a), m)
		if q.Int64() != mathx.FloorDiv(a, 10) || r.Int64() != mathx.Mod(a, 10) {
			t.Errorf("a=%d: got q=%s r=%s", a, q, r)
		}
	}
}

func TestSignClamp(t *testing.T) {
	if mathx.Sign(-3) != -1 || mathx.Sign(0) != 0 || mathx.Sign(int64(9)) != 1 {
		t.Error("Sign")
	}
	if mathx.Clamp(13, 1, 12) != 12 || mathx.Clamp(0, 1, 12) != 1 || mathx.Clamp(5, 1, 12) != 5 {
		t.Error("Clamp")
	}
}

func TestBig64(t *testing.T) {
	if v, ok := mathx.Big64(big.NewInt(math.MinInt64)); !ok || v != math.MinInt64 {
		t.Errorf("Big64(MinInt64) = %d, %v", v, ok)
	}
	over := new(big.Int).Add(big.NewInt(math.MaxInt64), big.NewInt(1))
	if _, ok := mathx.Big64(over); ok {
		t.Error("Big64 accepted MaxInt64+1")
	}
}

func TestAddOverflows(t *testing.T) {
	tests := []struct {
		a, b int64
		want bool
	}{
		{math.MaxInt64, 1, true},
		{math.MaxInt64, 0, false},
		{math.MinInt64, -1, true},
		{math.MinInt64, 1, false},
		{-5, 7, false},
	}
	for _, tt := range tests {
		if got := mathx.AddOverflows(tt.a, tt.b); got != tt.want {
			t.Errorf("AddOverflows(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
