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
	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/model/policy"
	"dirpx.dev/dxtime/dxcore/model/rounding"
)

// RoundTime rounds t to a multiple of increment units.
//
// The fields at and below unit are combined into one nanosecond quantity,
// rounded, and expanded again through BalanceTime; fields above unit are
// kept. Rounding to Days folds the whole time into a day carry of 0 or 1
// and returns midnight. The increment must divide the next larger unit
// (15 minutes, 250 milliseconds) and, for Days, must be 1.
func RoundTime(t Time, unit policy.Unit, increment int64, mode policy.RoundingMode) (int64, Time, error) {
	if !unit.Valid() || unit.Larger(policy.Days) {
		return 0, Time{}, &errors.ValidationError{Type: "Time", Field: "Unit", Reason: "must be days or smaller", Value: unit.String()}
	}
	var err error
	if unit == policy.Days {
		err = rounding.ValidateIncrement(increment, 1, true)
	} else {
		err = rounding.ValidateIncrement(increment, unit.Modulus(), false)
	}
	if err != nil {
		return 0, Time{}, err
	}

	fields := [6]int64{int64(t.Hour), int64(t.Minute), int64(t.Second), int64(t.Millisecond), int64(t.Microsecond), int64(t.Nanosecond)}
	first := 0
	if unit != policy.Days {
		first = int(unit - policy.Hours)
	}
	var quantity int64
	for i := first; i < len(fields); i++ {
		quantity = quantity*clockModulus[i] + fields[i]
	}

	unitNs := unit.Nanoseconds()
	rounded, err := rounding.ToIncrement(quantity, unitNs*increment, mode)
	if err != nil {
		return 0, Time{}, err
	}
	result := rounded / unitNs

	if unit == policy.Days {
		return result, Midnight, nil
	}
	fields[first] = result
	for i := first + 1; i < len(fields); i++ {
		fields[i] = 0
	}
	return BalanceTime(fields[0], fields[1], fields[2], fields[3], fields[4], fields[5])
}

// clockModulus[i] is how many of field i make one of field i-1.
var clockModulus = [6]int64{24, 60, 60, 1000, 1000, 1000}
