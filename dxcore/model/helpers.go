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

package model

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates every element and returns all failures combined,
// each prefixed with its index and type name. It returns nil when every
// element is valid.
//
// T may itself be Value, which lets values of different types be checked
// together:
//
//	model.ValidateAll([]model.Value{largest, smallest, mode})
func ValidateAll[T Value](values []T) error {
	c := rxmerr.NewCollector()

	for i, v := range values {
		if err := v.Validate(); err != nil {
			c.Append(fmt.Errorf("model[%d] (%s): %w", i, v.TypeName(), err))
		}
	}

	return c.Err()
}

// SafeString returns String when unsafe is true and Redacted otherwise.
func SafeString[T Value](v T, unsafe bool) string {
	if unsafe {
		return v.String()
	}
	return v.Redacted()
}

// ToJSON validates v and encodes it as JSON.
func ToJSON[T Value](v T) ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", v.TypeName(), err)
	}
	return json.Marshal(v)
}

// ToYAML validates v and encodes it as YAML.
func ToYAML[T Value](v T) ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", v.TypeName(), err)
	}
	return yaml.Marshal(v)
}
