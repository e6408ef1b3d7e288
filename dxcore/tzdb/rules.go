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

package tzdb

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"dirpx.dev/rxmerr"
	"github.com/BurntSushi/toml"
	"github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/model/civil"
	"dirpx.dev/dxtime/dxcore/model/instant"
	"dirpx.dev/dxtime/dxcore/tz"
)

// RulesVersion is the rules file format this package reads. Files with the
// same major version are accepted.
var RulesVersion = semver.MustParse("1.0.0")

// Format selects the encoding of a rules file.
type Format int

const (
	YAML Format = iota
	TOML
)

// FormatOf picks the format from the file extension: ".toml" is TOML and
// everything else is YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOML
	}
	return YAML
}

// RulesFile is the decoded form of a rules file.
//
//	version: 1.0.0
//	zones:
//	  - id: Example/Eastern
//	    aliases: [Example/EST5EDT]
//	    offset: "-05:00"
//	    transitions:
//	      - {at: 1615705200, offset: "-04:00"}
//	      - {at: 1636264800, offset: "-05:00"}
type RulesFile struct {
	Version string     `yaml:"version" toml:"version"`
	Zones   []ZoneRule `yaml:"zones" toml:"zones"`
}

// ZoneRule describes one zone: its offset before the first transition and
// every later change. At is in Unix seconds and must be strictly
// increasing.
type ZoneRule struct {
	ID          string           `yaml:"id" toml:"id"`
	Aliases     []string         `yaml:"aliases,omitempty" toml:"aliases,omitempty"`
	Offset      string           `yaml:"offset" toml:"offset"`
	Transitions []TransitionRule `yaml:"transitions,omitempty" toml:"transitions,omitempty"`
}

// TransitionRule switches the zone to Offset at the Unix second At.
type TransitionRule struct {
	At     int64  `yaml:"at" toml:"at"`
	Offset string `yaml:"offset" toml:"offset"`
}

// Validate reports every problem in the file at once.
func (f RulesFile) Validate() error {
	c := rxmerr.NewCollector()

	v, err := semver.ParseTolerant(f.Version)
	switch {
	case err != nil:
		c.Append(&errors.ValidationError{Type: "RulesFile", Field: "Version", Reason: err.Error(), Value: f.Version})
	case v.Major != RulesVersion.Major:
		c.Append(&errors.ValidationError{
			Type:   "RulesFile",
			Field:  "Version",
			Reason: "unsupported major version, want " + RulesVersion.String(),
			Value:  f.Version,
		})
	}

	seen := make(map[string]bool)
	for i, z := range f.Zones {
		for _, name := range append([]string{z.ID}, z.Aliases...) {
			key := strings.ToLower(name)
			switch {
			case name == "":
				c.Append(fmt.Errorf("zones[%d]: %w", i, &errors.ValidationError{Type: "ZoneRule", Field: "ID", Reason: "must not be empty"}))
			case seen[key]:
				c.Append(fmt.Errorf("zones[%d]: %w", i, &errors.ValidationError{Type: "ZoneRule", Field: "ID", Reason: "duplicate zone name", Value: name}))
			}
			seen[key] = true
		}
		if _, ok := tz.ParseOffset(z.Offset); !ok {
			c.Append(fmt.Errorf("zones[%d]: %w", i, &errors.ParseError{Type: "Offset", Value: z.Offset}))
		}
		for j, t := range z.Transitions {
			if _, ok := tz.ParseOffset(t.Offset); !ok {
				c.Append(fmt.Errorf("zones[%d].transitions[%d]: %w", i, j, &errors.ParseError{Type: "Offset", Value: t.Offset}))
			}
			if j > 0 && t.At <= z.Transitions[j-1].At {
				c.Append(fmt.Errorf("zones[%d].transitions[%d]: %w", i, j,
					&errors.ValidationError{Type: "TransitionRule", Field: "At", Reason: "transitions must be strictly increasing", Value: t.At}))
			}
		}
	}

	return c.Err()
}

type compiledZone struct {
	id      string
	initial int64   // seconds
	at      []int64 // Unix seconds, ascending
	offsets []int64 // seconds, parallel to at
}

func (z *compiledZone) offsetAt(secs int64) int64 {
	n, found := slices.BinarySearch(z.at, secs)
	if found {
		n++
	}
	if n == 0 {
		return z.initial
	}
	return z.offsets[n-1]
}

// Rules is a tz.Database over a fixed set of transition tables. Names are
// matched case-insensitively. A Rules value is immutable.
type Rules struct {
	names map[string]*compiledZone // lower-cased id or alias
}

// NewRules validates f and compiles it.
func NewRules(f RulesFile) (*Rules, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	r := &Rules{names: make(map[string]*compiledZone)}
	for _, z := range f.Zones {
		initial, _ := tz.ParseOffset(z.Offset)
		cz := &compiledZone{id: z.ID, initial: initial / instant.NanosecondsPerSecond}
		for _, t := range z.Transitions {
			off, _ := tz.ParseOffset(t.Offset)
			cz.at = append(cz.at, t.At)
			cz.offsets = append(cz.offsets, off/instant.NanosecondsPerSecond)
		}
		r.names[strings.ToLower(z.ID)] = cz
		for _, alias := range z.Aliases {
			r.names[strings.ToLower(alias)] = cz
		}
	}
	return r, nil
}

// ParseRules decodes data in the given format and compiles it.
func ParseRules(data []byte, format Format) (*Rules, error) {
	var f RulesFile
	switch format {
	case TOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
			return nil, &errors.UnmarshalError{Type: "RulesFile", Data: data, Reason: err.Error()}
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, &errors.UnmarshalError{Type: "RulesFile", Data: data, Reason: err.Error()}
		}
	}
	return NewRules(f)
}

// LoadRules reads a rules file, choosing the format by extension.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tzdb: read rules: %w", err)
	}
	return ParseRules(data, FormatOf(path))
}

// Zones returns the canonical identifiers in sorted order.
func (r *Rules) Zones() []string {
	var ids []string
	for _, z := range r.names {
		if !slices.Contains(ids, z.id) {
			ids = append(ids, z.id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (r *Rules) zone(id string) (*compiledZone, error) {
	z, ok := r.names[strings.ToLower(id)]
	if !ok {
		return nil, &errors.ValidationError{Type: "TimeZone", Reason: "unknown time zone", Value: id}
	}
	return z, nil
}

// Canonical resolves id or one of its aliases to the zone's ID.
func (r *Rules) Canonical(id string) (string, error) {
	z, err := r.zone(id)
	if err != nil {
		return "", err
	}
	return z.id, nil
}

// WallClock applies the offset in force at epochSeconds.
func (r *Rules) WallClock(id string, epochSeconds int64) (civil.DateTime, error) {
	z, err := r.zone(id)
	if err != nil {
		return civil.DateTime{}, err
	}
	return civil.FromEpochSeconds(epochSeconds + z.offsetAt(epochSeconds)), nil
}

var _ tz.Database = (*Rules)(nil)
