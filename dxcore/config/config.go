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

// Package config loads the settings that assemble a zone database and a
// resolver: which database to read, how much to cache, how far transition
// searches may run and how verbosely to log.
//
// Files are YAML (.yaml, .yml) or TOML (.toml). Missing keys keep the
// values from Default.
package config

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"dirpx.dev/dxtime/dxcore/errors"
)

// SearchPath is the file looked up under the XDG config directories when
// no explicit path is given.
const SearchPath = "dxtime/config.yaml"

// Database kinds.
const (
	DatabaseHost  = "host"
	DatabaseRules = "rules"
)

type Config struct {
	Database    Database    `yaml:"database" toml:"database"`
	Cache       Cache       `yaml:"cache" toml:"cache"`
	Transitions Transitions `yaml:"transitions" toml:"transitions"`
	Log         Log         `yaml:"log" toml:"log"`
}

// Database selects the zone data source. Path is required for "rules".
type Database struct {
	Kind string `yaml:"kind" toml:"kind"`
	Path string `yaml:"path,omitempty" toml:"path,omitempty"`
}

// Cache sizes the LRU in front of the database. Size 0 disables it.
// Preload lists zones resolved at startup.
type Cache struct {
	Size    int      `yaml:"size" toml:"size"`
	Preload []string `yaml:"preload,omitempty" toml:"preload,omitempty"`
}

// Transitions bounds transition searches. LookaheadDays is counted from
// the current time; FloorYear is the first year searched backward.
type Transitions struct {
	LookaheadDays int `yaml:"lookahead_days" toml:"lookahead_days"`
	FloorYear     int `yaml:"floor_year" toml:"floor_year"`
}

// Log sets the slog level: debug, info, warn or error.
type Log struct {
	Level string `yaml:"level" toml:"level"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Database:    Database{Kind: DatabaseHost},
		Cache:       Cache{Size: 4096},
		Transitions: Transitions{LookaheadDays: 366, FloorYear: 1847},
		Log:         Log{Level: "warn"},
	}
}

// Load reads path over Default. An empty path searches the XDG config
// directories for SearchPath and returns Default when nothing is there.
func Load(path string) (Config, error) {
	if path == "" {
		found, err := xdg.SearchConfigFile(SearchPath)
		if err != nil {
			return Default(), nil
		}
		path = found
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data, strings.EqualFold(filepath.Ext(path), ".toml"))
	if err != nil {
		return Config{}, err
	}
	if cfg.Database.Path != "" && !filepath.IsAbs(cfg.Database.Path) {
		cfg.Database.Path = filepath.Join(filepath.Dir(path), cfg.Database.Path)
	}
	return cfg, nil
}

// Parse decodes YAML, or TOML when isTOML is set, over Default and
// validates the result.
func Parse(data []byte, isTOML bool) (Config, error) {
	cfg := Default()
	if isTOML {
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return Config{}, &errors.UnmarshalError{Type: "Config", Data: data, Reason: err.Error()}
		}
	} else if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, &errors.UnmarshalError{Type: "Config", Data: data, Reason: err.Error()}
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var err error
	switch c.Database.Kind {
	case DatabaseHost:
	case DatabaseRules:
		if c.Database.Path == "" {
			err = multierr.Append(err, &errors.ValidationError{Type: "Config", Field: "Database.Path", Reason: "required for rules databases"})
		}
	default:
		err = multierr.Append(err, &errors.ValidationError{Type: "Config", Field: "Database.Kind", Reason: "must be host or rules", Value: c.Database.Kind})
	}
	if c.Cache.Size < 0 {
		err = multierr.Append(err, &errors.ValidationError{Type: "Config", Field: "Cache.Size", Reason: "must not be negative", Value: c.Cache.Size})
	}
	if c.Transitions.LookaheadDays < 1 {
		err = multierr.Append(err, &errors.ValidationError{Type: "Config", Field: "Transitions.LookaheadDays", Reason: "must be positive", Value: c.Transitions.LookaheadDays})
	}
	if c.Transitions.FloorYear < -271820 || c.Transitions.FloorYear > 275759 {
		err = multierr.Append(err, errors.OutOfRange("Config", "Transitions.FloorYear", int64(c.Transitions.FloorYear), -271820, 275759))
	}
	if _, lerr := c.Log.level(); lerr != nil {
		err = multierr.Append(err, lerr)
	}
	return err
}

// Lookahead returns LookaheadDays as a duration.
func (t Transitions) Lookahead() time.Duration {
	return time.Duration(t.LookaheadDays) * 24 * time.Hour
}

func (l Log) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, &errors.ValidationError{Type: "Config", Field: "Log.Level", Reason: "unknown level", Value: l.Level}
	}
	return level, nil
}

// Logger returns a text logger writing to w at the configured level.
func (l Log) Logger(w io.Writer) *slog.Logger {
	level, err := l.level()
	if err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
