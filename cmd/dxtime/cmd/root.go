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

// Package cmd implements the dxtime command tree.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"dirpx.dev/dxtime/dxcore/config"
	"dirpx.dev/dxtime/dxcore/model"
	"dirpx.dev/dxtime/dxcore/model/civil"
	"dirpx.dev/dxtime/dxcore/model/instant"
	"dirpx.dev/dxtime/dxcore/tz"
	"dirpx.dev/dxtime/dxcore/tzdb"
)

// app carries what the subcommands share. The resolver is built lazily
// so that pure arithmetic commands never touch zone data.
type app struct {
	cfgFile  string
	output   string
	cfg      config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	resolver *tz.Resolver
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "dxtime",
		Short: "Calendar-aware civil time arithmetic",
		Long: `dxtime converts between instants and wall-clock time in IANA time zones,
finds zone transitions, and computes, balances and rounds ISO-8601 durations.

Instants are written as epoch nanoseconds ("1615705200000000000") or as a
UTC date-time with a Z suffix ("2021-03-14T07:00:00Z").`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.reportMetrics()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/"+config.SearchPath+")")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", outputText, "result format for date and duration results: text, json or yaml")

	root.AddCommand(
		a.offsetCommand(),
		a.localCommand(),
		a.resolveCommand(),
		a.transitionsCommand(),
		a.diffCommand(),
		a.betweenCommand(),
		a.roundCommand(),
		a.addCommand(),
		versionCommand(),
	)
	return root
}

func (a *app) load(stderr io.Writer) error {
	switch a.output {
	case outputText, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unknown output format %q", a.output)
	}
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Log.Logger(stderr)
	a.registry = prometheus.NewRegistry()
	return nil
}

func (a *app) zoneResolver(ctx context.Context) (*tz.Resolver, error) {
	if a.resolver != nil {
		return a.resolver, nil
	}

	var db tz.Database
	switch a.cfg.Database.Kind {
	case config.DatabaseRules:
		rules, err := tzdb.LoadRules(a.cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		db = rules
	default:
		db = tzdb.NewHost()
	}

	if a.cfg.Cache.Size > 0 {
		cache, err := tzdb.NewCache(db, a.cfg.Cache.Size, tzdb.WithMetrics(tzdb.NewMetrics(a.registry)))
		if err != nil {
			return nil, err
		}
		if err := cache.Warm(ctx, a.cfg.Cache.Preload); err != nil {
			return nil, fmt.Errorf("preload zones: %w", err)
		}
		db = cache
	}

	floor, err := civil.ToInstant(civil.DateTime{Date: civil.Date{Year: a.cfg.Transitions.FloorYear, Month: 1, Day: 1}})
	if err != nil {
		return nil, err
	}
	a.resolver = tz.NewResolver(db,
		tz.WithLogger(a.logger),
		tz.WithLookahead(a.cfg.Transitions.Lookahead()),
		tz.WithHistoricalFloor(floor),
	)
	return a.resolver, nil
}

// Result formats selected with --output.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// writeValue prints a single result in the requested format. JSON and YAML
// carry the value's ISO text form as a string.
func writeValue[T model.Value](cmd *cobra.Command, format string, v T) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case outputJSON:
		if data, err = model.ToJSON(v); err == nil {
			data = append(data, '\n')
		}
	case outputYAML:
		data, err = model.ToYAML(v)
	default:
		data = []byte(v.String() + "\n")
	}
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// reportMetrics logs the cache counters at debug level.
func (a *app) reportMetrics() {
	if a.registry == nil || !a.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	families, err := a.registry.Gather()
	if err != nil {
		a.logger.Debug("gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			attrs := []any{"metric", mf.GetName(), "value", m.GetCounter().GetValue()}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			a.logger.Debug("cache", attrs...)
		}
	}
}

// parseInstant accepts epoch nanoseconds or "YYYY-MM-DDTHH:MM:SS[.f]Z".
func parseInstant(s string) (instant.Instant, error) {
	if rest, ok := strings.CutSuffix(s, "Z"); ok {
		dt, err := civil.ParseDateTime(rest)
		if err != nil {
			return instant.Instant{}, err
		}
		return civil.ToInstant(dt)
	}
	return instant.Parse(s)
}
