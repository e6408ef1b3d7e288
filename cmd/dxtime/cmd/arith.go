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

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"dirpx.dev/dxtime/dxcore/model/calendar"
	"dirpx.dev/dxtime/dxcore/model/civil"
	"dirpx.dev/dxtime/dxcore/model/duration"
	"dirpx.dev/dxtime/dxcore/model/policy"
)

// roundingFlags are shared by the commands that round a result.
type roundingFlags struct {
	largest   string
	smallest  string
	increment int64
	mode      string
}

func (f *roundingFlags) register(cmd *cobra.Command, largest, smallest, mode string) {
	cmd.Flags().StringVar(&f.largest, "largest-unit", largest, "largest unit in the result")
	cmd.Flags().StringVar(&f.smallest, "smallest-unit", smallest, "unit the result is rounded to")
	cmd.Flags().Int64Var(&f.increment, "increment", 1, "rounding increment in the smallest unit")
	cmd.Flags().StringVar(&f.mode, "mode", mode, "rounding mode: nearest, ceil, floor or trunc")
}

// options parses the flags over defaults. An empty largest keeps the
// default largest unit.
func (f *roundingFlags) options(defaults func(policy.Unit) duration.DifferenceOptions) (duration.DifferenceOptions, error) {
	smallest, err := policy.ParseUnit(f.smallest)
	if err != nil {
		return duration.DifferenceOptions{}, err
	}
	opts := defaults(smallest)
	if f.largest != "" {
		if opts.Largest, err = policy.ParseUnit(f.largest); err != nil {
			return duration.DifferenceOptions{}, err
		}
	}
	if opts.Mode, err = policy.ParseRoundingMode(f.mode); err != nil {
		return duration.DifferenceOptions{}, err
	}
	opts.Increment = f.increment
	return opts, nil
}

func (a *app) diffCommand() *cobra.Command {
	var flags roundingFlags
	cmd := &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Calendar difference between two dates or date-times",
		Long: `Diff prints to minus from as an ISO-8601 duration. Plain dates are compared
on the ISO calendar; date-times also carry a clock difference, which is
rounded with --smallest-unit, --increment and --mode.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var d duration.Duration
			if strings.Contains(args[0], "T") || strings.Contains(args[1], "T") {
				from, err := civil.ParseDateTime(args[0])
				if err != nil {
					return err
				}
				to, err := civil.ParseDateTime(args[1])
				if err != nil {
					return err
				}
				opts, err := flags.options(duration.DateTimeDifferenceDefaults)
				if err != nil {
					return err
				}
				if d, err = duration.DifferenceDateTime(from, to, calendar.ISO{}, opts); err != nil {
					return err
				}
			} else {
				from, err := civil.ParseDate(args[0])
				if err != nil {
					return err
				}
				to, err := civil.ParseDate(args[1])
				if err != nil {
					return err
				}
				largest := policy.Days
				if flags.largest != "" {
					if largest, err = policy.ParseUnit(flags.largest); err != nil {
						return err
					}
				}
				if d, err = (calendar.ISO{}).DateDifference(from, to, largest); err != nil {
					return err
				}
			}
			return writeValue(cmd, a.output, d)
		},
	}
	flags.register(cmd, "", policy.Nanoseconds.String(), policy.Trunc.String())
	return cmd
}

func (a *app) betweenCommand() *cobra.Command {
	var flags roundingFlags
	cmd := &cobra.Command{
		Use:   "between <from> <to>",
		Short: "Exact time elapsed between two instants",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseInstant(args[0])
			if err != nil {
				return err
			}
			to, err := parseInstant(args[1])
			if err != nil {
				return err
			}
			opts, err := flags.options(duration.InstantDifferenceDefaults)
			if err != nil {
				return err
			}
			d, err := duration.Between(from, to, opts)
			if err != nil {
				return err
			}
			return writeValue(cmd, a.output, d)
		},
	}
	flags.register(cmd, "", policy.Nanoseconds.String(), policy.Trunc.String())
	return cmd
}

func (a *app) roundCommand() *cobra.Command {
	var (
		flags      roundingFlags
		relativeTo string
	)
	cmd := &cobra.Command{
		Use:   "round <duration>",
		Short: "Round an ISO-8601 duration",
		Long: `Round rounds a duration to a multiple of --increment --smallest-unit.
Rounding to years, months or weeks needs --relative-to, the date-time the
duration is measured from.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := duration.Parse(args[0])
			if err != nil {
				return err
			}
			unit, err := policy.ParseUnit(flags.smallest)
			if err != nil {
				return err
			}
			mode, err := policy.ParseRoundingMode(flags.mode)
			if err != nil {
				return err
			}
			opts := duration.Options{Unit: unit, Increment: flags.increment, Mode: mode}
			if relativeTo != "" {
				dt, err := civil.ParseDateTime(relativeTo)
				if err != nil {
					return err
				}
				opts.RelativeTo = &duration.Anchor{DateTime: dt, Calendar: calendar.ISO{}}
			}
			rounded, err := duration.Round(d, opts)
			if err != nil {
				return err
			}
			return writeValue(cmd, a.output, rounded)
		},
	}
	cmd.Flags().StringVar(&flags.smallest, "smallest-unit", policy.Seconds.String(), "unit to round to")
	cmd.Flags().Int64Var(&flags.increment, "increment", 1, "rounding increment")
	cmd.Flags().StringVar(&flags.mode, "mode", policy.Nearest.String(), "rounding mode: nearest, ceil, floor or trunc")
	cmd.Flags().StringVar(&relativeTo, "relative-to", "", "anchor date-time for calendar units")
	return cmd
}

func (a *app) addCommand() *cobra.Command {
	var overflow string
	cmd := &cobra.Command{
		Use:   "add <date> <duration>",
		Short: "Add an ISO-8601 duration to a date",
		Long: `Add applies years and months first, clamping or rejecting an invalid day
according to --overflow, then weeks and days. Clock fields are balanced into
whole days.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := civil.ParseDate(args[0])
			if err != nil {
				return err
			}
			d, err := duration.Parse(args[1])
			if err != nil {
				return err
			}
			o, err := policy.ParseOverflow(overflow)
			if err != nil {
				return err
			}
			got, err := (calendar.ISO{}).DateAdd(date, d, o)
			if err != nil {
				return err
			}
			return writeValue(cmd, a.output, got)
		},
	}
	cmd.Flags().StringVar(&overflow, "overflow", policy.Constrain.String(), "constrain or reject")
	return cmd
}
