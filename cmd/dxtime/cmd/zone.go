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
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"dirpx.dev/dxtime/dxcore/model/civil"
	"dirpx.dev/dxtime/dxcore/model/instant"
	"dirpx.dev/dxtime/dxcore/model/policy"
	"dirpx.dev/dxtime/dxcore/tz"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

func (a *app) zoneAndInstant(cmd *cobra.Command, args []string) (*tz.Resolver, tz.TimeZone, instant.Instant, error) {
	r, err := a.zoneResolver(cmd.Context())
	if err != nil {
		return nil, tz.TimeZone{}, instant.Instant{}, err
	}
	z, err := r.Zone(args[0])
	if err != nil {
		return nil, tz.TimeZone{}, instant.Instant{}, err
	}
	i, err := parseInstant(args[1])
	if err != nil {
		return nil, tz.TimeZone{}, instant.Instant{}, err
	}
	return r, z, i, nil
}

func (a *app) offsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "offset <zone> <instant>",
		Short: "Print the UTC offset of a zone at an instant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, z, i, err := a.zoneAndInstant(cmd, args)
			if err != nil {
				return err
			}
			offset, err := r.OffsetStringAt(z, i)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), offset)
			return nil
		},
	}
}

func (a *app) localCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "local <zone> <instant>",
		Short: "Print the wall-clock time of an instant in a zone",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, z, i, err := a.zoneAndInstant(cmd, args)
			if err != nil {
				return err
			}
			line, err := zonedString(r, z, i)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
}

func (a *app) resolveCommand() *cobra.Command {
	var disambiguation string
	cmd := &cobra.Command{
		Use:   "resolve <zone> <date-time>",
		Short: "Find the instant a wall-clock time denotes in a zone",
		Long: `Resolve maps a wall-clock date-time to an instant. In a repeated hour the
disambiguation policy picks the earlier or later reading; in a skipped hour
the time is moved by the length of the gap. "reject" fails in both cases.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			policyValue, err := policy.ParseDisambiguation(disambiguation)
			if err != nil {
				return err
			}
			r, err := a.zoneResolver(cmd.Context())
			if err != nil {
				return err
			}
			z, err := r.Zone(args[0])
			if err != nil {
				return err
			}
			dt, err := civil.ParseDateTime(args[1])
			if err != nil {
				return err
			}
			i, err := r.Resolve(z, dt, policyValue)
			if err != nil {
				return err
			}
			line, err := zonedString(r, z, i)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i.String(), line)
			return nil
		},
	}
	cmd.Flags().StringVar(&disambiguation, "disambiguation", policy.CompatibleStr, "compatible, earlier, later or reject")
	return cmd
}

func (a *app) transitionsCommand() *cobra.Command {
	var (
		previous bool
		count    int
	)
	cmd := &cobra.Command{
		Use:   "transitions <zone> <instant>",
		Short: "List offset changes after (or before) an instant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}
			r, z, from, err := a.zoneAndInstant(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-24s %s", "INSTANT", "LOCAL")))
			for range count {
				var (
					t  instant.Instant
					ok bool
				)
				if previous {
					t, ok, err = r.PreviousTransition(z, from)
				} else {
					t, ok, err = r.NextTransition(z, from)
				}
				if err != nil {
					return err
				}
				if !ok {
					break
				}
				line, err := zonedString(r, z, t)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-24s %s\n", t.String(), line)

				from = t
				if previous {
					// PreviousTransition includes its argument.
					if from, err = t.AddNanoseconds(-1); err != nil {
						break
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&previous, "previous", false, "search backward")
	cmd.Flags().IntVar(&count, "count", 1, "number of transitions to list")
	return cmd
}

// zonedString renders i as "2021-03-14T03:00:00-04:00[America/New_York]".
func zonedString(r *tz.Resolver, z tz.TimeZone, i instant.Instant) (string, error) {
	local, err := r.CivilTimeAt(z, i)
	if err != nil {
		return "", err
	}
	offset, err := r.OffsetStringAt(z, i)
	if err != nil {
		return "", err
	}
	return local.String() + offset + "[" + z.ID() + "]", nil
}
