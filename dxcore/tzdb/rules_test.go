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

package tzdb_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dxtime/dxcore/errors"
	"dirpx.dev/dxtime/dxcore/model/civil"
	"dirpx.dev/dxtime/dxcore/tzdb"
)

const rulesYAML = `
version: 1.2.0
zones:
  - id: Example/Eastern
    aliases: [Example/EST5EDT]
    offset: "-05:00"
    transitions:
      - {at: 1615705200, offset: "-04:00"}
      - {at: 1636264800, offset: "-05:00"}
  - id: Example/Fixed
    offset: "+03:00"
`

const rulesTOML = `
version = "1.0.0"

[[zones]]
id = "Example/Eastern"
offset = "-05:00"

  [[zones.transitions]]
  at = 1615705200
  offset = "-04:00"

  [[zones.transitions]]
  at = 1636264800
  offset = "-05:00"
`

func TestParseRules(t *testing.T) {
	for name, tc := range map[string]struct {
		data   string
		format tzdb.Format
	}{
		"yaml": {rulesYAML, tzdb.YAML},
		"toml": {rulesTOML, tzdb.TOML},
	} {
		t.Run(name, func(t *testing.T) {
			r, err := tzdb.ParseRules([]byte(tc.data), tc.format)
			require.NoError(t, err)

			id, err := r.Canonical("example/eastern")
			require.NoError(t, err)
			assert.Equal(t, "Example/Eastern", id)

			got, err := r.WallClock(id, 1615705199)
			require.NoError(t, err)
			assert.Equal(t, civil.Time{Hour: 1, Minute: 59, Second: 59}, got.Time)

			got, err = r.WallClock(id, 1615705200)
			require.NoError(t, err)
			assert.Equal(t, civil.Time{Hour: 3}, got.Time)

			got, err = r.WallClock(id, 1636264800)
			require.NoError(t, err)
			assert.Equal(t, civil.Time{Hour: 1}, got.Time)
		})
	}
}

func TestRules_Aliases(t *testing.T) {
	r, err := tzdb.ParseRules([]byte(rulesYAML), tzdb.YAML)
	require.NoError(t, err)

	id, err := r.Canonical("EXAMPLE/est5edt")
	require.NoError(t, err)
	assert.Equal(t, "Example/Eastern", id)
	assert.Equal(t, []string{"Example/Eastern", "Example/Fixed"}, r.Zones())

	_, err = r.Canonical("Example/Nowhere")
	var verr *errors.ValidationError
	assert.ErrorAs(t, err, &verr)

	got, err := r.WallClock("Example/Fixed", 0)
	require.NoError(t, err)
	assert.Equal(t, civil.Time{Hour: 3}, got.Time)
}

func TestRulesFile_Validate(t *testing.T) {
	f := tzdb.RulesFile{
		Version: "2.0.0",
		Zones: []tzdb.ZoneRule{
			{ID: "A", Offset: "+25:00"},
			{ID: "a", Offset: "+01:00", Transitions: []tzdb.TransitionRule{
				{At: 10, Offset: "+02:00"},
				{At: 10, Offset: "nope"},
			}},
		},
	}
	err := f.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "unsupported major version")
	assert.Contains(t, msg, "+25:00")
	assert.Contains(t, msg, "duplicate zone name")
	assert.Contains(t, msg, "strictly increasing")
	assert.Contains(t, msg, "nope")

	_, err = tzdb.NewRules(f)
	assert.Error(t, err)

	_, err = tzdb.NewRules(tzdb.RulesFile{Version: "not-a-version"})
	assert.Error(t, err)
}

func TestParseRules_Malformed(t *testing.T) {
	_, err := tzdb.ParseRules([]byte("version: [1"), tzdb.YAML)
	var uerr *errors.UnmarshalError
	assert.ErrorAs(t, err, &uerr)

	_, err = tzdb.ParseRules([]byte("version: 1.0.0\nzonez: []\n"), tzdb.YAML)
	assert.ErrorAs(t, err, &uerr)

	_, err = tzdb.ParseRules([]byte("version = "), tzdb.TOML)
	assert.ErrorAs(t, err, &uerr)
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "zones.yaml")
	tomlPath := filepath.Join(dir, "zones.TOML")
	require.NoError(t, os.WriteFile(yamlPath, []byte(rulesYAML), 0o600))
	require.NoError(t, os.WriteFile(tomlPath, []byte(rulesTOML), 0o600))

	assert.Equal(t, tzdb.YAML, tzdb.FormatOf(yamlPath))
	assert.Equal(t, tzdb.TOML, tzdb.FormatOf(tomlPath))

	for _, path := range []string{yamlPath, tomlPath} {
		r, err := tzdb.LoadRules(path)
		require.NoError(t, err, path)
		assert.Contains(t, r.Zones(), "Example/Eastern")
	}

	_, err := tzdb.LoadRules(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
