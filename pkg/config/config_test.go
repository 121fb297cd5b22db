package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/nobletooth/chain/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testName  = flag.String("config_test_name", "", "Flag only used by config tests.")
	testCount = flag.Int("config_test_count", 0, "Flag only used by config tests.")
	testOn    = flag.Bool("config_test_on", false, "Flag only used by config tests.")
)

// resetTestFlags restores the config test flags once the test is done.
func resetTestFlags(t *testing.T) {
	t.Helper()
	utils.SetTestFlag(t, "config_test_name", "")
	utils.SetTestFlag(t, "config_test_count", "0")
	utils.SetTestFlag(t, "config_test_on", "false")
}

func TestSetConfigFlags(t *testing.T) {
	resetTestFlags(t)
	conf, err := parseConfig([]byte(`{
		"config_test_name": "chain",
		"nested": {"deeper": {"config_test_count": 42}},
		"config_test_on": true
	}`))
	require.NoError(t, err)
	require.NoError(t, setConfigFlags(conf))
	assert.Equal(t, "chain", *testName)
	assert.Equal(t, 42, *testCount)
	assert.True(t, *testOn)
}

func TestSetConfigFlags_Errors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		config string
	}{
		{name: "list", config: `{"config_test_name": ["a", "b"]}`},
		{name: "null", config: `{"config_test_name": null}`},
		{name: "duplicate", config: `{"a": {"config_test_count": 1}, "b": {"config_test_count": 2}}`},
		{name: "unknown_flag", config: `{"no_such_flag": 1}`},
		{name: "invalid_value", config: `{"config_test_count": "many"}`},
		{name: "skipped_flag", config: `{"config_file": "other.json"}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			resetTestFlags(t)
			conf, err := parseConfig([]byte(tc.config))
			require.NoError(t, err)
			assert.Error(t, setConfigFlags(conf))
		})
	}

	_, err := parseConfig([]byte(`{"broken": `))
	assert.Error(t, err)
}

func TestInitFlags(t *testing.T) {
	resetTestFlags(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tests": {"config_test_name": "from-file"}}`), 0o600))
	utils.SetTestFlag(t, "config_file", path)

	InitFlags()
	assert.Equal(t, "from-file", *testName)
}

func TestInitFlags_MissingFile(t *testing.T) {
	resetTestFlags(t)
	utils.SetTestFlag(t, "config_file", filepath.Join(t.TempDir(), "missing.json"))
	InitFlags()
	assert.Empty(t, *testName)
}

func TestGetDefinedFlags(t *testing.T) {
	definedFlags, err := getDefinedFlags()
	require.NoError(t, err)
	for _, flagName := range []string{"log_handler_type", "log_level", "address", "list_kind", "keyspace_shard_count"} {
		assert.Contains(t, definedFlags, flagName)
	}

	errs := CollectUnregisteredFlags()
	assert.Len(t, errs, 3) // Only the flags of this test are missing from the default config.
}
