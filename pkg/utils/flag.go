package utils

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetTestFlag overrides the flag called `name` with `value` until `t` and its subtests are done. Fails the test if
// the flag isn't registered or rejects the value.
func SetTestFlag(t *testing.T, name, value string) {
	t.Helper()
	registered := flag.Lookup(name)
	require.NotNil(t, registered, "Flag %s not found", name)

	original := registered.Value.String()
	t.Cleanup(func() { require.NoError(t, flag.Set(name, original), "Failed to restore flag %s", name) })
	require.NoError(t, flag.Set(name, value), "Flag %s rejected %q", name, value)
}
