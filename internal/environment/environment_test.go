package environment

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOSLookup(t *testing.T) {
	require.NoError(t, os.Setenv("AWS_CREDENTIAL_CORE_TEST_VAR", "hello"))
	defer os.Unsetenv("AWS_CREDENTIAL_CORE_TEST_VAR")

	v, ok := (OS{}).Lookup("AWS_CREDENTIAL_CORE_TEST_VAR")
	require.True(t, ok)
	require.Equal(t, "hello", v)

	_, ok = (OS{}).Lookup("AWS_CREDENTIAL_CORE_TEST_VAR_UNSET")
	require.False(t, ok)
}

func TestMapLookup(t *testing.T) {
	m := Map{"A": "1"}
	v, ok := m.Lookup("A")
	require.True(t, ok)
	require.Equal(t, "1", v)

	_, ok = m.Lookup("B")
	require.False(t, ok)
}
