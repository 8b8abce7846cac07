package util_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tessellated-io/blobtx/util"
)

func TestParseUint64(t *testing.T) {
	value, err := util.ParseUint64(json.Number("100000"))
	require.NoError(t, err)
	require.Equal(t, uint64(100000), value)

	for _, bad := range []string{"", "abc", "1.5", "-3", "18446744073709551616"} {
		_, err := util.ParseUint64(json.Number(bad))
		require.Error(t, err, bad)
	}
}

func TestParseInt64(t *testing.T) {
	value, err := util.ParseInt64(json.Number("-12"))
	require.NoError(t, err)
	require.Equal(t, int64(-12), value)

	value, err = util.ParseInt64(json.Number(""))
	require.NoError(t, err)
	require.Zero(t, value)

	_, err = util.ParseInt64(json.Number("1e3"))
	require.Error(t, err)
}
