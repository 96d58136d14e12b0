package tiktoken

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Network-dependent success paths (actually fetching a .tiktoken file) are
// integration-level concerns outside this suite; only the fast-fail paths
// for unknown names are exercised here.

func TestForNameUnknownEncodingDoesNotCache(t *testing.T) {
	_, err := ForName(Name("not_a_real_encoding"))
	require.ErrorIs(t, err, ErrUnknownEncoding)
	require.False(t, globalCache().Contains(Name("not_a_real_encoding")))
}

func TestForModelUnknownModelFailsBeforeTouchingCache(t *testing.T) {
	_, err := ForModel("definitely-not-a-model")
	require.ErrorIs(t, err, ErrUnknownModel)
}
