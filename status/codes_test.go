package status

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestInformational(t *testing.T) {
	require.True(t, Informational(Continue))
	require.True(t, Informational(SwitchingProtocols))
	require.True(t, Informational(EarlyHints))
	require.False(t, Informational(OK))
	require.False(t, Informational(99))
}

func TestBodyAllowed(t *testing.T) {
	for _, code := range []Code{Continue, SwitchingProtocols, Processing, NoContent, NotModified} {
		require.False(t, BodyAllowed(code), int(code))
	}

	for _, code := range []Code{OK, Created, MovedPermanently, BadRequest, InternalServerError} {
		require.True(t, BodyAllowed(code), int(code))
	}
}
