package credential

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewStore(keyring.NewArrayKeyring(nil))

	got, err := s.Session()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Set(SessionKey, "cookie-value"))
	got, err = s.Session()
	require.NoError(t, err)
	assert.Equal(t, "cookie-value", got)

	require.NoError(t, s.Delete(SessionKey))
	got, err = s.Session()
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.NoError(t, s.Delete(SessionKey), "deleting twice is fine")
}
