package secure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferRoundTrip(t *testing.T) {
	secret := []byte("OzdmSGV76EmKWVS-MzhWMAa3B4c_oFdbuX8_iSDqbZo=")
	original := append([]byte(nil), secret...)

	buf := New(secret)
	assert.Equal(t, original, secret, "caller data must not be wiped")

	got, err := buf.Bytes()
	require.NoError(t, err)
	assert.Equal(t, original, got)

	got[0] = 'X'
	again, err := buf.Bytes()
	require.NoError(t, err)
	assert.Equal(t, original, again, "Bytes returns an independent copy")
}

func TestBufferEmptyAndDestroyed(t *testing.T) {
	empty := New(nil)
	got, err := empty.Bytes()
	require.NoError(t, err)
	assert.Empty(t, got)

	buf := New([]byte("key material"))
	buf.Destroy()
	buf.Destroy()

	got, err = buf.Bytes()
	require.NoError(t, err)
	assert.Empty(t, got)
}
