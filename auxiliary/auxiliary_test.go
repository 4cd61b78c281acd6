package auxiliary

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	plaintext := []byte("guardian share: 123456789")
	sealed, err := Seal(rand.Reader, kp.Public, plaintext)
	require.NoError(t, err)

	got, err := kp.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestOpenFailsForWrongRecipient(t *testing.T) {
	kp1, err := GenerateKeyPair(rand.Reader)
	require.NoError(t, err)
	kp2, err := GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	sealed, err := Seal(rand.Reader, kp1.Public, []byte("secret"))
	require.NoError(t, err)

	_, err = kp2.Open(sealed)
	require.Error(t, err)
}

func TestPublicBytesRoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	b, err := kp.PublicBytes()
	require.NoError(t, err)

	pub, err := PublicFromBytes(b)
	require.NoError(t, err)
	require.True(t, pub.IsEqual(kp.Public))
}
