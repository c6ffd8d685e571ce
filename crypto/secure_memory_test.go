package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecureMemoryHandling(t *testing.T) {
	kp, err := GenerateBoxKeyPair()
	require.NoError(t, err)

	var privateCopy [32]byte
	copy(privateCopy[:], kp.Private[:])
	require.False(t, isZeroKey(kp.Private), "private key must not be all zeros before wiping")

	require.NoError(t, SecureWipe(kp.Private[:]))
	require.True(t, isZeroKey(kp.Private), "private key must be zeroed after SecureWipe")
	require.NotEqual(t, privateCopy, kp.Private)

	kp2, err := GenerateBoxKeyPair()
	require.NoError(t, err)
	require.NoError(t, WipeBoxKeyPair(kp2))
	require.True(t, isZeroKey(kp2.Private))

	sk, err := GenerateSigningKeyPair()
	require.NoError(t, err)
	require.NoError(t, WipeSigningKeyPair(sk))
	require.True(t, isZeroKey(sk.Private))

	testData := []byte{1, 2, 3, 4, 5}
	ZeroBytes(testData)
	require.Equal(t, []byte{0, 0, 0, 0, 0}, testData)

	require.Error(t, SecureWipe(nil))
	require.Error(t, WipeBoxKeyPair(nil))
	require.Error(t, WipeSigningKeyPair(nil))
}
