package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateBoxKeyPair(t *testing.T) {
	keyPair, err := GenerateBoxKeyPair()
	require.NoError(t, err)
	require.NotNil(t, keyPair)
	require.False(t, isZeroKey(keyPair.Public))
	require.False(t, isZeroKey(keyPair.Private))

	keyPair2, err := GenerateBoxKeyPair()
	require.NoError(t, err)
	require.NotEqual(t, keyPair.Public, keyPair2.Public)
}

func TestBoxKeyPairFromSecretKey(t *testing.T) {
	cases := []struct {
		name      string
		secretKey [32]byte
		wantError bool
	}{
		{
			name:      "valid key",
			secretKey: [32]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32},
		},
		{
			name:      "zero key",
			secretKey: [32]byte{},
			wantError: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			keyPair, err := BoxKeyPairFromSecretKey(tc.secretKey)
			if tc.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.False(t, isZeroKey(keyPair.Public))
			require.Equal(t, tc.secretKey, keyPair.Private)
		})
	}
}

func TestGenerateNonce(t *testing.T) {
	nonce, err := GenerateNonce()
	require.NoError(t, err)
	require.NotEqual(t, Nonce{}, nonce)

	nonce2, err := GenerateNonce()
	require.NoError(t, err)
	require.NotEqual(t, nonce, nonce2)
}

func TestSealOpenAfterPrecomputation(t *testing.T) {
	sender, err := GenerateBoxKeyPair()
	require.NoError(t, err)
	recipient, err := GenerateBoxKeyPair()
	require.NoError(t, err)

	sealKey := Precompute(recipient.Public, sender.Private)
	openKey := Precompute(sender.Public, recipient.Private)

	nonce, err := GenerateNonce()
	require.NoError(t, err)

	testCases := []struct {
		name    string
		message []byte
	}{
		{"normal message", []byte("Hello, this is a test message!")},
		{"empty message", []byte{}},
		{"binary data", []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD}},
		{"long message", bytes.Repeat([]byte("A"), 1024)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ciphertext := SealAfterPrecomputation(tc.message, nonce, sealKey)
			decrypted, err := OpenAfterPrecomputation(ciphertext, nonce, openKey)
			require.NoError(t, err)
			require.Equal(t, tc.message, decrypted)
		})
	}

	t.Run("tampered ciphertext fails", func(t *testing.T) {
		ciphertext := SealAfterPrecomputation([]byte("Valid message"), nonce, sealKey)
		tampered := make([]byte, len(ciphertext))
		copy(tampered, ciphertext)
		tampered[0] ^= 0xFF

		_, err := OpenAfterPrecomputation(tampered, nonce, openKey)
		require.ErrorIs(t, err, ErrAuthenticationFailed)
	})

	t.Run("empty ciphertext fails", func(t *testing.T) {
		_, err := OpenAfterPrecomputation([]byte{}, nonce, openKey)
		require.Error(t, err)
	})
}

func TestSecretboxSealOpen(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i)
	}

	nonce, err := GenerateNonce()
	require.NoError(t, err)

	testCases := []struct {
		name    string
		message []byte
	}{
		{"normal message", []byte("Hello, this is a test message!")},
		{"empty message", []byte{}},
		{"binary data", []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD}},
		{"long message", bytes.Repeat([]byte("A"), 1024)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ciphertext := SecretboxSeal(tc.message, nonce, key)
			decrypted, err := SecretboxOpen(ciphertext, nonce, key)
			require.NoError(t, err)
			require.Equal(t, tc.message, decrypted)
		})
	}

	t.Run("tampered ciphertext fails", func(t *testing.T) {
		ciphertext := SecretboxSeal([]byte("Valid message"), nonce, key)
		tampered := make([]byte, len(ciphertext))
		copy(tampered, ciphertext)
		tampered[0] ^= 0xFF

		_, err := SecretboxOpen(tampered, nonce, key)
		require.ErrorIs(t, err, ErrAuthenticationFailed)
	})
}

func TestHash(t *testing.T) {
	d1 := Hash([]byte("hello"))
	d2 := Hash([]byte("hello"))
	d3 := Hash([]byte("world"))

	require.Equal(t, d1, d2)
	require.NotEqual(t, d1, d3)
	require.Len(t, d1, DigestSize)
}

func TestSignAndVerify(t *testing.T) {
	keyPair, err := GenerateSigningKeyPair()
	require.NoError(t, err)

	testCases := []struct {
		name      string
		message   []byte
		expectErr bool
	}{
		{"normal message", []byte("Test message to sign"), false},
		{"empty message", []byte{}, true},
		{"binary data", []byte{0x00, 0x01, 0x02, 0x03, 0xFF}, false},
		{"long message", bytes.Repeat([]byte("A"), 1024), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			signature, err := Sign(tc.message, keyPair.Private)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			valid, err := Verify(tc.message, signature, keyPair.Public)
			require.NoError(t, err)
			require.True(t, valid)

			tamperedMsg := make([]byte, len(tc.message))
			copy(tamperedMsg, tc.message)
			tamperedMsg[0] ^= 0xFF

			valid, _ = Verify(tamperedMsg, signature, keyPair.Public)
			require.False(t, valid)
		})
	}
}

func TestSignDeterministic(t *testing.T) {
	keyPair, err := GenerateSigningKeyPair()
	require.NoError(t, err)

	message := []byte("deterministic signing")
	sig1, err := Sign(message, keyPair.Private)
	require.NoError(t, err)
	sig2, err := Sign(message, keyPair.Private)
	require.NoError(t, err)

	require.Equal(t, sig1, sig2, "Ed25519 signing is deterministic for a fixed key and message")
}
